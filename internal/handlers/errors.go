package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stabulum/stabulum/internal/apperrors"
)

// respondWithError translates a service error into an HTTP response. State
// machine violations and duplicates are conflicts; unbalanced entries return
// both totals so the caller can self-diagnose.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	var unbalanced *apperrors.UnbalancedEntryError
	if errors.As(err, &unbalanced) {
		c.JSON(http.StatusConflict, gin.H{
			"error":       unbalanced.Error(),
			"totalDebit":  unbalanced.TotalDebit,
			"totalCredit": unbalanced.TotalCredit,
		})
		return
	}

	var lineErr *apperrors.LineInvariantError
	if errors.As(err, &lineErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      lineErr.Error(),
			"lineNumber": lineErr.LineNumber,
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrEntryNotDraft),
		errors.Is(err, apperrors.ErrEntryNotPosted),
		errors.Is(err, apperrors.ErrAlreadyVoid),
		errors.Is(err, apperrors.ErrAlreadyReversed),
		errors.Is(err, apperrors.ErrEntryReconciled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}
