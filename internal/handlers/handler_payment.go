package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/stabulum/stabulum/internal/core/ports/services"
	"github.com/stabulum/stabulum/internal/dto"
	"github.com/stabulum/stabulum/internal/middleware"
)

// paymentHandler handles HTTP requests for recording stablecoin transfers.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// registerPaymentRoutes registers payment routes under an organization.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := &paymentHandler{paymentService: paymentService}

	payments := rg.Group("/payments")
	{
		payments.POST("/token-transfers", h.recordTokenTransfer)
	}
}

func (h *paymentHandler) recordTokenTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordTokenTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordTokenTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.paymentService.RecordTokenTransfer(c.Request.Context(), c.Param("orgID"), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record token transfer")
		return
	}

	logger.Info("Token transfer recorded",
		slog.String("entry_id", entry.EntryID), slog.String("tx_hash", req.TxHash))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}
