package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/stabulum/stabulum/internal/core/ports/services"
	"github.com/stabulum/stabulum/internal/dto"
	"github.com/stabulum/stabulum/internal/middleware"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// registerReportingRoutes registers report routes under an organization.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports")
	{
		reports.GET("/income-statement", h.incomeStatement)
		reports.GET("/balance-sheet", h.balanceSheet)
		reports.GET("/cash-flow", h.cashFlow)
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/general-ledger", h.generalLedger)
	}

	rg.GET("/accounts/:accountID/balance", h.accountBalance)
}

// parseDateParam accepts either a date (2006-01-02) or RFC 3339 timestamp.
func parseDateParam(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// periodParams reads the from/to query parameters, defaulting to the current
// calendar year.
func periodParams(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	to := now

	if v := c.Query("from"); v != "" {
		parsed, err := parseDateParam(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from parameter: " + err.Error()})
			return from, to, false
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := parseDateParam(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to parameter: " + err.Error()})
			return from, to, false
		}
		to = parsed
	}
	return from, to, true
}

// asOfParam reads the asOf query parameter, defaulting to now.
func asOfParam(c *gin.Context) (time.Time, bool) {
	if v := c.Query("asOf"); v != "" {
		parsed, err := parseDateParam(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf parameter: " + err.Error()})
			return time.Time{}, false
		}
		return parsed, true
	}
	return time.Now().UTC(), true
}

func (h *reportingHandler) accountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	asOf, ok := asOfParam(c)
	if !ok {
		return
	}

	balance, err := h.reportingService.AccountBalanceAsOf(c.Request.Context(), c.Param("orgID"), c.Param("accountID"), asOf, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute account balance")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"accountID": c.Param("accountID"),
		"asOf":      asOf,
		"balance":   balance,
	})
}

func (h *reportingHandler) incomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	from, to, ok := periodParams(c)
	if !ok {
		return
	}

	opts := dto.IncomeStatementOptions{
		GroupBy:            c.DefaultQuery("groupBy", dto.GroupByAccount),
		ShowPercentages:    c.Query("showPercentages") == "true",
		ComparePriorPeriod: c.Query("comparePriorPeriod") == "true",
	}

	stmt, err := h.reportingService.IncomeStatement(c.Request.Context(), c.Param("orgID"), from, to, opts, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate income statement")
		return
	}
	c.JSON(http.StatusOK, stmt)
}

func (h *reportingHandler) balanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	asOf, ok := asOfParam(c)
	if !ok {
		return
	}

	opts := dto.BalanceSheetOptions{
		GroupBy: c.DefaultQuery("groupBy", dto.GroupByAccount),
	}

	sheet, err := h.reportingService.BalanceSheet(c.Request.Context(), c.Param("orgID"), asOf, opts, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate balance sheet")
		return
	}
	c.JSON(http.StatusOK, sheet)
}

func (h *reportingHandler) cashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	from, to, ok := periodParams(c)
	if !ok {
		return
	}

	opts := dto.CashFlowOptions{}
	if v := c.Query("cashAccountIDs"); v != "" {
		opts.CashAccountIDs = strings.Split(v, ",")
	}

	stmt, err := h.reportingService.CashFlowStatement(c.Request.Context(), c.Param("orgID"), from, to, opts, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate cash flow statement")
		return
	}
	c.JSON(http.StatusOK, stmt)
}

func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	asOf, ok := asOfParam(c)
	if !ok {
		return
	}

	opts := dto.TrialBalanceOptions{
		IncludeZeroActivity: c.Query("includeZeroActivity") == "true",
	}

	tb, err := h.reportingService.TrialBalance(c.Request.Context(), c.Param("orgID"), asOf, opts, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate trial balance")
		return
	}
	c.JSON(http.StatusOK, tb)
}

func (h *reportingHandler) generalLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	from, to, ok := periodParams(c)
	if !ok {
		return
	}

	var accountIDs []string
	if v := c.Query("accountIDs"); v != "" {
		accountIDs = strings.Split(v, ",")
	}

	gl, err := h.reportingService.GeneralLedger(c.Request.Context(), c.Param("orgID"), from, to, accountIDs, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate general ledger")
		return
	}
	c.JSON(http.StatusOK, gl)
}
