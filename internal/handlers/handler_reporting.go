package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/centbook/centbook/internal/apperrors"
	portssvc "github.com/centbook/centbook/internal/core/ports/services"
	"github.com/centbook/centbook/internal/dto"
	"github.com/centbook/centbook/internal/middleware"
	"github.com/centbook/centbook/internal/utils/pagination"
)

// reportingHandler handles HTTP requests for ledger reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)
	rg.GET("/trial-balance", h.getTrialBalance)
	rg.GET("/accounts/:id/statement", h.getAccountStatement)
}

// getTrialBalance returns the debit/credit aggregation over all of the
// caller's accounts.
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerUserID, ok := middleware.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tb, err := h.reportingService.TrialBalance(c.Request.Context(), ownerUserID)
	if err != nil {
		logger.Error("Failed to build trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build trial balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}

// absoluteRequestURL rebuilds the request URL with the scheme and host the
// client used, so pagination links come back absolute. The scheme honors
// X-Forwarded-Proto when a proxy terminates TLS.
func absoluteRequestURL(c *gin.Context) *url.URL {
	u := *c.Request.URL
	u.Host = c.Request.Host
	u.Scheme = "http"
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		u.Scheme = proto
	} else if c.Request.TLS != nil {
		u.Scheme = "https"
	}
	return &u
}

// getAccountStatement returns one page of an account's journal entries,
// newest transaction first.
func (h *reportingHandler) getAccountStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	ownerUserID, ok := middleware.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	params := pagination.ParseParams(c.Query("page"), c.Query("page_size"))

	lines, count, err := h.reportingService.AccountStatement(c.Request.Context(), accountID, ownerUserID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		} else {
			logger.Error("Failed to build account statement", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build account statement"})
		}
		return
	}

	next, previous := pagination.Links(absoluteRequestURL(c), params, count)
	c.JSON(http.StatusOK, dto.StatementResponse{
		Count:    count,
		Next:     next,
		Previous: previous,
		Results:  dto.ToStatementLineResponses(lines),
	})
}
