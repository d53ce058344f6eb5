package handlers

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/centbook/centbook/internal/apperrors"
	portssvc "github.com/centbook/centbook/internal/core/ports/services"
	"github.com/centbook/centbook/internal/core/services"
	"github.com/centbook/centbook/internal/dto"
	"github.com/centbook/centbook/internal/middleware"
)

// idempotencyKeyHeader carries the client's at-most-once token for
// transaction creation.
const idempotencyKeyHeader = "Idempotency-Key"

// transactionHandler handles HTTP requests related to ledger transactions.
type transactionHandler struct {
	ledgerService      portssvc.LedgerSvcFacade
	idempotencyService portssvc.IdempotencySvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ledgerService portssvc.LedgerSvcFacade, idempotencyService portssvc.IdempotencySvcFacade) *transactionHandler {
	return &transactionHandler{
		ledgerService:      ledgerService,
		idempotencyService: idempotencyService,
	}
}

func registerTransactionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, idempotencyService portssvc.IdempotencySvcFacade) {
	h := newTransactionHandler(ledgerService, idempotencyService)
	txns := rg.Group("/transactions")
	{
		txns.POST("", h.createTransaction)
		txns.GET("/:id", h.getTransaction)
	}
}

// createTransaction records a balanced transaction. When the request carries
// an Idempotency-Key that was already seen with the same body, the stored
// response is replayed verbatim instead of posting again.
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		logger.Error("Failed to read request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(rawBody))

	idempotencyKey := c.GetHeader(idempotencyKeyHeader)
	digest := ""
	if idempotencyKey != "" {
		sum := sha256.Sum256(rawBody)
		digest = hex.EncodeToString(sum[:])

		record, err := h.idempotencyService.Replay(c.Request.Context(), idempotencyKey, digest)
		switch {
		case err == nil:
			logger.Info("Replaying stored response for idempotency key",
				slog.String("idempotency_key", idempotencyKey),
				slog.Int("status", record.ResponseStatus))
			c.Data(record.ResponseStatus, "application/json", record.ResponseBody)
			return
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Idempotency key reused with different body", slog.String("idempotency_key", idempotencyKey))
			c.JSON(http.StatusConflict, gin.H{"error": "Idempotency key was already used with a different request body"})
			return
		case errors.Is(err, apperrors.ErrNotFound):
			// Unseen key, proceed with the posting.
		default:
			logger.Error("Failed to look up idempotency key", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
			return
		}
	}

	createReq := dto.CreateTransactionRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	txn, err := h.ledgerService.CreateTransaction(c.Request.Context(), createReq)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTransactionUnbalanced),
			errors.Is(err, services.ErrTransactionMinEntries),
			errors.Is(err, services.ErrAmountNotPositive),
			errors.Is(err, apperrors.ErrValidation),
			errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Transaction rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Duplicate transaction reference", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrRetryable):
			logger.Warn("Transaction posting timed out on a lock, client may retry", slog.String("error", err.Error()))
			c.Header("Retry-After", "1")
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "The ledger is busy, please retry"})
		default:
			logger.Error("Failed to create transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		}
		return
	}

	resp := dto.ToTransactionResponse(txn)
	respBody, err := json.Marshal(resp)
	if err != nil {
		logger.Error("Failed to marshal transaction response", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}

	if idempotencyKey != "" {
		// Recording is best-effort: the transaction already committed, so a
		// failure here must not turn a success into an error.
		if err := h.idempotencyService.Remember(c.Request.Context(), idempotencyKey, digest, respBody, http.StatusCreated); err != nil {
			logger.Error("Failed to record idempotency response",
				slog.String("idempotency_key", idempotencyKey),
				slog.String("error", err.Error()))
		}
	}

	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID))
	c.Data(http.StatusCreated, "application/json", respBody)
}

// getTransaction retrieves a transaction with its entries. The caller must
// own at least one of the accounts it touches.
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	ownerUserID, ok := middleware.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.ledgerService.GetTransactionByID(c.Request.Context(), transactionID, ownerUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else {
			logger.Error("Failed to get transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
