package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/centbook/centbook/internal/apperrors"
	"github.com/centbook/centbook/internal/core/domain"
	portssvc "github.com/centbook/centbook/internal/core/ports/services"
	"github.com/centbook/centbook/internal/core/services"
	"github.com/centbook/centbook/internal/dto"
	"github.com/centbook/centbook/internal/handlers"
	"github.com/centbook/centbook/internal/utils/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) GetTransactionByID(ctx context.Context, transactionID string, ownerUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// --- Mock IdempotencyService ---
type MockIdempotencyService struct {
	mock.Mock
}

var _ portssvc.IdempotencySvcFacade = (*MockIdempotencyService)(nil)

func (m *MockIdempotencyService) Replay(ctx context.Context, key string, requestDigest string) (*domain.IdempotencyRecord, error) {
	args := m.Called(ctx, key, requestDigest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IdempotencyRecord), args.Error(1)
}

func (m *MockIdempotencyService) Remember(ctx context.Context, key string, requestDigest string, responseBody []byte, responseStatus int) error {
	args := m.Called(ctx, key, requestDigest, responseBody, responseStatus)
	return args.Error(0)
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, ownerUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, ownerUserID string) ([]domain.Account, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string, ownerUserID string) error {
	args := m.Called(ctx, accountID, ownerUserID)
	return args.Error(0)
}

func (m *MockAccountService) RecomputeBalance(ctx context.Context, accountID string, ownerUserID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, ownerUserID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

func (m *MockReportingService) TrialBalance(ctx context.Context, ownerUserID string) (*domain.TrialBalance, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

func (m *MockReportingService) AccountStatement(ctx context.Context, accountID string, ownerUserID string, params pagination.Params) ([]domain.StatementLine, int64, error) {
	args := m.Called(ctx, accountID, ownerUserID, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.StatementLine), args.Get(1).(int64), args.Error(2)
}

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockLedger      *MockLedgerService
	mockIdempotency *MockIdempotencyService
	userID          string
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockLedger = new(MockLedgerService)
	suite.mockIdempotency = new(MockIdempotencyService)
	suite.userID = uuid.NewString()

	suite.router = gin.New()
	container := &portssvc.ServiceContainer{
		Account:     new(MockAccountService),
		Ledger:      suite.mockLedger,
		Reporting:   new(MockReportingService),
		Idempotency: suite.mockIdempotency,
	}
	handlers.RegisterRoutes(suite.router, container)
}

func (suite *TransactionHandlerTestSuite) performRequest(method, path string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", suite.userID)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TransactionHandlerTestSuite) balancedBody() []byte {
	body, err := json.Marshal(gin.H{
		"description": "rent",
		"reference":   "INV-7",
		"entries": []gin.H{
			{"account_id": uuid.NewString(), "amount": "500.00", "type": "DEBIT"},
			{"account_id": uuid.NewString(), "amount": "500.00", "type": "CREDIT"},
		},
	})
	suite.Require().NoError(err)
	return body
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		Reference:     "INV-7",
		Posted:        true,
		CreatedAt:     time.Now(),
	}
	suite.mockLedger.On("CreateTransaction", mock.Anything, mock.AnythingOfType("dto.CreateTransactionRequest")).Return(txn, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/transactions", suite.balancedBody(), nil)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(txn.TransactionID, resp.ID)
	suite.True(resp.Posted)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_MissingPrincipal() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader(suite.balancedBody()))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "CreateTransaction")
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Unbalanced() {
	suite.mockLedger.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil, services.ErrTransactionUnbalanced).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/transactions", suite.balancedBody(), nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_DuplicateReference() {
	dupErr := apperrors.NewAppError(409, "transaction reference exists", apperrors.ErrDuplicate)
	suite.mockLedger.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil, dupErr).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/transactions", suite.balancedBody(), nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Retryable() {
	suite.mockLedger.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil, apperrors.ErrRetryable).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/transactions", suite.balancedBody(), nil)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.NotEmpty(w.Header().Get("Retry-After"))
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_BadEntryCount() {
	body, _ := json.Marshal(gin.H{
		"entries": []gin.H{
			{"account_id": uuid.NewString(), "amount": "500.00", "type": "DEBIT"},
		},
	})

	w := suite.performRequest(http.MethodPost, "/api/v1/transactions", body, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "CreateTransaction")
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_IdempotentReplay() {
	stored := &domain.IdempotencyRecord{
		Key:            "key-1",
		ResponseBody:   []byte(`{"id":"stored-txn"}`),
		ResponseStatus: http.StatusCreated,
	}
	suite.mockIdempotency.On("Replay", mock.Anything, "key-1", mock.AnythingOfType("string")).Return(stored, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/transactions", suite.balancedBody(), map[string]string{"Idempotency-Key": "key-1"})

	suite.Equal(http.StatusCreated, w.Code)
	suite.JSONEq(`{"id":"stored-txn"}`, w.Body.String())
	suite.mockLedger.AssertNotCalled(suite.T(), "CreateTransaction")
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_IdempotencyKeyBodyMismatch() {
	suite.mockIdempotency.On("Replay", mock.Anything, "key-1", mock.AnythingOfType("string")).
		Return(nil, apperrors.NewAppError(409, "digest mismatch", apperrors.ErrConflict)).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/transactions", suite.balancedBody(), map[string]string{"Idempotency-Key": "key-1"})

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "CreateTransaction")
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_UnseenKeyPostsAndRecords() {
	txn := &domain.Transaction{TransactionID: uuid.NewString(), Posted: true}
	suite.mockIdempotency.On("Replay", mock.Anything, "key-2", mock.AnythingOfType("string")).
		Return(nil, apperrors.NewNotFoundError("idempotency key not found")).Once()
	suite.mockLedger.On("CreateTransaction", mock.Anything, mock.Anything).Return(txn, nil).Once()
	suite.mockIdempotency.On("Remember", mock.Anything, "key-2", mock.AnythingOfType("string"), mock.Anything, http.StatusCreated).Return(nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/transactions", suite.balancedBody(), map[string]string{"Idempotency-Key": "key-2"})

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockIdempotency.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_RememberFailureStillSucceeds() {
	txn := &domain.Transaction{TransactionID: uuid.NewString(), Posted: true}
	suite.mockIdempotency.On("Replay", mock.Anything, "key-3", mock.AnythingOfType("string")).
		Return(nil, apperrors.NewNotFoundError("idempotency key not found")).Once()
	suite.mockLedger.On("CreateTransaction", mock.Anything, mock.Anything).Return(txn, nil).Once()
	suite.mockIdempotency.On("Remember", mock.Anything, "key-3", mock.AnythingOfType("string"), mock.Anything, http.StatusCreated).
		Return(apperrors.ErrInternal).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/transactions", suite.balancedBody(), map[string]string{"Idempotency-Key": "key-3"})

	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	txnID := uuid.NewString()
	suite.mockLedger.On("GetTransactionByID", mock.Anything, txnID, suite.userID).Return(nil, apperrors.NewNotFoundError("transaction not found")).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/transactions/"+txnID, nil, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_PassesCallerPrincipal() {
	// The caller's own principal, not any request parameter, drives the
	// ownership filter.
	txn := &domain.Transaction{TransactionID: uuid.NewString(), Reference: "INV-9", Posted: true}
	suite.mockLedger.On("GetTransactionByID", mock.Anything, txn.TransactionID, suite.userID).Return(txn, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/transactions/"+txn.TransactionID, nil, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
