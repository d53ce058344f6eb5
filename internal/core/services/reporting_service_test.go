package services_test

import (
	"context"
	"testing"

	"github.com/centbook/centbook/internal/apperrors"
	"github.com/centbook/centbook/internal/core/domain"
	portsrepo "github.com/centbook/centbook/internal/core/ports/repositories"
	portssvc "github.com/centbook/centbook/internal/core/ports/services"
	"github.com/centbook/centbook/internal/core/services"
	"github.com/centbook/centbook/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepositoryFacade = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetTrialBalanceRows(ctx context.Context, ownerUserID string) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) CountStatementLines(ctx context.Context, accountID string) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportingRepository) ListStatementLines(ctx context.Context, accountID string, limit, offset int) ([]domain.StatementLine, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatementLine), args.Error(1)
}

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReporting *MockReportingRepository
	mockAccounts  *MockAccountRepository
	service       portssvc.ReportingSvcFacade
	ctx           context.Context
	ownerID       string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReporting = new(MockReportingRepository)
	suite.mockAccounts = new(MockAccountRepository)
	suite.service = services.NewReportingService(suite.mockReporting, suite.mockAccounts)
	suite.ctx = context.Background()
	suite.ownerID = uuid.NewString()
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Balanced() {
	rows := []domain.TrialBalanceRow{
		{
			AccountID:    uuid.NewString(),
			AccountName:  "Cash",
			AccountType:  domain.Asset,
			TotalDebits:  decimal.RequireFromString("150.0000"),
			TotalCredits: decimal.RequireFromString("30.0000"),
		},
		{
			AccountID:    uuid.NewString(),
			AccountName:  "Salary",
			AccountType:  domain.Income,
			TotalDebits:  decimal.RequireFromString("30.0000"),
			TotalCredits: decimal.RequireFromString("150.0000"),
		},
	}
	suite.mockReporting.On("GetTrialBalanceRows", suite.ctx, suite.ownerID).Return(rows, nil).Once()

	tb, err := suite.service.TrialBalance(suite.ctx, suite.ownerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(tb)
	assert.True(suite.T(), tb.IsBalanced)
	assert.True(suite.T(), tb.TotalDebits.Equal(decimal.RequireFromString("180.0000")))
	assert.True(suite.T(), tb.TotalCredits.Equal(decimal.RequireFromString("180.0000")))
	assert.Len(suite.T(), tb.Accounts, 2)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Unbalanced() {
	rows := []domain.TrialBalanceRow{
		{
			AccountID:   uuid.NewString(),
			AccountType: domain.Asset,
			TotalDebits: decimal.RequireFromString("99.9999"),
		},
		{
			AccountID:    uuid.NewString(),
			AccountType:  domain.Income,
			TotalCredits: decimal.RequireFromString("100.0000"),
		},
	}
	suite.mockReporting.On("GetTrialBalanceRows", suite.ctx, suite.ownerID).Return(rows, nil).Once()

	tb, err := suite.service.TrialBalance(suite.ctx, suite.ownerID)

	suite.Require().NoError(err)
	assert.False(suite.T(), tb.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_NoAccounts() {
	suite.mockReporting.On("GetTrialBalanceRows", suite.ctx, suite.ownerID).Return([]domain.TrialBalanceRow{}, nil).Once()

	tb, err := suite.service.TrialBalance(suite.ctx, suite.ownerID)

	suite.Require().NoError(err)
	assert.True(suite.T(), tb.IsBalanced)
	assert.Empty(suite.T(), tb.Accounts)
}

func (suite *ReportingServiceTestSuite) ownedAccount() *domain.Account {
	owner := suite.ownerID
	return &domain.Account{
		AccountID:   uuid.NewString(),
		AccountType: domain.Asset,
		OwnerUserID: &owner,
	}
}

func (suite *ReportingServiceTestSuite) TestAccountStatement_Success() {
	account := suite.ownedAccount()
	lines := []domain.StatementLine{
		{EntryID: uuid.NewString(), Amount: decimal.NewFromInt(10), EntryType: domain.Debit},
	}

	suite.mockAccounts.On("FindAccountByID", suite.ctx, account.AccountID).Return(account, nil).Once()
	suite.mockReporting.On("CountStatementLines", suite.ctx, account.AccountID).Return(int64(41), nil).Once()
	suite.mockReporting.On("ListStatementLines", suite.ctx, account.AccountID, 20, 20).Return(lines, nil).Once()

	result, count, err := suite.service.AccountStatement(suite.ctx, account.AccountID, suite.ownerID, pagination.Params{Page: 2, PageSize: 20})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(41), count)
	assert.Len(suite.T(), result, 1)
}

func (suite *ReportingServiceTestSuite) TestAccountStatement_PageOutOfRange() {
	account := suite.ownedAccount()

	suite.mockAccounts.On("FindAccountByID", suite.ctx, account.AccountID).Return(account, nil).Once()
	suite.mockReporting.On("CountStatementLines", suite.ctx, account.AccountID).Return(int64(5), nil).Once()

	result, _, err := suite.service.AccountStatement(suite.ctx, account.AccountID, suite.ownerID, pagination.Params{Page: 3, PageSize: 20})

	suite.Require().Error(err)
	assert.Nil(suite.T(), result)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockReporting.AssertNotCalled(suite.T(), "ListStatementLines")
}

func (suite *ReportingServiceTestSuite) TestAccountStatement_NotOwned() {
	account := suite.ownedAccount()
	otherOwner := uuid.NewString()
	account.OwnerUserID = &otherOwner

	suite.mockAccounts.On("FindAccountByID", suite.ctx, account.AccountID).Return(account, nil).Once()

	result, _, err := suite.service.AccountStatement(suite.ctx, account.AccountID, suite.ownerID, pagination.Params{Page: 1, PageSize: 20})

	suite.Require().Error(err)
	assert.Nil(suite.T(), result)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockReporting.AssertNotCalled(suite.T(), "CountStatementLines")
}

// --- Run Test Suite ---
func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
