package dto

import (
	"time"

	"github.com/centbook/centbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceAccountResponse is one account row of the trial balance report.
type TrialBalanceAccountResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Currency     string          `json:"currency"`
	Balance      decimal.Decimal `json:"balance"`
	TotalDebits  decimal.Decimal `json:"total_debits"`
	TotalCredits decimal.Decimal `json:"total_credits"`
	NetBalance   decimal.Decimal `json:"net_balance"`
}

// TrialBalanceResponse is the trial balance report payload.
type TrialBalanceResponse struct {
	IsBalanced   bool                          `json:"is_balanced"`
	TotalDebits  decimal.Decimal               `json:"total_debits"`
	TotalCredits decimal.Decimal               `json:"total_credits"`
	Accounts     []TrialBalanceAccountResponse `json:"accounts"`
}

// ToTrialBalanceResponse converts a domain trial balance report to its DTO.
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	accounts := make([]TrialBalanceAccountResponse, len(tb.Accounts))
	for i, row := range tb.Accounts {
		accounts[i] = TrialBalanceAccountResponse{
			ID:           row.AccountID,
			Name:         row.AccountName,
			Type:         string(row.AccountType),
			Currency:     row.CurrencyCode,
			Balance:      row.Balance,
			TotalDebits:  row.TotalDebits,
			TotalCredits: row.TotalCredits,
			NetBalance:   row.NetBalance,
		}
	}
	return TrialBalanceResponse{
		IsBalanced:   tb.IsBalanced,
		TotalDebits:  tb.TotalDebits,
		TotalCredits: tb.TotalCredits,
		Accounts:     accounts,
	}
}

// StatementLineResponse is one journal entry shown on an account statement.
type StatementLineResponse struct {
	ID                     string          `json:"id"`
	Amount                 decimal.Decimal `json:"amount"`
	Type                   string          `json:"type"`
	TransactionDescription string          `json:"transaction_description"`
	TransactionReference   string          `json:"transaction_reference"`
	TransactionDate        time.Time       `json:"transaction_date"`
}

// StatementResponse is one page of an account statement.
type StatementResponse struct {
	Count    int64                   `json:"count"`
	Next     *string                 `json:"next"`
	Previous *string                 `json:"previous"`
	Results  []StatementLineResponse `json:"results"`
}

// ToStatementLineResponses converts domain statement lines to their DTOs.
func ToStatementLineResponses(lines []domain.StatementLine) []StatementLineResponse {
	responses := make([]StatementLineResponse, len(lines))
	for i, line := range lines {
		responses[i] = StatementLineResponse{
			ID:                     line.EntryID,
			Amount:                 line.Amount,
			Type:                   string(line.EntryType),
			TransactionDescription: line.TransactionDescription,
			TransactionReference:   line.TransactionReference,
			TransactionDate:        line.TransactionDate,
		}
	}
	return responses
}
