package domain

import "github.com/shopspring/decimal"

// TrialBalanceRow holds the aggregated debit/credit totals for one account.
// NetBalance follows the same sign rule the ledger engine applies to balances:
// ASSET/EXPENSE accounts net debits minus credits, all others the reverse.
type TrialBalanceRow struct {
	AccountID    string          `json:"accountID"`
	AccountName  string          `json:"accountName"`
	AccountType  AccountType     `json:"accountType"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
	NetBalance   decimal.Decimal `json:"netBalance"`
}

// TrialBalance is the full trial balance report for one principal's accounts.
type TrialBalance struct {
	IsBalanced   bool              `json:"isBalanced"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
	Accounts     []TrialBalanceRow `json:"accounts"`
}
