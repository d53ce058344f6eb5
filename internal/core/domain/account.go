package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// ValidAccountType reports whether t is one of the five ledger account types.
func ValidAccountType(t AccountType) bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// Account represents a ledger account within the core domain.
// Balance is denormalized: it always equals the signed sum of the account's
// journal entries and is mutated only by the ledger engine under a row lock.
type Account struct {
	AccountID    string          `json:"accountID"`    // Primary key (UUID)
	Name         string          `json:"name"`         // User-defined name
	AccountType  AccountType     `json:"accountType"`  // ASSET, LIABILITY, etc.
	CurrencyCode string          `json:"currencyCode"` // ISO 4217 code
	OwnerUserID  *string         `json:"ownerUserID"`  // Nullable owning principal
	Balance      decimal.Decimal `json:"balance"`      // Denormalized running balance
	CreatedAt    time.Time       `json:"createdAt"`
}
