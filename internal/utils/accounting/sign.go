package accounting

import (
	"fmt"

	"github.com/centbook/centbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount applies the correct sign to an entry amount based on the
// account type and entry type. This is the single definition of the sign
// rule; the engine's balance updates and the reporting aggregations both go
// through it.
//
//	DEBIT  to ASSET/EXPENSE           -> Positive (+)
//	CREDIT to ASSET/EXPENSE           -> Negative (-)
//	DEBIT  to LIABILITY/EQUITY/INCOME -> Negative (-)
//	CREDIT to LIABILITY/EQUITY/INCOME -> Positive (+)
func SignedAmount(amount decimal.Decimal, entryType domain.EntryType, accountType domain.AccountType) (decimal.Decimal, error) {
	isDebit := entryType == domain.Debit

	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			return amount.Neg(), nil
		}
	case domain.Liability, domain.Equity, domain.Income:
		if isDebit {
			return amount.Neg(), nil
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q", accountType)
	}
	return amount, nil
}

// NetBalance computes debits minus credits or credits minus debits according
// to the account type's sign rule.
func NetBalance(totalDebits, totalCredits decimal.Decimal, accountType domain.AccountType) decimal.Decimal {
	switch accountType {
	case domain.Asset, domain.Expense:
		return totalDebits.Sub(totalCredits)
	default:
		return totalCredits.Sub(totalDebits)
	}
}
