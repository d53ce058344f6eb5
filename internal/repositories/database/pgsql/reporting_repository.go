package pgsql

import (
	"context"
	"fmt"

	"github.com/centbook/centbook/internal/core/domain"
	"github.com/centbook/centbook/internal/utils/accounting"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportingRepository is the pgx-backed implementation of the reporting
// queries. All queries here are plain reads with no locking.
type ReportingRepository struct {
	BaseRepository
}

// NewReportingRepository creates a new ReportingRepository.
func NewReportingRepository(pool *pgxpool.Pool) *ReportingRepository {
	return &ReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// GetTrialBalanceRows aggregates debit and credit totals per account for
// every account owned by the principal. Accounts with no entries appear with
// zero totals.
func (r *ReportingRepository) GetTrialBalanceRows(ctx context.Context, ownerUserID string) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.name,
			a.account_type,
			a.currency_code,
			a.balance,
			COALESCE(SUM(CASE WHEN je.entry_type = 'DEBIT' THEN je.amount ELSE 0 END), 0)  AS total_debits,
			COALESCE(SUM(CASE WHEN je.entry_type = 'CREDIT' THEN je.amount ELSE 0 END), 0) AS total_credits
		FROM accounts a
		LEFT JOIN journal_entries je ON je.account_id = a.account_id
		WHERE a.owner_user_id = $1
		GROUP BY a.account_id, a.name, a.account_type, a.currency_code, a.balance
		ORDER BY a.name`
	rows, err := r.Pool.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trial balance for owner %s: %w", ownerUserID, err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		err := rows.Scan(&row.AccountID, &row.AccountName, &row.AccountType,
			&row.CurrencyCode, &row.Balance, &row.TotalDebits, &row.TotalCredits)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trial balance row: %w", err)
		}
		row.NetBalance = accounting.NetBalance(row.TotalDebits, row.TotalCredits, row.AccountType)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}
	return result, nil
}

// CountStatementLines returns the number of journal entries posted against an
// account.
func (r *ReportingRepository) CountStatementLines(ctx context.Context, accountID string) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM journal_entries WHERE account_id = $1`, accountID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries for account %s: %w", accountID, err)
	}
	return count, nil
}

// ListStatementLines retrieves one page of an account's entries joined with
// their parent transactions, newest transactions first.
func (r *ReportingRepository) ListStatementLines(ctx context.Context, accountID string, limit, offset int) ([]domain.StatementLine, error) {
	query := `
		SELECT
			je.entry_id,
			je.amount,
			je.entry_type,
			t.description,
			t.reference,
			t.created_at
		FROM journal_entries je
		JOIN transactions t ON t.transaction_id = je.transaction_id
		WHERE je.account_id = $1
		ORDER BY t.created_at DESC, je.entry_id
		LIMIT $2 OFFSET $3`
	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query statement for account %s: %w", accountID, err)
	}
	defer rows.Close()

	lines := []domain.StatementLine{}
	for rows.Next() {
		var line domain.StatementLine
		err := rows.Scan(&line.EntryID, &line.Amount, &line.EntryType,
			&line.TransactionDescription, &line.TransactionReference, &line.TransactionDate)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statement line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statement lines: %w", err)
	}
	return lines, nil
}
