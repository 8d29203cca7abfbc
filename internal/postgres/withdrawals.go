package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/zaikanghel/Photo-Earn/internal/domain"
	"github.com/zaikanghel/Photo-Earn/pkg/logger"
)

func (p *Postgres) CreateWithdrawal(ctx context.Context, tx *sql.Tx, w domain.Withdrawal) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx,
		`INSERT INTO withdrawals (user_id, amount, fee, final_amount, method, account_details)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		w.UserID, w.Amount, w.Fee, w.FinalAmount, w.Method, w.AccountDetails).
		Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating withdrawal: %w", err)
	}

	return id, nil
}

func (p *Postgres) Withdrawal(ctx context.Context, id int64) (*domain.Withdrawal, error) {
	row := p.DB.QueryRowContext(ctx,
		`SELECT id, user_id, amount, fee, final_amount, method, account_details, status,
		        requested_at, processed_at, processed_by, rejection_reason
		 FROM withdrawals WHERE id = $1`, id)

	return scanWithdrawal(row.Scan)
}

// WithdrawalForUpdate locks the withdrawal row for the span of the deciding
// transaction.
func (p *Postgres) WithdrawalForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*domain.Withdrawal, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT id, user_id, amount, fee, final_amount, method, account_details, status,
		        requested_at, processed_at, processed_by, rejection_reason
		 FROM withdrawals WHERE id = $1 FOR UPDATE`, id)

	return scanWithdrawal(row.Scan)
}

func scanWithdrawal(scan func(...any) error) (*domain.Withdrawal, error) {
	var w domain.Withdrawal
	var processedAt sql.NullTime
	var processedBy sql.NullInt64

	err := scan(&w.ID, &w.UserID, &w.Amount, &w.Fee, &w.FinalAmount, &w.Method,
		&w.AccountDetails, &w.Status, &w.RequestedAt, &processedAt, &processedBy,
		&w.RejectionReason)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrWithdrawalNotFound
		}
		return nil, fmt.Errorf("error fetching withdrawal: %w", err)
	}

	if processedAt.Valid {
		w.ProcessedAt = &processedAt.Time
	}
	if processedBy.Valid {
		w.ProcessedBy = &processedBy.Int64
	}

	return &w, nil
}

func (p *Postgres) CompleteWithdrawal(ctx context.Context, withdrawalID, adminID int64) error {
	result, err := p.DB.ExecContext(ctx,
		`UPDATE withdrawals SET status = $1, processed_at = now(), processed_by = $2
		 WHERE id = $3 AND status = $4`,
		domain.StatusCompleted, adminID, withdrawalID, domain.StatusPending)
	if err != nil {
		return fmt.Errorf("error completing withdrawal: %w", err)
	}

	return requireTransition(result, withdrawalID, domain.ErrAlreadyProcessed)
}

// RejectWithdrawal flips a pending withdrawal to rejected inside the refund
// transaction.
func (p *Postgres) RejectWithdrawal(ctx context.Context, tx *sql.Tx, withdrawalID, adminID int64, reason string) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE withdrawals SET status = $1, processed_at = now(), processed_by = $2, rejection_reason = $3
		 WHERE id = $4 AND status = $5`,
		domain.StatusRejected, adminID, reason, withdrawalID, domain.StatusPending)
	if err != nil {
		return fmt.Errorf("error rejecting withdrawal: %w", err)
	}

	return requireTransition(result, withdrawalID, domain.ErrAlreadyProcessed)
}

func (p *Postgres) WithdrawalsByUser(ctx context.Context, userID int64) ([]domain.Withdrawal, error) {
	rows, err := p.DB.QueryContext(ctx,
		`SELECT id, user_id, amount, fee, final_amount, method, account_details, status,
		        requested_at, processed_at, processed_by, rejection_reason
		 FROM withdrawals WHERE user_id = $1 ORDER BY requested_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching withdrawals: %w", err)
	}

	return collectWithdrawals(rows)
}

func (p *Postgres) PendingWithdrawals(ctx context.Context) ([]domain.Withdrawal, error) {
	rows, err := p.DB.QueryContext(ctx,
		`SELECT id, user_id, amount, fee, final_amount, method, account_details, status,
		        requested_at, processed_at, processed_by, rejection_reason
		 FROM withdrawals WHERE status = $1 ORDER BY requested_at`, domain.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("error fetching pending withdrawals: %w", err)
	}

	return collectWithdrawals(rows)
}

func collectWithdrawals(rows *sql.Rows) ([]domain.Withdrawal, error) {
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			logger.Log.Error("error closing rows", logger.Error(err))
		}
	}(rows)

	var withdrawals []domain.Withdrawal
	for rows.Next() {
		w, err := scanWithdrawal(rows.Scan)
		if err != nil {
			return nil, err
		}
		withdrawals = append(withdrawals, *w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over withdrawals: %w", err)
	}

	return withdrawals, nil
}
