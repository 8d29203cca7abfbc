package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/zaikanghel/Photo-Earn/internal/domain"
	"github.com/zaikanghel/Photo-Earn/pkg/logger"
)

const uniqueViolation = "23505"

func (p *Postgres) CreateUser(ctx context.Context, tx *sql.Tx, user domain.User) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password, role, invited_by, invitation_code)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		user.Name, user.Email, user.Password, user.Role, user.InvitedBy, user.InvitationCode).
		Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			logger.Log.Warn("user already exists", logger.String("email", user.Email))
			return 0, domain.ErrUserExists
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

func (p *Postgres) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := p.DB.QueryRowContext(ctx,
		`SELECT id, name, email, password, role, balance, invited_by, invitation_code,
		        invitation_count, invitation_earnings, registered_at
		 FROM users WHERE email = $1`, email)

	return scanUser(row)
}

func (p *Postgres) UserByID(ctx context.Context, id int64) (*domain.User, error) {
	row := p.DB.QueryRowContext(ctx,
		`SELECT id, name, email, password, role, balance, invited_by, invitation_code,
		        invitation_count, invitation_earnings, registered_at
		 FROM users WHERE id = $1`, id)

	return scanUser(row)
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var invitedBy sql.NullInt64
	var code sql.NullString

	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role,
		&user.Balance, &invitedBy, &code, &user.InvitationCount,
		&user.InvitationEarnings, &user.RegisteredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	if invitedBy.Valid {
		user.InvitedBy = &invitedBy.Int64
	}
	user.InvitationCode = code.String

	return &user, nil
}

// InviterIDByCode resolves an invitation code to the account that owns it.
func (p *Postgres) InviterIDByCode(ctx context.Context, code string) (int64, error) {
	var id int64
	err := p.DB.QueryRowContext(ctx, `SELECT id FROM users WHERE invitation_code = $1`, code).
		Scan(&id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrInvalidInvitation
		}
		return 0, fmt.Errorf("error resolving invitation code: %w", err)
	}

	return id, nil
}

// InviterOf returns the id of the account that invited userID, or nil when
// the account was not invited by anyone.
func (p *Postgres) InviterOf(ctx context.Context, tx *sql.Tx, userID int64) (*int64, error) {
	var invitedBy sql.NullInt64
	err := tx.QueryRowContext(ctx, `SELECT invited_by FROM users WHERE id = $1`, userID).
		Scan(&invitedBy)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("error fetching inviter: %w", err)
	}

	if !invitedBy.Valid {
		return nil, nil
	}

	return &invitedBy.Int64, nil
}

func (p *Postgres) CreditBalance(ctx context.Context, tx *sql.Tx, userID int64, amount decimal.Decimal) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE users SET balance = balance + $1 WHERE id = $2`, amount, userID)
	if err != nil {
		return fmt.Errorf("error crediting balance: %w", err)
	}

	return requireUserRow(result, userID)
}

// DebitBalance subtracts amount from the user's balance. The guard keeps the
// balance non-negative; a zero-row update means the funds were not there.
func (p *Postgres) DebitBalance(ctx context.Context, tx *sql.Tx, userID int64, amount decimal.Decimal) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE users SET balance = balance - $1 WHERE id = $2 AND balance >= $1`, amount, userID)
	if err != nil {
		return fmt.Errorf("error debiting balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected for balance update: %w", err)
	}
	if rowsAffected == 0 {
		logger.Log.Warn("insufficient funds", logger.Int64("user_id", userID), logger.String("amount", amount.String()))
		return domain.ErrInsufficientFunds
	}

	return nil
}

// CreditCommission credits a referral commission: the inviter's balance and
// lifetime invitation earnings move together.
func (p *Postgres) CreditCommission(ctx context.Context, tx *sql.Tx, userID int64, amount decimal.Decimal) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE users SET balance = balance + $1, invitation_earnings = invitation_earnings + $1
		 WHERE id = $2`, amount, userID)
	if err != nil {
		return fmt.Errorf("error crediting commission: %w", err)
	}

	return requireUserRow(result, userID)
}

func (p *Postgres) CreditSignupBonus(ctx context.Context, tx *sql.Tx, userID int64, amount decimal.Decimal) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE users SET balance = balance + $1, invitation_count = invitation_count + 1
		 WHERE id = $2`, amount, userID)
	if err != nil {
		return fmt.Errorf("error crediting signup bonus: %w", err)
	}

	return requireUserRow(result, userID)
}

func (p *Postgres) InvitedCount(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := p.DB.QueryRowContext(ctx, `SELECT count(*) FROM users WHERE invited_by = $1`, userID).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting invited users: %w", err)
	}

	return count, nil
}

func requireUserRow(result sql.Result, userID int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected for balance update: %w", err)
	}
	if rowsAffected == 0 {
		logger.Log.Warn("balance update for missing user", logger.Int64("user_id", userID))
		return domain.ErrUserNotFound
	}

	return nil
}
