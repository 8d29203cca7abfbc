package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaikanghel/Photo-Earn/internal/domain"
)

func newTestPostgres(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return New(db), mock
}

func beginTestTx(t *testing.T, p *Postgres, mock sqlmock.Sqlmock) *sql.Tx {
	t.Helper()

	mock.ExpectBegin()
	tx, err := p.BeginTx(context.Background())
	require.NoError(t, err)

	return tx
}

func TestDebitBalance(t *testing.T) {
	p, mock := newTestPostgres(t)
	tx := beginTestTx(t, p, mock)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET balance = balance - $1 WHERE id = $2 AND balance >= $1`)).
		WithArgs(sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := p.DebitBalance(context.Background(), tx, 1, decimal.RequireFromString("2.00"))
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDebitBalanceInsufficientFunds(t *testing.T) {
	p, mock := newTestPostgres(t)
	tx := beginTestTx(t, p, mock)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET balance = balance - $1 WHERE id = $2 AND balance >= $1`)).
		WithArgs(sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := p.DebitBalance(context.Background(), tx, 1, decimal.RequireFromString("2.00"))
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	require.NoError(t, tx.Rollback())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreditCommissionMissingUser(t *testing.T) {
	p, mock := newTestPostgres(t)
	tx := beginTestTx(t, p, mock)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET balance = balance + $1, invitation_earnings = invitation_earnings + $1 WHERE id = $2`)).
		WithArgs(sqlmock.AnyArg(), int64(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := p.CreditCommission(context.Background(), tx, 999, decimal.RequireFromString("0.0025"))
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	require.NoError(t, tx.Rollback())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprovePhotoRaceLost(t *testing.T) {
	p, mock := newTestPostgres(t)
	tx := beginTestTx(t, p, mock)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE photos SET status = $1, reviewed_at = now(), reviewed_by = $2 WHERE id = $3 AND status = $4`)).
		WithArgs(domain.StatusApproved, int64(99), int64(10), domain.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := p.ApprovePhoto(context.Background(), tx, 10, 99)
	require.ErrorIs(t, err, domain.ErrAlreadyReviewed)
	require.NoError(t, tx.Rollback())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteWithdrawal(t *testing.T) {
	p, mock := newTestPostgres(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE withdrawals SET status = $1, processed_at = now(), processed_by = $2 WHERE id = $3 AND status = $4`)).
		WithArgs(domain.StatusCompleted, int64(99), int64(7), domain.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := p.CompleteWithdrawal(context.Background(), 7, 99)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteWithdrawalAlreadyProcessed(t *testing.T) {
	p, mock := newTestPostgres(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE withdrawals SET status = $1`)).
		WithArgs(domain.StatusCompleted, int64(99), int64(7), domain.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := p.CompleteWithdrawal(context.Background(), 7, 99)
	require.ErrorIs(t, err, domain.ErrAlreadyProcessed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	p, mock := newTestPostgres(t)
	tx := beginTestTx(t, p, mock)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})
	mock.ExpectRollback()

	_, err := p.CreateUser(context.Background(), tx, domain.User{
		Name:  "alice",
		Email: "alice@example.com",
	})
	require.ErrorIs(t, err, domain.ErrUserExists)
	require.NoError(t, tx.Rollback())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInviterOf(t *testing.T) {
	p, mock := newTestPostgres(t)
	tx := beginTestTx(t, p, mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT invited_by FROM users WHERE id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"invited_by"}).AddRow(int64(2)))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT invited_by FROM users WHERE id = $1`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"invited_by"}).AddRow(nil))
	mock.ExpectCommit()

	inviter, err := p.InviterOf(context.Background(), tx, 1)
	require.NoError(t, err)
	require.NotNil(t, inviter)
	assert.Equal(t, int64(2), *inviter)

	inviter, err = p.InviterOf(context.Background(), tx, 2)
	require.NoError(t, err)
	assert.Nil(t, inviter)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInviterIDByCodeInvalid(t *testing.T) {
	p, mock := newTestPostgres(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM users WHERE invitation_code = $1`)).
		WithArgs("NOPE0000").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := p.InviterIDByCode(context.Background(), "NOPE0000")
	require.ErrorIs(t, err, domain.ErrInvalidInvitation)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingNotFound(t *testing.T) {
	p, mock := newTestPostgres(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM settings WHERE key = $1`)).
		WithArgs("minWithdrawalAmount").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err := p.Setting(context.Background(), "minWithdrawalAmount")
	require.ErrorIs(t, err, domain.ErrSettingNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertSetting(t *testing.T) {
	p, mock := newTestPostgres(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO settings (key, value, updated_at, updated_by) VALUES ($1, $2, now(), $3) ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = now(), updated_by = $3`)).
		WithArgs("paypalFee", "2", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := p.UpsertSetting(context.Background(), "paypalFee", "2", 99)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStats(t *testing.T) {
	p, mock := newTestPostgres(t)

	mock.ExpectQuery(`SELECT \(SELECT count`).
		WithArgs(domain.StatusApproved, domain.StatusCompleted).
		WillReturnRows(sqlmock.NewRows([]string{"users", "photos", "paid"}).
			AddRow(int64(12), int64(34), "56.7800"))

	stats, err := p.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(12), stats.Users)
	assert.Equal(t, int64(34), stats.ApprovedPhotos)
	assert.Equal(t, "56.78", stats.TotalPaidOut.String())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkNotificationReadScopedToOwner(t *testing.T) {
	p, mock := newTestPostgres(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`)).
		WithArgs(int64(5), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := p.MarkNotificationRead(context.Background(), 5, 2)
	require.ErrorIs(t, err, domain.ErrNotificationNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for range migrations {
		mock.ExpectExec(`CREATE`).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
