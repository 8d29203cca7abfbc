package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/zaikanghel/Photo-Earn/internal/domain"
	"github.com/zaikanghel/Photo-Earn/pkg/logger"
	"github.com/zaikanghel/Photo-Earn/pkg/money"
)

type withdrawalRepository interface {
	BeginTx(ctx context.Context) (*sql.Tx, error)
	DebitBalance(ctx context.Context, tx *sql.Tx, userID int64, amount decimal.Decimal) error
	CreditBalance(ctx context.Context, tx *sql.Tx, userID int64, amount decimal.Decimal) error
	CreateWithdrawal(ctx context.Context, tx *sql.Tx, w domain.Withdrawal) (int64, error)
	Withdrawal(ctx context.Context, id int64) (*domain.Withdrawal, error)
	WithdrawalForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*domain.Withdrawal, error)
	CompleteWithdrawal(ctx context.Context, withdrawalID, adminID int64) error
	RejectWithdrawal(ctx context.Context, tx *sql.Tx, withdrawalID, adminID int64, reason string) error
	WithdrawalsByUser(ctx context.Context, userID int64) ([]domain.Withdrawal, error)
	PendingWithdrawals(ctx context.Context) ([]domain.Withdrawal, error)
}

type withdrawalSettings interface {
	MinWithdrawalAmount(ctx context.Context) decimal.Decimal
	MethodFeePercent(ctx context.Context, method string) (decimal.Decimal, error)
}

type adminNotifier interface {
	notifier
	NotifyAdmins(ctx context.Context, title, message, category string, relatedID *int64)
}

// WithdrawalService owns the withdrawal lifecycle. The full requested
// amount is debited when the request is made, which reserves the funds
// while the request waits for an admin; completion therefore moves no
// money and rejection refunds the full amount.
type WithdrawalService struct {
	repo     withdrawalRepository
	settings withdrawalSettings
	notifier adminNotifier
}

func NewWithdrawalService(repo withdrawalRepository, settings withdrawalSettings, notifier adminNotifier) *WithdrawalService {
	return &WithdrawalService{
		repo:     repo,
		settings: settings,
		notifier: notifier,
	}
}

func (s *WithdrawalService) Request(ctx context.Context, userID int64, amount decimal.Decimal, method, accountDetails string) (*domain.Withdrawal, error) {
	feePercent, err := s.settings.MethodFeePercent(ctx, method)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(accountDetails) == "" {
		return nil, domain.ErrAccountDetails
	}

	minAmount := s.settings.MinWithdrawalAmount(ctx)
	if amount.LessThan(minAmount) {
		logger.Log.Warn("withdrawal below minimum",
			logger.Int64("user_id", userID),
			logger.String("amount", amount.String()),
			logger.String("minimum", minAmount.String()),
		)
		return nil, domain.ErrInsufficientFunds
	}

	fee := money.Fee(amount, feePercent)

	withdrawal := domain.Withdrawal{
		UserID:         userID,
		Amount:         amount,
		Fee:            fee,
		FinalAmount:    amount.Sub(fee),
		Method:         method,
		AccountDetails: accountDetails,
		Status:         domain.StatusPending,
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if err = s.repo.DebitBalance(ctx, tx, userID, amount); err != nil {
		return nil, err
	}

	id, err := s.repo.CreateWithdrawal(ctx, tx, withdrawal)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing transaction: %w", err)
	}

	withdrawal.ID = id

	s.notifier.NotifyAdmins(ctx, "New Withdrawal Request",
		fmt.Sprintf("A withdrawal of $%s via %s is awaiting review.", amount.StringFixed(2), method),
		domain.AdminNotificationWithdrawalPending, &id)

	return &withdrawal, nil
}

func (s *WithdrawalService) Complete(ctx context.Context, withdrawalID, adminID int64) error {
	withdrawal, err := s.repo.Withdrawal(ctx, withdrawalID)
	if err != nil {
		return err
	}

	if withdrawal.Status != domain.StatusPending {
		logger.Log.Warn("withdrawal already processed",
			logger.Int64("withdrawal_id", withdrawalID),
			logger.String("status", withdrawal.Status),
		)
		return domain.ErrAlreadyProcessed
	}

	if err = s.repo.CompleteWithdrawal(ctx, withdrawalID, adminID); err != nil {
		return err
	}

	s.notifier.Notify(ctx, withdrawal.UserID, "Withdrawal Completed",
		fmt.Sprintf("Your withdrawal of $%s has been paid out via %s.",
			withdrawal.Amount.StringFixed(2), withdrawal.Method),
		domain.NotificationWithdrawalCompleted, &withdrawal.ID)

	return nil
}

func (s *WithdrawalService) Reject(ctx context.Context, withdrawalID, adminID int64, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return domain.ErrInvalidReason
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	withdrawal, err := s.repo.WithdrawalForUpdate(ctx, tx, withdrawalID)
	if err != nil {
		return err
	}

	if withdrawal.Status != domain.StatusPending {
		logger.Log.Warn("withdrawal already processed",
			logger.Int64("withdrawal_id", withdrawalID),
			logger.String("status", withdrawal.Status),
		)
		return domain.ErrAlreadyProcessed
	}

	if err = s.repo.RejectWithdrawal(ctx, tx, withdrawalID, adminID, reason); err != nil {
		return err
	}

	if err = s.repo.CreditBalance(ctx, tx, withdrawal.UserID, withdrawal.Amount); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	s.notifier.Notify(ctx, withdrawal.UserID, "Withdrawal Rejected",
		fmt.Sprintf("Your withdrawal request for $%s was rejected. Reason: %s. The funds have been returned to your balance.",
			withdrawal.Amount.StringFixed(2), reason),
		domain.NotificationWithdrawalRejected, &withdrawal.ID)

	return nil
}

func (s *WithdrawalService) Withdrawals(ctx context.Context, userID int64) ([]domain.Withdrawal, error) {
	return s.repo.WithdrawalsByUser(ctx, userID)
}

func (s *WithdrawalService) Pending(ctx context.Context) ([]domain.Withdrawal, error) {
	return s.repo.PendingWithdrawals(ctx)
}
