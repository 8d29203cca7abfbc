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

type reviewRepository interface {
	BeginTx(ctx context.Context) (*sql.Tx, error)
	Photo(ctx context.Context, id int64) (*domain.Photo, error)
	PhotoForReview(ctx context.Context, tx *sql.Tx, id int64) (*domain.Photo, error)
	ApprovePhoto(ctx context.Context, tx *sql.Tx, photoID, reviewerID int64) error
	RejectPhoto(ctx context.Context, photoID, reviewerID int64, reason string) error
	CreditBalance(ctx context.Context, tx *sql.Tx, userID int64, amount decimal.Decimal) error
	UserByID(ctx context.Context, id int64) (*domain.User, error)
}

type referralResolver interface {
	Apply(ctx context.Context, tx *sql.Tx, earnerID int64, base decimal.Decimal) (*domain.CommissionGrant, error)
}

type notifier interface {
	Notify(ctx context.Context, userID int64, title, message, category string, relatedID *int64)
}

// ReviewService moves photos out of pending. Approval is one transaction:
// the status flip, the owner's reward and the inviter's commission commit
// together or not at all.
type ReviewService struct {
	repo      reviewRepository
	referrals referralResolver
	notifier  notifier
	rewards   money.Rewards
}

func NewReviewService(repo reviewRepository, referrals referralResolver, notifier notifier, rewards money.Rewards) *ReviewService {
	return &ReviewService{
		repo:      repo,
		referrals: referrals,
		notifier:  notifier,
		rewards:   rewards,
	}
}

func (s *ReviewService) Approve(ctx context.Context, photoID, reviewerID int64) error {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	photo, err := s.repo.PhotoForReview(ctx, tx, photoID)
	if err != nil {
		return err
	}

	if photo.Status != domain.StatusPending {
		logger.Log.Warn("photo already reviewed",
			logger.Int64("photo_id", photoID),
			logger.String("status", photo.Status),
		)
		return domain.ErrAlreadyReviewed
	}

	if err = s.repo.ApprovePhoto(ctx, tx, photoID, reviewerID); err != nil {
		return err
	}

	if err = s.repo.CreditBalance(ctx, tx, photo.UserID, s.rewards.PhotoReward); err != nil {
		return err
	}

	grant, err := s.referrals.Apply(ctx, tx, photo.UserID, s.rewards.PhotoReward)
	if err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	s.notifier.Notify(ctx, photo.UserID, "Photo Approved",
		fmt.Sprintf("Your photo %q has been approved and $%s has been added to your balance.",
			photo.Title, s.rewards.PhotoReward.StringFixed(2)),
		domain.NotificationPhotoApproved, &photo.ID)

	if grant != nil {
		s.notifier.Notify(ctx, grant.InviterID, "Invitation Earnings",
			fmt.Sprintf("You earned $%s from %s's approved photo.",
				grant.Amount.String(), s.ownerName(ctx, photo.UserID)),
			domain.NotificationPhotoApproved, &photo.ID)
	}

	return nil
}

func (s *ReviewService) Reject(ctx context.Context, photoID, reviewerID int64, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return domain.ErrInvalidReason
	}

	photo, err := s.repo.Photo(ctx, photoID)
	if err != nil {
		return err
	}

	if photo.Status != domain.StatusPending {
		logger.Log.Warn("photo already reviewed",
			logger.Int64("photo_id", photoID),
			logger.String("status", photo.Status),
		)
		return domain.ErrAlreadyReviewed
	}

	if err = s.repo.RejectPhoto(ctx, photoID, reviewerID, reason); err != nil {
		return err
	}

	s.notifier.Notify(ctx, photo.UserID, "Photo Rejected",
		fmt.Sprintf("Your photo %q was rejected. Reason: %s", photo.Title, reason),
		domain.NotificationPhotoRejected, &photo.ID)

	return nil
}

func (s *ReviewService) ownerName(ctx context.Context, userID int64) string {
	owner, err := s.repo.UserByID(ctx, userID)
	if err != nil {
		logger.Log.Warn("error fetching photo owner for notification", logger.Int64("user_id", userID), logger.Error(err))
		return "your invitee"
	}

	return owner.Name
}
