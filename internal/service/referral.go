package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/zaikanghel/Photo-Earn/internal/domain"
	"github.com/zaikanghel/Photo-Earn/pkg/logger"
	"github.com/zaikanghel/Photo-Earn/pkg/money"
)

type referralRepository interface {
	InviterOf(ctx context.Context, tx *sql.Tx, userID int64) (*int64, error)
	CreditCommission(ctx context.Context, tx *sql.Tx, userID int64, amount decimal.Decimal) error
}

// ReferralResolver pays the inviter's cut of a base earning. The chain is a
// single hop: the inviter's own inviter never sees anything.
type ReferralResolver struct {
	repo referralRepository
	rate decimal.Decimal
}

func NewReferralResolver(repo referralRepository, rate decimal.Decimal) *ReferralResolver {
	return &ReferralResolver{
		repo: repo,
		rate: rate,
	}
}

// Apply credits the earner's inviter inside the caller's transaction and
// reports the grant so the caller can notify after commit. An account with
// no inviter, or an inviter that no longer resolves, yields a nil grant and
// no error.
func (r *ReferralResolver) Apply(ctx context.Context, tx *sql.Tx, earnerID int64, base decimal.Decimal) (*domain.CommissionGrant, error) {
	inviterID, err := r.repo.InviterOf(ctx, tx, earnerID)
	if err != nil {
		return nil, err
	}
	if inviterID == nil {
		return nil, nil
	}

	commission := money.Commission(base, r.rate)

	err = r.repo.CreditCommission(ctx, tx, *inviterID, commission)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			logger.Log.Warn("inviter no longer exists, skipping commission",
				logger.Int64("earner_id", earnerID),
				logger.Int64("inviter_id", *inviterID),
			)
			return nil, nil
		}
		return nil, err
	}

	return &domain.CommissionGrant{
		InviterID: *inviterID,
		Amount:    commission,
	}, nil
}
