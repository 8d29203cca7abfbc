package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/zaikanghel/Photo-Earn/internal/domain"
	"github.com/zaikanghel/Photo-Earn/pkg/logger"
)

const (
	settingMinWithdrawal = "minWithdrawalAmount"
	settingPayPalFee     = "paypalFee"
	settingGCashFee      = "gcashFee"
)

var defaultMinWithdrawal = decimal.NewFromInt(1)

type settingsRepository interface {
	Setting(ctx context.Context, key string) (string, error)
	UpsertSetting(ctx context.Context, key, value string, updatedBy int64) error
}

// SettingsService resolves the admin-tunable withdrawal knobs, falling back
// to a fixed default per key when a row is missing or unparsable.
type SettingsService struct {
	repo settingsRepository
}

func NewSettingsService(repo settingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) MinWithdrawalAmount(ctx context.Context) decimal.Decimal {
	return s.decimalSetting(ctx, settingMinWithdrawal, defaultMinWithdrawal)
}

func (s *SettingsService) MethodFeePercent(ctx context.Context, method string) (decimal.Decimal, error) {
	switch method {
	case domain.MethodPayPal:
		return s.decimalSetting(ctx, settingPayPalFee, decimal.Zero), nil
	case domain.MethodGCash:
		return s.decimalSetting(ctx, settingGCashFee, decimal.Zero), nil
	default:
		logger.Log.Warn("unknown payment method", logger.String("method", method))
		return decimal.Zero, domain.ErrInvalidMethod
	}
}

func (s *SettingsService) Settings(ctx context.Context) domain.Settings {
	paypalFee := s.decimalSetting(ctx, settingPayPalFee, decimal.Zero)
	gcashFee := s.decimalSetting(ctx, settingGCashFee, decimal.Zero)

	return domain.Settings{
		MinWithdrawalAmount: s.MinWithdrawalAmount(ctx),
		PayPalFeePercent:    paypalFee,
		GCashFeePercent:     gcashFee,
	}
}

func (s *SettingsService) Update(ctx context.Context, adminID int64, settings domain.Settings) error {
	if settings.MinWithdrawalAmount.IsNegative() ||
		settings.PayPalFeePercent.IsNegative() ||
		settings.GCashFeePercent.IsNegative() {
		return domain.ErrInvalidSetting
	}

	values := map[string]decimal.Decimal{
		settingMinWithdrawal: settings.MinWithdrawalAmount,
		settingPayPalFee:     settings.PayPalFeePercent,
		settingGCashFee:      settings.GCashFeePercent,
	}

	for key, value := range values {
		if err := s.repo.UpsertSetting(ctx, key, value.String(), adminID); err != nil {
			return err
		}
	}

	return nil
}

func (s *SettingsService) decimalSetting(ctx context.Context, key string, def decimal.Decimal) decimal.Decimal {
	value, err := s.repo.Setting(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrSettingNotFound) {
			logger.Log.Error("error reading setting, using default", logger.String("key", key), logger.Error(err))
		}
		return def
	}

	parsed, err := decimal.NewFromString(value)
	if err != nil {
		logger.Log.Warn("unparsable setting, using default", logger.String("key", key), logger.String("value", value))
		return def
	}

	return parsed
}
