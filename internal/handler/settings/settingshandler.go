package settingshandler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/zaikanghel/Photo-Earn/internal/domain"
	"github.com/zaikanghel/Photo-Earn/pkg/dto"
	"github.com/zaikanghel/Photo-Earn/pkg/logger"
)

type SettingsService interface {
	Settings(ctx context.Context) domain.Settings
	Update(ctx context.Context, adminID int64, settings domain.Settings) error
}

type StatsService interface {
	Stats(ctx context.Context) (*domain.Stats, error)
}

type SettingsHandler struct {
	settings SettingsService
	stats    StatsService
}

func New(settings SettingsService, stats StatsService) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
		stats:    stats,
	}
}

func (h SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings := h.settings.Settings(r.Context())

	resp := dto.Settings{
		MinWithdrawalAmount: settings.MinWithdrawalAmount,
		PayPalFee:           settings.PayPalFeePercent,
		GCashFee:            settings.GCashFeePercent,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err := json.NewEncoder(w).Encode(resp)
	if err != nil {
		logger.Log.Error("error while encoding settings to JSON", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}

func (h SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userIDHeader := r.Header.Get("User-ID")
	adminID, err := strconv.ParseInt(userIDHeader, 10, 64)
	if err != nil {
		logger.Log.Error("error while parsing user ID from header", logger.String("user_id", userIDHeader), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var settings dto.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		logger.Log.Warn("error while decoding a settings request")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	defer func(body io.ReadCloser) {
		err := body.Close()
		if err != nil {
			logger.Log.Error("error while closing request body", logger.Error(err))
			return
		}
	}(r.Body)

	err = h.settings.Update(r.Context(), adminID, domain.Settings{
		MinWithdrawalAmount: settings.MinWithdrawalAmount,
		PayPalFeePercent:    settings.PayPalFee,
		GCashFeePercent:     settings.GCashFee,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSetting) {
			http.Error(w, "values cannot be negative", http.StatusBadRequest)
			return
		}

		logger.Log.Error("error while updating settings", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h SettingsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Stats(r.Context())
	if err != nil {
		logger.Log.Error("error while fetching stats", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	resp := dto.Stats{
		Users:          stats.Users,
		ApprovedPhotos: stats.ApprovedPhotos,
		TotalPaidOut:   stats.TotalPaidOut,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(resp)
	if err != nil {
		logger.Log.Error("error while encoding stats to JSON", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}
