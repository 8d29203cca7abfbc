package withdrawalhandler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/zaikanghel/Photo-Earn/internal/domain"
	"github.com/zaikanghel/Photo-Earn/pkg/dto"
	"github.com/zaikanghel/Photo-Earn/pkg/logger"
)

type WithdrawalService interface {
	Request(ctx context.Context, userID int64, amount decimal.Decimal, method, accountDetails string) (*domain.Withdrawal, error)
	Complete(ctx context.Context, withdrawalID, adminID int64) error
	Reject(ctx context.Context, withdrawalID, adminID int64, reason string) error
	Withdrawals(ctx context.Context, userID int64) ([]domain.Withdrawal, error)
	Pending(ctx context.Context) ([]domain.Withdrawal, error)
}

type WithdrawalHandler struct {
	srv WithdrawalService
}

func New(srv WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{
		srv: srv,
	}
}

func (h WithdrawalHandler) Request(w http.ResponseWriter, r *http.Request) {
	userIDHeader := r.Header.Get("User-ID")
	userID, err := strconv.ParseInt(userIDHeader, 10, 64)
	if err != nil {
		logger.Log.Error("error while parsing user ID from header", logger.String("user_id", userIDHeader), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var request dto.WithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Log.Warn("error while decoding a withdrawal request")
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

	withdrawal, err := h.srv.Request(r.Context(), userID, request.Amount, request.Method, request.AccountDetails)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			logger.Log.Warn("insufficient funds", logger.Int64("user_id", userID))
			http.Error(w, "insufficient funds", http.StatusPaymentRequired)
			return
		}
		if errors.Is(err, domain.ErrInvalidMethod) {
			http.Error(w, "invalid payment method", http.StatusBadRequest)
			return
		}
		if errors.Is(err, domain.ErrAccountDetails) {
			http.Error(w, "account details are required", http.StatusBadRequest)
			return
		}

		logger.Log.Error("error while requesting withdrawal", logger.Int64("user_id", userID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(withdrawalDTO(*withdrawal))
	if err != nil {
		logger.Log.Error("error while encoding withdrawal to JSON", logger.Int64("user_id", userID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}

func (h WithdrawalHandler) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	userIDHeader := r.Header.Get("User-ID")
	userID, err := strconv.ParseInt(userIDHeader, 10, 64)
	if err != nil {
		logger.Log.Error("error while parsing user ID from header", logger.String("user_id", userIDHeader), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	withdrawals, err := h.srv.Withdrawals(r.Context(), userID)
	if err != nil {
		logger.Log.Error("error while fetching withdrawals", logger.Int64("user_id", userID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeWithdrawals(w, withdrawals)
}

func (h WithdrawalHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	withdrawals, err := h.srv.Pending(r.Context())
	if err != nil {
		logger.Log.Error("error while fetching pending withdrawals", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeWithdrawals(w, withdrawals)
}

func (h WithdrawalHandler) Complete(w http.ResponseWriter, r *http.Request) {
	adminID, withdrawalID, ok := decisionIDs(w, r)
	if !ok {
		return
	}

	err := h.srv.Complete(r.Context(), withdrawalID, adminID)
	if err != nil {
		if errors.Is(err, domain.ErrWithdrawalNotFound) {
			http.Error(w, "withdrawal not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, domain.ErrAlreadyProcessed) {
			http.Error(w, "withdrawal has already been processed", http.StatusConflict)
			return
		}

		logger.Log.Error("error while completing withdrawal", logger.Int64("withdrawal_id", withdrawalID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h WithdrawalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	adminID, withdrawalID, ok := decisionIDs(w, r)
	if !ok {
		return
	}

	var reject dto.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&reject); err != nil {
		logger.Log.Warn("error while decoding a reject request")
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

	err := h.srv.Reject(r.Context(), withdrawalID, adminID, reject.Reason)
	if err != nil {
		if errors.Is(err, domain.ErrWithdrawalNotFound) {
			http.Error(w, "withdrawal not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, domain.ErrAlreadyProcessed) {
			http.Error(w, "withdrawal has already been processed", http.StatusConflict)
			return
		}
		if errors.Is(err, domain.ErrInvalidReason) {
			http.Error(w, "rejection reason is required", http.StatusBadRequest)
			return
		}

		logger.Log.Error("error while rejecting withdrawal", logger.Int64("withdrawal_id", withdrawalID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func decisionIDs(w http.ResponseWriter, r *http.Request) (adminID, withdrawalID int64, ok bool) {
	userIDHeader := r.Header.Get("User-ID")
	adminID, err := strconv.ParseInt(userIDHeader, 10, 64)
	if err != nil {
		logger.Log.Error("error while parsing user ID from header", logger.String("user_id", userIDHeader), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return 0, 0, false
	}

	withdrawalID, err = strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		logger.Log.Warn("invalid withdrawal ID", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return 0, 0, false
	}

	return adminID, withdrawalID, true
}

func writeWithdrawals(w http.ResponseWriter, withdrawals []domain.Withdrawal) {
	if len(withdrawals) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	dtos := make([]dto.Withdrawal, len(withdrawals))
	for i, withdrawal := range withdrawals {
		dtos[i] = withdrawalDTO(withdrawal)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err := json.NewEncoder(w).Encode(dtos)
	if err != nil {
		logger.Log.Error("error while encoding withdrawals to JSON", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}

func withdrawalDTO(w domain.Withdrawal) dto.Withdrawal {
	d := dto.Withdrawal{
		ID:              w.ID,
		Amount:          w.Amount,
		Fee:             w.Fee,
		FinalAmount:     w.FinalAmount,
		Method:          w.Method,
		Status:          w.Status,
		RequestedAt:     w.RequestedAt.Format(time.RFC3339),
		RejectionReason: w.RejectionReason,
	}
	if w.ProcessedAt != nil {
		d.ProcessedAt = w.ProcessedAt.Format(time.RFC3339)
	}

	return d
}
