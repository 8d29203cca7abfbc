package notificationhandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zaikanghel/Photo-Earn/internal/domain"
	"github.com/zaikanghel/Photo-Earn/pkg/dto"
	"github.com/zaikanghel/Photo-Earn/pkg/logger"
)

type NotificationService interface {
	Notifications(ctx context.Context, userID int64) ([]domain.Notification, error)
	AdminNotifications(ctx context.Context) ([]domain.AdminNotification, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}

type NotificationHandler struct {
	srv NotificationService
}

func New(srv NotificationService) *NotificationHandler {
	return &NotificationHandler{
		srv: srv,
	}
}

func (h NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	notifications, err := h.srv.Notifications(r.Context(), userID)
	if err != nil {
		logger.Log.Error("error while fetching notifications", logger.Int64("user_id", userID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if len(notifications) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	dtos := make([]dto.Notification, len(notifications))
	for i, n := range notifications {
		dtos[i] = dto.Notification{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Category:  n.Category,
			RelatedID: n.RelatedID,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		}
	}

	writeJSON(w, dtos)
}

func (h NotificationHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.srv.AdminNotifications(r.Context())
	if err != nil {
		logger.Log.Error("error while fetching admin notifications", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if len(notifications) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	dtos := make([]dto.Notification, len(notifications))
	for i, n := range notifications {
		dtos[i] = dto.Notification{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Category:  n.Category,
			RelatedID: n.RelatedID,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		}
	}

	writeJSON(w, dtos)
}

func (h NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	notificationID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		logger.Log.Warn("invalid notification ID", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	err = h.srv.MarkRead(r.Context(), notificationID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			http.Error(w, "notification not found", http.StatusNotFound)
			return
		}

		logger.Log.Error("error while marking notification read", logger.Int64("notification_id", notificationID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := userID(w, r)
	if !ok {
		return
	}

	err := h.srv.MarkAllRead(r.Context(), userID)
	if err != nil {
		logger.Log.Error("error while marking notifications read", logger.Int64("user_id", userID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userIDHeader := r.Header.Get("User-ID")
	id, err := strconv.ParseInt(userIDHeader, 10, 64)
	if err != nil {
		logger.Log.Error("error while parsing user ID from header", logger.String("user_id", userIDHeader), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return 0, false
	}

	return id, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		logger.Log.Error("error while encoding notifications to JSON", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}
