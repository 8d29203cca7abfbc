package photohandler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zaikanghel/Photo-Earn/internal/domain"
	"github.com/zaikanghel/Photo-Earn/pkg/dto"
	"github.com/zaikanghel/Photo-Earn/pkg/logger"
)

type PhotoService interface {
	Upload(ctx context.Context, userID int64, title, description string, tags []string) (*domain.Photo, error)
	Photos(ctx context.Context, userID int64) ([]domain.Photo, error)
	Pending(ctx context.Context) ([]domain.Photo, error)
}

type ReviewService interface {
	Approve(ctx context.Context, photoID, reviewerID int64) error
	Reject(ctx context.Context, photoID, reviewerID int64, reason string) error
}

type PhotoHandler struct {
	photos  PhotoService
	reviews ReviewService
}

func New(photos PhotoService, reviews ReviewService) *PhotoHandler {
	return &PhotoHandler{
		photos:  photos,
		reviews: reviews,
	}
}

func (h PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userIDHeader := r.Header.Get("User-ID")
	userID, err := strconv.ParseInt(userIDHeader, 10, 64)
	if err != nil {
		logger.Log.Error("error while parsing user ID from header", logger.String("user_id", userIDHeader), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var upload dto.PhotoUpload
	if err := json.NewDecoder(r.Body).Decode(&upload); err != nil {
		logger.Log.Warn("error while decoding an upload request")
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

	if err := upload.IsValid(); err != nil {
		logger.Log.Warn("invalid upload fields", logger.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	photo, err := h.photos.Upload(r.Context(), userID, upload.Title, upload.Description, upload.Tags)
	if err != nil {
		logger.Log.Error("error while uploading photo", logger.Int64("user_id", userID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(photoDTO(*photo))
	if err != nil {
		logger.Log.Error("error while encoding photo to JSON", logger.Int64("user_id", userID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}

func (h PhotoHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	userIDHeader := r.Header.Get("User-ID")
	userID, err := strconv.ParseInt(userIDHeader, 10, 64)
	if err != nil {
		logger.Log.Error("error while parsing user ID from header", logger.String("user_id", userIDHeader), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	photos, err := h.photos.Photos(r.Context(), userID)
	if err != nil {
		logger.Log.Error("error while fetching photos", logger.Int64("user_id", userID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writePhotos(w, photos)
}

func (h PhotoHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	photos, err := h.photos.Pending(r.Context())
	if err != nil {
		logger.Log.Error("error while fetching pending photos", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writePhotos(w, photos)
}

func (h PhotoHandler) Approve(w http.ResponseWriter, r *http.Request) {
	reviewerID, photoID, ok := reviewIDs(w, r)
	if !ok {
		return
	}

	err := h.reviews.Approve(r.Context(), photoID, reviewerID)
	if err != nil {
		if errors.Is(err, domain.ErrPhotoNotFound) {
			http.Error(w, "photo not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, domain.ErrAlreadyReviewed) {
			http.Error(w, "photo has already been reviewed", http.StatusConflict)
			return
		}

		logger.Log.Error("error while approving photo", logger.Int64("photo_id", photoID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h PhotoHandler) Reject(w http.ResponseWriter, r *http.Request) {
	reviewerID, photoID, ok := reviewIDs(w, r)
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

	err := h.reviews.Reject(r.Context(), photoID, reviewerID, reject.Reason)
	if err != nil {
		if errors.Is(err, domain.ErrPhotoNotFound) {
			http.Error(w, "photo not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, domain.ErrAlreadyReviewed) {
			http.Error(w, "photo has already been reviewed", http.StatusConflict)
			return
		}
		if errors.Is(err, domain.ErrInvalidReason) {
			http.Error(w, "rejection reason is required", http.StatusBadRequest)
			return
		}

		logger.Log.Error("error while rejecting photo", logger.Int64("photo_id", photoID), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func reviewIDs(w http.ResponseWriter, r *http.Request) (reviewerID, photoID int64, ok bool) {
	userIDHeader := r.Header.Get("User-ID")
	reviewerID, err := strconv.ParseInt(userIDHeader, 10, 64)
	if err != nil {
		logger.Log.Error("error while parsing user ID from header", logger.String("user_id", userIDHeader), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return 0, 0, false
	}

	photoID, err = strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		logger.Log.Warn("invalid photo ID", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return 0, 0, false
	}

	return reviewerID, photoID, true
}

func writePhotos(w http.ResponseWriter, photos []domain.Photo) {
	if len(photos) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	dtos := make([]dto.Photo, len(photos))
	for i, photo := range photos {
		dtos[i] = photoDTO(photo)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err := json.NewEncoder(w).Encode(dtos)
	if err != nil {
		logger.Log.Error("error while encoding photos to JSON", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}

func photoDTO(photo domain.Photo) dto.Photo {
	p := dto.Photo{
		ID:              photo.ID,
		Title:           photo.Title,
		Description:     photo.Description,
		Tags:            photo.Tags,
		Status:          photo.Status,
		UploadedAt:      photo.UploadedAt.Format(time.RFC3339),
		RejectionReason: photo.RejectionReason,
	}
	if photo.ReviewedAt != nil {
		p.ReviewedAt = photo.ReviewedAt.Format(time.RFC3339)
	}

	return p
}
