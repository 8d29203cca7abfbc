package photohandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/zaikanghel/Photo-Earn/internal/domain"
)

type stubPhotoService struct {
	photos []domain.Photo
}

func (s *stubPhotoService) Upload(_ context.Context, userID int64, title, description string, tags []string) (*domain.Photo, error) {
	return &domain.Photo{
		ID:          1,
		UserID:      userID,
		Title:       title,
		Description: description,
		Tags:        tags,
		Status:      domain.StatusPending,
		UploadedAt:  time.Now(),
	}, nil
}

func (s *stubPhotoService) Photos(_ context.Context, _ int64) ([]domain.Photo, error) {
	return s.photos, nil
}

func (s *stubPhotoService) Pending(_ context.Context) ([]domain.Photo, error) {
	return s.photos, nil
}

type stubReviewService struct {
	approveErr error
	rejectErr  error
}

func (s *stubReviewService) Approve(_ context.Context, _, _ int64) error {
	return s.approveErr
}

func (s *stubReviewService) Reject(_ context.Context, _, _ int64, _ string) error {
	return s.rejectErr
}

func testRouter(photos PhotoService, reviews ReviewService) *chi.Mux {
	h := New(photos, reviews)

	r := chi.NewRouter()
	r.Post("/api/photos", h.Upload)
	r.Get("/api/photos", h.ListPhotos)
	r.Post("/api/admin/photos/{id}/approve", h.Approve)
	r.Post("/api/admin/photos/{id}/reject", h.Reject)

	return r
}

func TestUploadHandler(t *testing.T) {
	router := testRouter(&stubPhotoService{}, &stubReviewService{})

	body := `{"title":"Sunset","description":"over the bay","tags":["sky"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/photos", strings.NewReader(body))
	req.Header.Set("User-ID", "1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sunset")
}

func TestUploadHandlerRequiresTitle(t *testing.T) {
	router := testRouter(&stubPhotoService{}, &stubReviewService{})

	req := httptest.NewRequest(http.MethodPost, "/api/photos", strings.NewReader(`{"title":"  "}`))
	req.Header.Set("User-ID", "1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListPhotosEmpty(t *testing.T) {
	router := testRouter(&stubPhotoService{}, &stubReviewService{})

	req := httptest.NewRequest(http.MethodGet, "/api/photos", nil)
	req.Header.Set("User-ID", "1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestApproveStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "approved", wantStatus: http.StatusOK},
		{name: "not found", serviceErr: domain.ErrPhotoNotFound, wantStatus: http.StatusNotFound},
		{name: "already reviewed", serviceErr: domain.ErrAlreadyReviewed, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := testRouter(&stubPhotoService{}, &stubReviewService{approveErr: tt.serviceErr})

			req := httptest.NewRequest(http.MethodPost, "/api/admin/photos/10/approve", nil)
			req.Header.Set("User-ID", "99")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRejectMissingReason(t *testing.T) {
	router := testRouter(&stubPhotoService{}, &stubReviewService{rejectErr: domain.ErrInvalidReason})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/photos/10/reject", strings.NewReader(`{"reason":""}`))
	req.Header.Set("User-ID", "99")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApproveBadID(t *testing.T) {
	router := testRouter(&stubPhotoService{}, &stubReviewService{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/photos/abc/approve", nil)
	req.Header.Set("User-ID", "99")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
