package service

import (
	"context"
	"fmt"

	"github.com/zaikanghel/Photo-Earn/internal/domain"
)

type photoRepository interface {
	CreatePhoto(ctx context.Context, photo domain.Photo) (int64, error)
	PhotosByUser(ctx context.Context, userID int64) ([]domain.Photo, error)
	PendingPhotos(ctx context.Context) ([]domain.Photo, error)
}

type PhotoService struct {
	repo     photoRepository
	notifier adminNotifier
}

func NewPhotoService(repo photoRepository, notifier adminNotifier) *PhotoService {
	return &PhotoService{
		repo:     repo,
		notifier: notifier,
	}
}

func (s *PhotoService) Upload(ctx context.Context, userID int64, title, description string, tags []string) (*domain.Photo, error) {
	photo := domain.Photo{
		UserID:      userID,
		Title:       title,
		Description: description,
		Tags:        tags,
		Status:      domain.StatusPending,
	}

	id, err := s.repo.CreatePhoto(ctx, photo)
	if err != nil {
		return nil, err
	}

	photo.ID = id

	s.notifier.NotifyAdmins(ctx, "New Photo Pending",
		fmt.Sprintf("Photo %q is awaiting review.", title),
		domain.AdminNotificationPhotoPending, &id)

	return &photo, nil
}

func (s *PhotoService) Photos(ctx context.Context, userID int64) ([]domain.Photo, error) {
	return s.repo.PhotosByUser(ctx, userID)
}

func (s *PhotoService) Pending(ctx context.Context) ([]domain.Photo, error) {
	return s.repo.PendingPhotos(ctx)
}
