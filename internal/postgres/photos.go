package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/zaikanghel/Photo-Earn/internal/domain"
	"github.com/zaikanghel/Photo-Earn/pkg/logger"
)

func (p *Postgres) CreatePhoto(ctx context.Context, photo domain.Photo) (int64, error) {
	var id int64
	err := p.DB.QueryRowContext(ctx,
		`INSERT INTO photos (user_id, title, description, tags) VALUES ($1, $2, $3, $4) RETURNING id`,
		photo.UserID, photo.Title, photo.Description, strings.Join(photo.Tags, ",")).
		Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating photo: %w", err)
	}

	return id, nil
}

func (p *Postgres) Photo(ctx context.Context, id int64) (*domain.Photo, error) {
	row := p.DB.QueryRowContext(ctx,
		`SELECT id, user_id, title, description, tags, status, uploaded_at,
		        reviewed_at, reviewed_by, rejection_reason
		 FROM photos WHERE id = $1`, id)

	return scanPhoto(row.Scan)
}

// PhotoForReview loads a photo inside the review transaction, locking the
// row so concurrent reviewers serialize on it.
func (p *Postgres) PhotoForReview(ctx context.Context, tx *sql.Tx, id int64) (*domain.Photo, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT id, user_id, title, description, tags, status, uploaded_at,
		        reviewed_at, reviewed_by, rejection_reason
		 FROM photos WHERE id = $1 FOR UPDATE`, id)

	return scanPhoto(row.Scan)
}

func scanPhoto(scan func(...any) error) (*domain.Photo, error) {
	var photo domain.Photo
	var tags string
	var reviewedAt sql.NullTime
	var reviewedBy sql.NullInt64

	err := scan(&photo.ID, &photo.UserID, &photo.Title, &photo.Description, &tags,
		&photo.Status, &photo.UploadedAt, &reviewedAt, &reviewedBy, &photo.RejectionReason)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("error fetching photo: %w", err)
	}

	if tags != "" {
		photo.Tags = strings.Split(tags, ",")
	}
	if reviewedAt.Valid {
		photo.ReviewedAt = &reviewedAt.Time
	}
	if reviewedBy.Valid {
		photo.ReviewedBy = &reviewedBy.Int64
	}

	return &photo, nil
}

// ApprovePhoto flips a pending photo to approved. Zero affected rows means
// another reviewer won the race.
func (p *Postgres) ApprovePhoto(ctx context.Context, tx *sql.Tx, photoID, reviewerID int64) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE photos SET status = $1, reviewed_at = now(), reviewed_by = $2
		 WHERE id = $3 AND status = $4`,
		domain.StatusApproved, reviewerID, photoID, domain.StatusPending)
	if err != nil {
		return fmt.Errorf("error approving photo: %w", err)
	}

	return requireTransition(result, photoID, domain.ErrAlreadyReviewed)
}

func (p *Postgres) RejectPhoto(ctx context.Context, photoID, reviewerID int64, reason string) error {
	result, err := p.DB.ExecContext(ctx,
		`UPDATE photos SET status = $1, reviewed_at = now(), reviewed_by = $2, rejection_reason = $3
		 WHERE id = $4 AND status = $5`,
		domain.StatusRejected, reviewerID, reason, photoID, domain.StatusPending)
	if err != nil {
		return fmt.Errorf("error rejecting photo: %w", err)
	}

	return requireTransition(result, photoID, domain.ErrAlreadyReviewed)
}

func (p *Postgres) PhotosByUser(ctx context.Context, userID int64) ([]domain.Photo, error) {
	rows, err := p.DB.QueryContext(ctx,
		`SELECT id, user_id, title, description, tags, status, uploaded_at,
		        reviewed_at, reviewed_by, rejection_reason
		 FROM photos WHERE user_id = $1 ORDER BY uploaded_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching photos: %w", err)
	}

	return collectPhotos(rows)
}

func (p *Postgres) PendingPhotos(ctx context.Context) ([]domain.Photo, error) {
	rows, err := p.DB.QueryContext(ctx,
		`SELECT id, user_id, title, description, tags, status, uploaded_at,
		        reviewed_at, reviewed_by, rejection_reason
		 FROM photos WHERE status = $1 ORDER BY uploaded_at`, domain.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("error fetching pending photos: %w", err)
	}

	return collectPhotos(rows)
}

func collectPhotos(rows *sql.Rows) ([]domain.Photo, error) {
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			logger.Log.Error("error closing rows", logger.Error(err))
		}
	}(rows)

	var photos []domain.Photo
	for rows.Next() {
		photo, err := scanPhoto(rows.Scan)
		if err != nil {
			return nil, err
		}
		photos = append(photos, *photo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over photos: %w", err)
	}

	return photos, nil
}

// requireTransition maps a zero-row conditional status update to either a
// not-found or an already-transitioned error.
func requireTransition(result sql.Result, id int64, transitioned error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected for status update: %w", err)
	}
	if rowsAffected == 0 {
		logger.Log.Warn("status transition lost", logger.Int64("id", id))
		return transitioned
	}

	return nil
}
