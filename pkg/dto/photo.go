package dto

import (
	"fmt"
	"strings"
)

type PhotoUpload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
}

func (p PhotoUpload) IsValid() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("title is required")
	}

	return nil
}

/**
  {
      "id": 42,
      "title": "Sunset",
      "status": "pending",
      "uploaded_at": "2024-11-02T15:15:45+03:00"
  }
*/

type Photo struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Status          string   `json:"status"`
	UploadedAt      string   `json:"uploaded_at"`
	ReviewedAt      string   `json:"reviewed_at,omitempty"`
	RejectionReason string   `json:"rejection_reason,omitempty"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}
