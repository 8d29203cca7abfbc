package service

import (
	"context"

	"github.com/zaikanghel/Photo-Earn/internal/domain"
)

type statsRepository interface {
	Stats(ctx context.Context) (*domain.Stats, error)
}

type StatsService struct {
	repo statsRepository
}

func NewStatsService(repo statsRepository) *StatsService {
	return &StatsService{repo: repo}
}

func (s *StatsService) Stats(ctx context.Context) (*domain.Stats, error) {
	return s.repo.Stats(ctx)
}
