package dashboard

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medtrack/clinic-api/internal/model"
	"github.com/medtrack/clinic-api/internal/repository"
	"github.com/medtrack/clinic-api/pkg/cache"
	"github.com/medtrack/clinic-api/pkg/errors"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 60 * time.Second

	topDebtorsLimit  = 10
	recentVisitLimit = 10
)

type DashboardService interface {
	GetStats(ctx context.Context) (*model.DashboardStats, error)
}

// Service aggregates clinic-wide rollups. Results are cached briefly in
// Redis; every cache failure is treated as a miss.
type Service struct {
	patientRepo repository.PatientRepository
	visitRepo   repository.VisitRepository
	cache       cache.Cache
}

func NewService(patientRepo repository.PatientRepository, visitRepo repository.VisitRepository, c cache.Cache) *Service {
	return &Service{
		patientRepo: patientRepo,
		visitRepo:   visitRepo,
		cache:       c,
	}
}

func (s *Service) GetStats(ctx context.Context) (*model.DashboardStats, error) {
	if s.cache != nil {
		var cached model.DashboardStats
		if err := s.cache.Get(ctx, statsCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	stats, err := s.computeStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, statsCacheKey, stats, statsCacheTTL); err != nil {
			log.Warn().Err(err).Msg("failed to cache dashboard stats")
		}
	}
	return stats, nil
}

func (s *Service) computeStats(ctx context.Context) (*model.DashboardStats, error) {
	totalPatients, err := s.patientRepo.Count(ctx)
	if err != nil {
		return nil, errors.Internal(err)
	}

	totalVisits, err := s.visitRepo.Count(ctx)
	if err != nil {
		return nil, errors.Internal(err)
	}

	debtors, err := s.patientRepo.ListWithDebt(ctx, topDebtorsLimit)
	if err != nil {
		return nil, errors.Internal(err)
	}

	var totalDebt float64
	for _, p := range debtors {
		totalDebt += p.TotalDebt
	}

	casesPerDoctor, err := s.visitRepo.CountByDoctor(ctx)
	if err != nil {
		return nil, errors.Internal(err)
	}

	recent, err := s.visitRepo.ListRecent(ctx, recentVisitLimit)
	if err != nil {
		return nil, errors.Internal(err)
	}

	return &model.DashboardStats{
		TotalPatients:    totalPatients,
		TotalVisits:      totalVisits,
		TotalDebt:        totalDebt,
		CasesPerDoctor:   casesPerDoctor,
		RecentVisits:     recent,
		PatientsWithDebt: debtors,
	}, nil
}
