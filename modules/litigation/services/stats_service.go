package services

import (
	"context"
	"time"

	"github.com/courtdesk/courtdesk/modules/litigation/domain/aggregates/caserecord"
)

// Stats is the dashboard snapshot: totals, breakdowns, and what needs
// attention in the next two weeks.
type Stats struct {
	TotalCases      int64
	ByStatus        []caserecord.StatusCount
	ByForum         []caserecord.ForumCount
	UpcomingCases   []caserecord.Case
	RecentlyUpdated []caserecord.Case
}

const (
	upcomingWindow = 10 * 24 * time.Hour
	recentLimit    = 5
)

type StatsService struct {
	repo caserecord.Repository
}

func NewStatsService(repo caserecord.Repository) *StatsService {
	return &StatsService{repo: repo}
}

func (s *StatsService) Snapshot(ctx context.Context) (*Stats, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byForum, err := s.repo.CountByForum(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().Truncate(24 * time.Hour)
	upcoming, err := s.repo.UpcomingHearings(ctx, now, now.Add(upcomingWindow))
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.Recent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalCases:      total,
		ByStatus:        byStatus,
		ByForum:         byForum,
		UpcomingCases:   upcoming,
		RecentlyUpdated: recent,
	}, nil
}
