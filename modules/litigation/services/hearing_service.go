package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/courtdesk/courtdesk/modules/litigation/domain/aggregates/caserecord"
	"github.com/courtdesk/courtdesk/modules/litigation/domain/entities/hearing"
	"github.com/courtdesk/courtdesk/pkg/composables"
	"github.com/courtdesk/courtdesk/pkg/eventbus"
)

type HearingService struct {
	repo      hearing.Repository
	cases     caserecord.Repository
	publisher eventbus.EventBus
}

func NewHearingService(repo hearing.Repository, cases caserecord.Repository, publisher eventbus.EventBus) *HearingService {
	return &HearingService{
		repo:      repo,
		cases:     cases,
		publisher: publisher,
	}
}

func (s *HearingService) ListByCase(ctx context.Context, caseID uuid.UUID) ([]hearing.Hearing, error) {
	return s.repo.ListByCase(ctx, caseID)
}

// Add records a hearing and stamps the case's last hearing date with it,
// both in one transaction.
func (s *HearingService) Add(ctx context.Context, caseID uuid.UUID, dto *hearing.AddDTO) (hearing.Hearing, error) {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return hearing.Hearing{}, err
	}

	entity, err := dto.ToEntity(caseID, actor)
	if err != nil {
		return hearing.Hearing{}, err
	}

	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (hearing.Hearing, error) {
		if _, err := s.cases.GetByID(txCtx, caseID); err != nil {
			return hearing.Hearing{}, err
		}
		h, err := s.repo.Create(txCtx, entity)
		if err != nil {
			return hearing.Hearing{}, err
		}
		if err := s.cases.RefreshLastHearing(txCtx, caseID, h.Date(), actor); err != nil {
			return hearing.Hearing{}, err
		}
		return h, nil
	})
	if err != nil {
		return hearing.Hearing{}, err
	}

	s.publisher.Publish(hearing.NewCreatedEvent(ctx, created))
	return created, nil
}

func (s *HearingService) Delete(ctx context.Context, id uuid.UUID) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
}
