package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/courtdesk/courtdesk/modules/litigation/domain/aggregates/caserecord"
	"github.com/courtdesk/courtdesk/pkg/composables"
	"github.com/courtdesk/courtdesk/pkg/eventbus"
)

type CaseService struct {
	repo      caserecord.Repository
	publisher eventbus.EventBus
}

func NewCaseService(repo caserecord.Repository, publisher eventbus.EventBus) *CaseService {
	return &CaseService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *CaseService) GetByID(ctx context.Context, id uuid.UUID) (caserecord.Case, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CaseService) GetByCaseID(ctx context.Context, caseID string) (caserecord.Case, error) {
	return s.repo.GetByCaseID(ctx, caseID)
}

func (s *CaseService) GetPaginated(ctx context.Context, params *caserecord.FindParams) ([]caserecord.Case, int64, error) {
	return s.repo.GetPaginated(ctx, params)
}

func (s *CaseService) Recent(ctx context.Context, limit int) ([]caserecord.Case, error) {
	return s.repo.Recent(ctx, limit)
}

func (s *CaseService) UpcomingHearings(ctx context.Context, from, to time.Time) ([]caserecord.Case, error) {
	return s.repo.UpcomingHearings(ctx, from, to)
}

// Create allocates the next case id for the current year and inserts the
// case in one transaction, so two concurrent creates cannot race on the id.
func (s *CaseService) Create(ctx context.Context, dto *caserecord.CreateDTO) (caserecord.Case, error) {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return caserecord.Case{}, err
	}

	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (caserecord.Case, error) {
		caseID, err := s.repo.NextCaseID(txCtx, time.Now().Year())
		if err != nil {
			return caserecord.Case{}, err
		}
		entity, err := dto.ToEntity(caseID, actor)
		if err != nil {
			return caserecord.Case{}, err
		}
		return s.repo.Create(txCtx, entity)
	})
	if err != nil {
		return caserecord.Case{}, err
	}

	s.publisher.Publish(caserecord.NewCreatedEvent(ctx, created))
	return created, nil
}

// Update reads and rewrites the case in one transaction so the edit lands on
// the row it was validated against.
func (s *CaseService) Update(ctx context.Context, id uuid.UUID, dto *caserecord.UpdateDTO) (caserecord.Case, error) {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return caserecord.Case{}, err
	}

	updated, err := composables.InTxResult(ctx, func(txCtx context.Context) (caserecord.Case, error) {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return caserecord.Case{}, err
		}
		entity, err := dto.Apply(existing, actor)
		if err != nil {
			return caserecord.Case{}, err
		}
		return s.repo.Update(txCtx, entity)
	})
	if err != nil {
		return caserecord.Case{}, err
	}

	s.publisher.Publish(caserecord.NewUpdatedEvent(ctx, updated))
	return updated, nil
}

func (s *CaseService) AddParty(ctx context.Context, id uuid.UUID, dto *caserecord.AddPartyDTO) (caserecord.Party, error) {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return caserecord.Party{}, err
	}

	return composables.InTxResult(ctx, func(txCtx context.Context) (caserecord.Party, error) {
		return s.repo.AddParty(txCtx, id, caserecord.PartyType(dto.PartyType), dto.Name, dto.Address, actor)
	})
}

func (s *CaseService) RemoveParty(ctx context.Context, id uuid.UUID, partyType caserecord.PartyType, number int) error {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return err
	}

	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.RemoveParty(txCtx, id, partyType, number, actor)
	})
}
