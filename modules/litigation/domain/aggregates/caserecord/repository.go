package caserecord

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type FindParams struct {
	// Search matches case no, display case id, and party names.
	Search string
	Status Status
	Forum  Forum
	Limit  int
	Offset int
}

type StatusCount struct {
	Status Status
	Count  int64
}

type ForumCount struct {
	Forum Forum
	Count int64
}

type Repository interface {
	// NextCaseID returns the next free identifier for the year: the 4-digit
	// year followed by a sequence zero-padded to at least 3 digits.
	NextCaseID(ctx context.Context, year int) (string, error)
	Create(ctx context.Context, c Case) (Case, error)
	// Update rewrites every editable column of the stored case; parties and
	// creation attribution are untouched.
	Update(ctx context.Context, c Case) (Case, error)
	GetByID(ctx context.Context, id uuid.UUID) (Case, error)
	GetByCaseID(ctx context.Context, caseID string) (Case, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]Case, int64, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
	CountByForum(ctx context.Context) ([]ForumCount, error)
	// UpcomingHearings lists cases whose next hearing falls in [from, to],
	// soonest first.
	UpcomingHearings(ctx context.Context, from, to time.Time) ([]Case, error)
	Recent(ctx context.Context, limit int) ([]Case, error)
	RefreshLastHearing(ctx context.Context, id uuid.UUID, hearingDate time.Time, actor int64) error
	// AddParty stores name under the next free slot on the given side and
	// bumps the case's update attribution.
	AddParty(ctx context.Context, caseID uuid.UUID, partyType PartyType, name, address string, actor int64) (Party, error)
	RemoveParty(ctx context.Context, caseID uuid.UUID, partyType PartyType, number int, actor int64) error
}
