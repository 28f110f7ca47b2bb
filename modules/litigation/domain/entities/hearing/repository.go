package hearing

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("hearing not found")

type Repository interface {
	Create(ctx context.Context, h Hearing) (Hearing, error)
	// ListByCase returns hearings most recent first.
	ListByCase(ctx context.Context, caseID uuid.UUID) ([]Hearing, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
