package persistence

import (
	"context"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/courtdesk/courtdesk/modules/litigation/domain/entities/hearing"
	"github.com/courtdesk/courtdesk/pkg/composables"
)

type HearingRepository struct{}

func NewHearingRepository() hearing.Repository {
	return &HearingRepository{}
}

func (r *HearingRepository) Create(ctx context.Context, h hearing.Hearing) (hearing.Hearing, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return hearing.Hearing{}, err
	}

	var (
		id        uuid.UUID
		createdAt time.Time
	)
	err = tx.QueryRow(ctx, `
		INSERT INTO hearings (case_id, hearing_date, brief, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		h.CaseID(), h.Date(), nullable(h.Brief()), h.CreatedBy(),
	).Scan(&id, &createdAt)
	if err != nil {
		return hearing.Hearing{}, gerrors.Wrap(err, "insert hearing")
	}

	return hearing.Hydrate(id, h.CaseID(), h.Date(), h.Brief(), h.CreatedBy(), createdAt), nil
}

func (r *HearingRepository) ListByCase(ctx context.Context, caseID uuid.UUID) ([]hearing.Hearing, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT id, case_id, hearing_date, COALESCE(brief, ''), COALESCE(created_by, 0), created_at
		FROM hearings
		WHERE case_id = $1
		ORDER BY hearing_date DESC, created_at DESC`, caseID)
	if err != nil {
		return nil, gerrors.Wrap(err, "query hearings")
	}
	defer rows.Close()

	var out []hearing.Hearing
	for rows.Next() {
		var (
			id        uuid.UUID
			cid       uuid.UUID
			date      time.Time
			brief     string
			createdBy int64
			createdAt time.Time
		)
		if err := rows.Scan(&id, &cid, &date, &brief, &createdBy, &createdAt); err != nil {
			return nil, err
		}
		out = append(out, hearing.Hydrate(id, cid, date, brief, createdBy, createdAt))
	}
	return out, rows.Err()
}

func (r *HearingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, "DELETE FROM hearings WHERE id = $1", id)
	if err != nil {
		return gerrors.Wrap(err, "delete hearing")
	}
	if tag.RowsAffected() == 0 {
		return hearing.ErrNotFound
	}
	return nil
}
