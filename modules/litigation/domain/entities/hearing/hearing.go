package hearing

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Hearing is one court appearance on a case's timeline.
type Hearing struct {
	id        uuid.UUID
	caseID    uuid.UUID
	date      time.Time
	brief     string
	createdBy int64
	createdAt time.Time
}

func New(caseID uuid.UUID, date time.Time, brief string, actor int64) Hearing {
	return Hearing{
		caseID:    caseID,
		date:      date,
		brief:     strings.TrimSpace(brief),
		createdBy: actor,
	}
}

func Hydrate(id, caseID uuid.UUID, date time.Time, brief string, createdBy int64, createdAt time.Time) Hearing {
	return Hearing{
		id:        id,
		caseID:    caseID,
		date:      date,
		brief:     brief,
		createdBy: createdBy,
		createdAt: createdAt,
	}
}

func (h Hearing) ID() uuid.UUID        { return h.id }
func (h Hearing) CaseID() uuid.UUID    { return h.caseID }
func (h Hearing) Date() time.Time      { return h.date }
func (h Hearing) Brief() string        { return h.brief }
func (h Hearing) CreatedBy() int64     { return h.createdBy }
func (h Hearing) CreatedAt() time.Time { return h.createdAt }
