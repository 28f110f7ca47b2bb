package hearing

import (
	"context"
	"time"

	"github.com/courtdesk/courtdesk/pkg/composables"
)

type CreatedEvent struct {
	Hearing   Hearing
	Actor     int64
	Timestamp time.Time
}

func NewCreatedEvent(ctx context.Context, h Hearing) *CreatedEvent {
	actor, _ := composables.UseUser(ctx)
	return &CreatedEvent{
		Hearing:   h,
		Actor:     actor,
		Timestamp: time.Now(),
	}
}
