package caserecord

import (
	"context"
	"time"

	"github.com/courtdesk/courtdesk/pkg/composables"
)

type CreatedEvent struct {
	Case      Case
	Actor     int64
	Timestamp time.Time
}

func NewCreatedEvent(ctx context.Context, c Case) *CreatedEvent {
	actor, _ := composables.UseUser(ctx)
	return &CreatedEvent{
		Case:      c,
		Actor:     actor,
		Timestamp: time.Now(),
	}
}

type UpdatedEvent struct {
	Case      Case
	Actor     int64
	Timestamp time.Time
}

func NewUpdatedEvent(ctx context.Context, c Case) *UpdatedEvent {
	actor, _ := composables.UseUser(ctx)
	return &UpdatedEvent{
		Case:      c,
		Actor:     actor,
		Timestamp: time.Now(),
	}
}
