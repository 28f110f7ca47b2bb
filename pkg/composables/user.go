package composables

import (
	"context"
	"errors"

	"github.com/courtdesk/courtdesk/pkg/constants"
)

var ErrNoUser = errors.New("no acting user in context")

// WithUser binds the acting user's id to the context. The id is attribution
// only; authentication happens upstream of this service.
func WithUser(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, constants.UserKey, id)
}

func UseUser(ctx context.Context) (int64, error) {
	id, ok := ctx.Value(constants.UserKey).(int64)
	if !ok {
		return 0, ErrNoUser
	}
	return id, nil
}
