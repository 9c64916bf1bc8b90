package events

import (
	"context"

	"github.com/go-rel/jpql-example/repository"
	"go.uber.org/zap"
)

type create struct {
	repository repository.Repository[Event]
}

// Create an event after validating it.
func (c create) Create(ctx context.Context, event *Event) error {
	if err := event.Validate(); err != nil {
		logger.Warn("validation error", zap.Error(err))
		return err
	}

	return c.repository.Save(ctx, event)
}
