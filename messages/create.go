package messages

import (
	"context"

	"github.com/go-rel/jpql-example/repository"
	"go.uber.org/zap"
)

var logger, _ = zap.NewProduction(zap.Fields(zap.String("type", "messages")))

type create struct {
	repository repository.Repository[Message]
}

// Create a message after validating it.
func (c create) Create(ctx context.Context, message *Message) error {
	if err := message.Validate(); err != nil {
		logger.Warn("validation error", zap.Error(err))
		return err
	}

	return c.repository.Save(ctx, message)
}
