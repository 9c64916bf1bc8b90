package messages

import (
	"context"

	"github.com/go-rel/jpql-example/repository"
)

type delete struct {
	repository repository.Repository[Message]
}

// Delete a message.
func (d delete) Delete(ctx context.Context, message *Message) error {
	return d.repository.Delete(ctx, message)
}
