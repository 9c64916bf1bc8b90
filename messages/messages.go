package messages

import (
	"context"

	"github.com/go-rel/jpql-example/jpql"
	"github.com/go-rel/jpql-example/repository"
	"github.com/go-rel/jpql-example/session"
	"github.com/go-rel/rel"
)

// Service instance for message's domain.
// Any operation done to any of object within this domain should use this service.
type Service interface {
	Search(ctx context.Context, messages *[]Message, filter Filter) error
	Count(ctx context.Context, filter Filter) (int, error)
	Query(filter Filter) (*jpql.Builder, error)
	FilterByContentAndID(ctx context.Context, content string, id string) ([]Message, error)
	Create(ctx context.Context, message *Message) error
	Delete(ctx context.Context, message *Message) error
}

// beside embeding the struct, you can also declare the function directly on this struct.
// the advantage of embedding the struct is it allows spreading the implementation across multiple files.
type service struct {
	search
	create
	delete
}

var _ Service = (*service)(nil)

// New Messages service.
func New(repo rel.Repository, session *session.Session, options ...jpql.Option) Service {
	messages := repository.New[Message](repo, session, Entity, options...)

	return service{
		search: search{repository: messages},
		create: create{repository: messages},
		delete: delete{repository: messages},
	}
}
