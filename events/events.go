package events

import (
	"context"
	"time"

	"github.com/go-rel/jpql-example/jpql"
	"github.com/go-rel/jpql-example/repository"
	"github.com/go-rel/jpql-example/session"
	"github.com/go-rel/rel"
	"go.uber.org/zap"
)

var logger, _ = zap.NewProduction(zap.Fields(zap.String("type", "events")))

// Service instance for event's domain.
type Service interface {
	Search(ctx context.Context, events *[]Event, filter Filter) error
	Create(ctx context.Context, event *Event) error
	Seed(ctx context.Context) ([]Event, error)
}

type service struct {
	search
	create
	seed
}

var _ Service = (*service)(nil)

// New Events service.
func New(repo rel.Repository, session *session.Session, options ...jpql.Option) Service {
	events := repository.New[Event](repo, session, Entity, options...)

	return service{
		search: search{repository: events},
		create: create{repository: events},
		seed:   seed{repository: events, session: session, now: time.Now},
	}
}
