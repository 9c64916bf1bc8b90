package events

import (
	"context"
	"time"

	"github.com/go-rel/jpql-example/repository"
	"github.com/go-rel/jpql-example/session"
)

type seed struct {
	repository repository.Repository[Event]
	session    *session.Session
	now        func() time.Time
}

// Seed stores the "Hello" and "World" events in one transaction.
func (s seed) Seed(ctx context.Context) ([]Event, error) {
	var (
		now    = s.now()
		events = []Event{{Title: "Hello", Date: now}, {Title: "World", Date: now}}
	)

	err := s.session.Transaction(ctx, func(ctx context.Context) error {
		for i := range events {
			if err := s.repository.Save(ctx, &events[i]); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return events, nil
}
