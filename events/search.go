package events

import (
	"context"
	"time"

	"github.com/go-rel/jpql-example/repository"
)

// Filter for search. Zero dates leave the range open.
type Filter struct {
	Title string
	From  time.Time
	To    time.Time
}

type search struct {
	repository repository.Repository[Event]
}

// Search events ordered by date.
func (s search) Search(ctx context.Context, events *[]Event, filter Filter) error {
	b := s.repository.QueryBuilder().BetweenDays("date", filter.From, filter.To)
	if filter.Title != "" {
		b.Like("title", "%"+filter.Title+"%")
	}

	result, err := s.repository.List(ctx, b.Asc("date"))
	if err != nil {
		return err
	}

	*events = result
	return nil
}
