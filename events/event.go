// Package events schedules dated events.
package events

import (
	"errors"
	"time"

	"github.com/go-rel/jpql-example/session"
)

// Entity name of Event in queries.
const Entity = "Event"

var (
	// ErrEventTitleBlank validation error.
	ErrEventTitleBlank = errors.New("Title can't be blank")
)

// Event on a date.
type Event struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Persisted reports whether the event has been stored.
func (e Event) Persisted() bool {
	return e.ID != 0
}

// Validate event.
func (e Event) Validate() error {
	var err error
	switch {
	case len(e.Title) == 0:
		err = ErrEventTitleBlank
	}

	return err
}

// Mapping of Event for query sessions.
var Mapping = session.Mapping{
	Entity: Entity,
	Table:  "events",
}
