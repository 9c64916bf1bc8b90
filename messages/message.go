// Package messages is the message board domain.
package messages

import (
	"errors"
	"time"

	"github.com/go-rel/jpql-example/session"
)

// Entity name of Message in queries.
const Entity = "Message"

var (
	// ErrMessageContentBlank validation error.
	ErrMessageContentBlank = errors.New("Content can't be blank")
)

// Message posted on the board.
type Message struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	ProfileID *int      `json:"profile_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Persisted reports whether the message has been stored.
func (m Message) Persisted() bool {
	return m.ID != 0
}

// Validate message.
func (m Message) Validate() error {
	var err error
	switch {
	case len(m.Content) == 0:
		err = ErrMessageContentBlank
	}

	return err
}

// Profile of a message author.
type Profile struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Mappings of the domain entities for query sessions.
var Mappings = []session.Mapping{
	{
		Entity: Entity,
		Table:  "messages",
		Associations: map[string]session.Association{
			"profile": {Entity: "Profile", ForeignKey: "profile_id"},
		},
	},
	{
		Entity: "Profile",
		Table:  "profiles",
	},
}
