package events_test

import (
	"testing"

	"github.com/go-rel/jpql-example/events"
	"github.com/stretchr/testify/assert"
)

func TestEvent_Validate(t *testing.T) {
	assert.Equal(t, events.ErrEventTitleBlank, events.Event{}.Validate())
	assert.NoError(t, events.Event{Title: "Hello"}.Validate())
}

func TestEvent_Persisted(t *testing.T) {
	assert.False(t, events.Event{}.Persisted())
	assert.True(t, events.Event{ID: 1}.Persisted())
}
