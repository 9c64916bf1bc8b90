// Package eventstest provides a mock of events.Service.
package eventstest

import (
	"context"

	"github.com/go-rel/jpql-example/events"
	"github.com/stretchr/testify/mock"
)

// Service is a mock type for the Service type.
type Service struct {
	mock.Mock
}

// Search provides a mock function with given fields: ctx, result, filter
func (_m *Service) Search(ctx context.Context, result *[]events.Event, filter events.Filter) error {
	ret := _m.Called(ctx, result, filter)
	return ret.Error(0)
}

// Create provides a mock function with given fields: ctx, event
func (_m *Service) Create(ctx context.Context, event *events.Event) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

// Seed provides a mock function with given fields: ctx
func (_m *Service) Seed(ctx context.Context) ([]events.Event, error) {
	ret := _m.Called(ctx)

	var r0 []events.Event
	if result, ok := ret.Get(0).([]events.Event); ok {
		r0 = result
	}

	return r0, ret.Error(1)
}

var _ events.Service = (*Service)(nil)
