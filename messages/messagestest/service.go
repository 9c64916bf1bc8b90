// Package messagestest provides a mock of messages.Service.
package messagestest

import (
	"context"

	"github.com/go-rel/jpql-example/jpql"
	"github.com/go-rel/jpql-example/messages"
	"github.com/stretchr/testify/mock"
)

// Service is a mock type for the Service type.
type Service struct {
	mock.Mock
}

// Search provides a mock function with given fields: ctx, result, filter
func (_m *Service) Search(ctx context.Context, result *[]messages.Message, filter messages.Filter) error {
	ret := _m.Called(ctx, result, filter)
	return ret.Error(0)
}

// Count provides a mock function with given fields: ctx, filter
func (_m *Service) Count(ctx context.Context, filter messages.Filter) (int, error) {
	ret := _m.Called(ctx, filter)
	return ret.Int(0), ret.Error(1)
}

// Query provides a mock function with given fields: filter
func (_m *Service) Query(filter messages.Filter) (*jpql.Builder, error) {
	ret := _m.Called(filter)

	var r0 *jpql.Builder
	if b, ok := ret.Get(0).(*jpql.Builder); ok {
		r0 = b
	}

	return r0, ret.Error(1)
}

// FilterByContentAndID provides a mock function with given fields: ctx, content, id
func (_m *Service) FilterByContentAndID(ctx context.Context, content string, id string) ([]messages.Message, error) {
	ret := _m.Called(ctx, content, id)

	var r0 []messages.Message
	if result, ok := ret.Get(0).([]messages.Message); ok {
		r0 = result
	}

	return r0, ret.Error(1)
}

// Create provides a mock function with given fields: ctx, message
func (_m *Service) Create(ctx context.Context, message *messages.Message) error {
	ret := _m.Called(ctx, message)
	return ret.Error(0)
}

// Delete provides a mock function with given fields: ctx, message
func (_m *Service) Delete(ctx context.Context, message *messages.Message) error {
	ret := _m.Called(ctx, message)
	return ret.Error(0)
}

var _ messages.Service = (*Service)(nil)
