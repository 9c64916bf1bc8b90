// Package session prepares rendered jpql statements and executes them through rel.
package session

import (
	"context"
	"fmt"

	"github.com/go-rel/jpql-example/jpql"
	"github.com/go-rel/rel"
	"go.uber.org/zap"
)

var logger, _ = zap.NewProduction(zap.Fields(zap.String("type", "session")))

// Session is the execution context of jpql statements.
type Session struct {
	repository rel.Repository
	registry   *Registry
}

// Registry of entity mappings.
func (s *Session) Registry() *Registry {
	return s.registry
}

// Prepare query text. Every entity named in a FROM clause must be registered.
func (s *Session) Prepare(text string) (*Statement, error) {
	sources := fromPattern.FindAllStringSubmatch(text, -1)
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: missing FROM clause", ErrMalformedQuery)
	}

	for _, source := range sources {
		if _, ok := s.registry.Lookup(source[1]); !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownEntity, source[1])
		}
	}

	names := make(map[string]struct{})
	for _, name := range namePattern.FindAllString(text, -1) {
		names[name] = struct{}{}
	}

	return &Statement{
		session: s,
		text:    text,
		names:   names,
		values:  make(map[string]any),
	}, nil
}

// Query prepares b and binds its parameters.
func (s *Session) Query(b *jpql.Builder) (*Statement, error) {
	return jpql.Prepare[*Statement](s, b)
}

// Transaction runs fn inside a database transaction.
func (s *Session) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.repository.Transaction(ctx, fn)
}

// Ping the database.
func (s *Session) Ping(ctx context.Context) error {
	return s.repository.Ping(ctx)
}

// New session.
func New(repository rel.Repository, registry *Registry) *Session {
	return &Session{
		repository: repository,
		registry:   registry,
	}
}
