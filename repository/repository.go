// Package repository provides CRUD access to one entity type together with
// jpql queries against it.
package repository

import (
	"context"

	"github.com/go-rel/jpql-example/jpql"
	"github.com/go-rel/jpql-example/session"
	"github.com/go-rel/rel"
	"github.com/go-rel/rel/where"
)

// Persister is implemented by records that know whether they are stored.
type Persister interface {
	Persisted() bool
}

// Repository of T records.
type Repository[T any] struct {
	repository rel.Repository
	session    *session.Session
	entity     string
	options    []jpql.Option
}

// EntityName used in queries.
func (r Repository[T]) EntityName() string {
	return r.entity
}

// Save inserts record.
func (r Repository[T]) Save(ctx context.Context, record *T) error {
	return r.repository.Insert(ctx, record)
}

// Update record, rel refreshes updated_at.
func (r Repository[T]) Update(ctx context.Context, record *T, mutators ...rel.Mutator) error {
	return r.repository.Update(ctx, record, mutators...)
}

// SaveOrUpdate inserts record unless it reports being persisted.
func (r Repository[T]) SaveOrUpdate(ctx context.Context, record *T) error {
	if p, ok := any(record).(Persister); ok && p.Persisted() {
		return r.Update(ctx, record)
	}

	return r.Save(ctx, record)
}

// Delete record.
func (r Repository[T]) Delete(ctx context.Context, record *T) error {
	return r.repository.Delete(ctx, record)
}

// Find record by id.
func (r Repository[T]) Find(ctx context.Context, id int) (T, error) {
	var record T
	err := r.repository.Find(ctx, &record, where.Eq("id", id))
	return record, err
}

// FindAll records.
func (r Repository[T]) FindAll(ctx context.Context) ([]T, error) {
	var records []T
	err := r.repository.FindAll(ctx, &records)
	return records, err
}

// QueryBuilder for the entity.
func (r Repository[T]) QueryBuilder() *jpql.Builder {
	return jpql.New(r.entity, r.options...)
}

// List records selected by b.
func (r Repository[T]) List(ctx context.Context, b *jpql.Builder) ([]T, error) {
	var records []T

	statement, err := r.session.Query(b)
	if err != nil {
		return nil, err
	}

	err = statement.FindAll(ctx, &records)
	return records, err
}

// First record selected by b.
func (r Repository[T]) First(ctx context.Context, b *jpql.Builder) (T, error) {
	var record T

	statement, err := r.session.Query(b)
	if err != nil {
		return record, err
	}

	err = statement.Find(ctx, &record)
	return record, err
}

// Scalar value of an aggregate query.
func (r Repository[T]) Scalar(ctx context.Context, b *jpql.Builder) (float64, error) {
	statement, err := r.session.Query(b)
	if err != nil {
		return 0, err
	}

	return statement.Scalar(ctx)
}

// New repository for the entity registered as entity in the session.
func New[T any](repository rel.Repository, session *session.Session, entity string, options ...jpql.Option) Repository[T] {
	return Repository[T]{
		repository: repository,
		session:    session,
		entity:     entity,
		options:    options,
	}
}
