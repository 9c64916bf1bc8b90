package jpql

import "errors"

var (
	// ErrInvalidAggregate error.
	ErrInvalidAggregate = errors.New("jpql: invalid aggregate function")
	// ErrInvalidJoin error.
	ErrInvalidJoin = errors.New("jpql: invalid join spec")
	// ErrInvalidDirection error.
	ErrInvalidDirection = errors.New("jpql: invalid order direction")
	// ErrSelfReference is returned when a builder is used as its own sub-query.
	ErrSelfReference = errors.New("jpql: builder references itself as sub-query")
	// ErrDetachedSubquery is returned for sub-queries not created with Subquery.
	ErrDetachedSubquery = errors.New("jpql: sub-query does not share the parameter namespace")
)
