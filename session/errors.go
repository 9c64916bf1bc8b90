package session

import "errors"

var (
	// ErrUnknownEntity error.
	ErrUnknownEntity = errors.New("session: unknown entity")
	// ErrMalformedQuery error.
	ErrMalformedQuery = errors.New("session: malformed query")
	// ErrUnknownParameter is returned when binding a name the query does not use.
	ErrUnknownParameter = errors.New("session: unknown parameter")
	// ErrUnboundParameter is returned when a parameter has no value.
	ErrUnboundParameter = errors.New("session: unbound parameter")
	// ErrUnknownAssociation error.
	ErrUnknownAssociation = errors.New("session: unknown association")
	// ErrUnjoinedAssociation is returned when a path navigates an association that is not joined.
	ErrUnjoinedAssociation = errors.New("session: association is not joined")
	// ErrUnsupported is returned for constructs without an SQL translation.
	ErrUnsupported = errors.New("session: unsupported construct")
)
