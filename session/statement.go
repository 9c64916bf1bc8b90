package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-rel/rel"
	"go.uber.org/zap"
)

// Statement is a prepared query with named parameters.
type Statement struct {
	session *Session
	text    string
	names   map[string]struct{}
	values  map[string]any
}

type scalar struct {
	Value *float64 `db:"value"`
}

// Text of the query.
func (s *Statement) Text() string {
	return s.text
}

// Bind value to a named parameter, the leading colon is optional.
func (s *Statement) Bind(name string, value any) error {
	if !strings.HasPrefix(name, ":") {
		name = ":" + name
	}

	if _, ok := s.names[name]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownParameter, name)
	}

	s.values[name] = value
	return nil
}

// SQL translation of the statement and its positional arguments.
func (s *Statement) SQL() (string, []any, error) {
	return translate(s.text, s.session.registry, s.values)
}

// FindAll loads every row into records.
func (s *Statement) FindAll(ctx context.Context, records any) error {
	return s.execute("find_all", func(statement string, args []any) error {
		return s.session.repository.FindAll(ctx, records, rel.SQL(statement, args...))
	})
}

// Find loads the first row into record.
func (s *Statement) Find(ctx context.Context, record any) error {
	return s.execute("find", func(statement string, args []any) error {
		return s.session.repository.Find(ctx, record, rel.SQL(statement, args...))
	})
}

// Scalar returns the single value selected by an aggregate statement.
// NULL results are returned as zero.
func (s *Statement) Scalar(ctx context.Context) (float64, error) {
	var rows []scalar

	err := s.execute("scalar", func(statement string, args []any) error {
		return s.session.repository.FindAll(ctx, &rows, rel.SQL("SELECT ("+statement+") AS value", args...))
	})
	if err != nil || len(rows) == 0 || rows[0].Value == nil {
		return 0, err
	}

	return *rows[0].Value, nil
}

func (s *Statement) execute(operation string, fn func(statement string, args []any) error) error {
	statement, args, err := s.SQL()
	if err != nil {
		return err
	}

	start := time.Now()
	err = fn(statement, args)
	observe(operation, start, err)

	logger.Debug("statement executed",
		zap.String("operation", operation),
		zap.String("sql", statement),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err))

	return err
}
