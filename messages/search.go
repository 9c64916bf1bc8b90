package messages

import (
	"context"

	"github.com/go-rel/jpql-example/jpql"
	"github.com/go-rel/jpql-example/repository"
	"go.uber.org/zap"
)

// Filter for search.
type Filter struct {
	Keyword   string
	Profile   string
	ProfileID int
	FromID    int
	ToID      int
}

type search struct {
	repository repository.Repository[Message]
}

// Search messages, newest first.
func (s search) Search(ctx context.Context, messages *[]Message, filter Filter) error {
	b, err := s.Query(filter)
	if err != nil {
		return err
	}

	result, err := s.repository.List(ctx, b)
	if err != nil {
		logger.Error("search error", zap.String("query", b.Render()), zap.Error(err))
		return err
	}

	*messages = result
	return nil
}

// Count messages matching filter.
func (s search) Count(ctx context.Context, filter Filter) (int, error) {
	b, err := s.where(filter)
	if err != nil {
		return 0, err
	}

	if err := b.Aggregate("count"); err != nil {
		return 0, err
	}

	count, err := s.repository.Scalar(ctx, b)
	return int(count), err
}

// Query returns the builder used by Search.
func (s search) Query(filter Filter) (*jpql.Builder, error) {
	b, err := s.where(filter)
	if err != nil {
		return nil, err
	}

	return b.Desc("id"), nil
}

// FilterByContentAndID matches content and id as patterns.
func (s search) FilterByContentAndID(ctx context.Context, content string, id string) ([]Message, error) {
	b := s.repository.QueryBuilder().Like("content", content).Like("id", id)
	return s.repository.List(ctx, b)
}

func (s search) where(filter Filter) (*jpql.Builder, error) {
	b := s.repository.QueryBuilder()

	if filter.Profile != "" {
		if err := b.Join("LEFT JOIN", "profile"); err != nil {
			return nil, err
		}

		b.Like("profile.name", filter.Profile+"%")
	}

	if filter.Keyword != "" {
		b.Like("content", "%"+filter.Keyword+"%")
	}

	if filter.ProfileID != 0 {
		b.Eq("profile.id", filter.ProfileID)
	}

	switch {
	case filter.FromID != 0 && filter.ToID != 0:
		b.Between("id", filter.FromID, filter.ToID)
	case filter.FromID != 0:
		b.Gte("id", filter.FromID)
	case filter.ToID != 0:
		b.Lte("id", filter.ToID)
	}

	return b, nil
}
