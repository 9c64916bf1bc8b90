package jpql

import "strings"

// clauseSet keeps fragments in insertion order without duplicates.
type clauseSet struct {
	items []string
	seen  map[string]struct{}
}

func (s *clauseSet) add(item string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}

	if _, ok := s.seen[item]; ok {
		return
	}

	s.seen[item] = struct{}{}
	s.items = append(s.items, item)
}

func (s clauseSet) len() int {
	return len(s.items)
}

func (s clauseSet) join(sep string) string {
	return strings.Join(s.items, sep)
}
