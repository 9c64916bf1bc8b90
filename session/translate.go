package session

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

var (
	fromPattern      = regexp.MustCompile(`FROM (\w+) AS (\w+)`)
	joinPattern      = regexp.MustCompile(`\b((?:(?:LEFT|OUTER|INNER|JOIN|FETCH) )+)(\w+)\.(\w+)`)
	selectPattern    = regexp.MustCompile(`SELECT (.+?) FROM `)
	aggregatePattern = regexp.MustCompile(`^(?:AVG|MAX|MIN|SUM|COUNT)\(`)
	tokenPattern     = regexp.MustCompile(`[\w.]+`)
	deepPathPattern  = regexp.MustCompile(`\b\w+(?:\.\w+){3,}`)
	deepJoinPattern  = regexp.MustCompile(`\b(?:JOIN|FETCH) (\w+(?:\.\w+){2,})`)
	pathPattern      = regexp.MustCompile(`\b(\w+)\.(\w+)\.(\w+)\b`)
	namePattern      = regexp.MustCompile(`:\w+`)
	parameterPattern = regexp.MustCompile(`(IN )?(:\w+)`)
	emptyPattern     = regexp.MustCompile(`IS (?:NOT )?EMPTY`)
)

// translator rewrites rendered query text into MySQL flavoured SQL with
// positional arguments.
type translator struct {
	registry *Registry
	aliases  map[string]Mapping
	joined   map[string]bool
	values   map[string]any
	args     []any
	err      error
}

func translate(text string, registry *Registry, values map[string]any) (string, []any, error) {
	text = strings.Join(strings.Fields(text), " ")

	if emptyPattern.MatchString(text) {
		return "", nil, fmt.Errorf("%w: IS [NOT] EMPTY", ErrUnsupported)
	}

	if path := deepPathPattern.FindString(text); path != "" {
		return "", nil, fmt.Errorf("%w: path %s", ErrUnsupported, path)
	}

	if groups := deepJoinPattern.FindStringSubmatch(text); groups != nil {
		return "", nil, fmt.Errorf("%w: join path %s", ErrUnsupported, groups[1])
	}

	t := translator{
		registry: registry,
		aliases:  make(map[string]Mapping),
		joined:   make(map[string]bool),
		values:   values,
	}

	sql := fromPattern.ReplaceAllStringFunc(text, t.from)
	sql = joinPattern.ReplaceAllStringFunc(sql, t.join)
	sql = pathPattern.ReplaceAllStringFunc(sql, t.path)
	sql = selectPattern.ReplaceAllStringFunc(sql, t.projection)
	sql = parameterPattern.ReplaceAllStringFunc(sql, t.parameter)

	if t.err != nil {
		return "", nil, t.err
	}

	return sql, t.args, nil
}

func (t *translator) fail(err error) {
	if t.err == nil {
		t.err = err
	}
}

func (t *translator) from(match string) string {
	var (
		groups        = fromPattern.FindStringSubmatch(match)
		entity, alias = groups[1], groups[2]
	)

	mapping, ok := t.registry.Lookup(entity)
	if !ok {
		t.fail(fmt.Errorf("%w %q", ErrUnknownEntity, entity))
		return match
	}

	t.aliases[alias] = mapping
	return "FROM " + mapping.Table + " AS " + alias
}

func (t *translator) join(match string) string {
	var (
		groups      = joinPattern.FindStringSubmatch(match)
		alias, name = groups[2], groups[3]
		keywords    []string
	)

	for _, keyword := range strings.Fields(groups[1]) {
		if keyword != "FETCH" {
			keywords = append(keywords, keyword)
		}
	}

	owner, ok := t.aliases[alias]
	if !ok {
		t.fail(fmt.Errorf("%w: unknown alias %q", ErrMalformedQuery, alias))
		return match
	}

	association, ok := owner.Associations[name]
	if !ok {
		t.fail(fmt.Errorf("%w %s.%s", ErrUnknownAssociation, owner.Entity, name))
		return match
	}

	target, ok := t.registry.Lookup(association.Entity)
	if !ok {
		t.fail(fmt.Errorf("%w %q", ErrUnknownEntity, association.Entity))
		return match
	}

	if _, ok := t.aliases[name]; ok {
		t.fail(fmt.Errorf("%w: join alias %q is already in use", ErrUnsupported, name))
		return match
	}

	t.aliases[name] = target
	t.joined[alias+"."+name] = true

	return fmt.Sprintf("%s %s AS %s ON %s.%s = %s.%s",
		strings.Join(keywords, " "), target.Table, name, name, association.references(), alias, association.ForeignKey)
}

func (t *translator) path(match string) string {
	var (
		groups             = pathPattern.FindStringSubmatch(match)
		alias, name, field = groups[1], groups[2], groups[3]
	)

	owner, ok := t.aliases[alias]
	if !ok {
		t.fail(fmt.Errorf("%w: unknown alias %q", ErrMalformedQuery, alias))
		return match
	}

	association, ok := owner.Associations[name]
	if !ok {
		t.fail(fmt.Errorf("%w %s.%s", ErrUnknownAssociation, owner.Entity, name))
		return match
	}

	switch {
	case t.joined[alias+"."+name]:
		return name + "." + field
	case field == association.references():
		return alias + "." + association.ForeignKey
	}

	t.fail(fmt.Errorf("%w: %s", ErrUnjoinedAssociation, match))
	return match
}

func (t *translator) projection(match string) string {
	var (
		projection = selectPattern.FindStringSubmatch(match)[1]
		aggregated = aggregatePattern.MatchString(projection)
	)

	projection = tokenPattern.ReplaceAllStringFunc(projection, func(token string) string {
		mapping, ok := t.aliases[token]
		switch {
		case !ok:
			return token
		case aggregated:
			return token + "." + mapping.primaryKey()
		default:
			return token + ".*"
		}
	})

	return "SELECT " + projection + " FROM "
}

func (t *translator) parameter(match string) string {
	var (
		groups   = parameterPattern.FindStringSubmatch(match)
		in, name = groups[1], groups[2]
	)

	value, ok := t.values[name]
	if !ok {
		t.fail(fmt.Errorf("%w %q", ErrUnboundParameter, name))
		return match
	}

	items, list := expand(value)
	if !list {
		t.args = append(t.args, value)
		if in != "" {
			return in + "(?)"
		}

		return "?"
	}

	if len(items) == 0 {
		return in + "(NULL)"
	}

	t.args = append(t.args, items...)
	return in + "(" + strings.TrimSuffix(strings.Repeat("?, ", len(items)), ", ") + ")"
}

// expand returns the elements of slice and array values, byte slices excluded.
func expand(value any) ([]any, bool) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return nil, false
	}

	if kind := rv.Kind(); kind != reflect.Slice && kind != reflect.Array {
		return nil, false
	}

	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}

	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}

	return items, true
}
