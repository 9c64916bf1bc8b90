// Package jpql builds JPQL-like select statements with named parameters.
//
// Usage:
//
//	b := jpql.New("Message")
//	b.Select("id", "content").Distinct(true)
//	_ = b.Join("LEFT JOIN", "profile")
//	b.Like("content", "Hello").Gt("profile.id", 2).Between("id", 1, 10).Desc("id")
//	fmt.Println(b)
//	// SELECT DISTINCT message.id, message.content
//	// FROM Message AS message LEFT JOIN message.profile
//	// WHERE 1 = 1 AND message.content LIKE :P0_ AND message.profile.id > :P1_ AND message.id BETWEEN :P2_ AND :P3_
//	// ORDER BY message.id DESC
package jpql

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
)

var (
	aggregateFunctions = []string{"AVG", "MAX", "MIN", "SUM", "COUNT"}
	joinKeywords       = []string{"LEFT", "OUTER", "INNER", "JOIN", "FETCH"}
	directions         = []string{"ASC", "DESC"}
)

// Builder accumulates a select statement against one entity.
type Builder struct {
	entity     string
	alias      string
	outer      []string
	parent     *Builder
	distinct   bool
	aggregate  string
	selects    clauseSet
	joins      clauseSet
	where      clauseSet
	orderBy    clauseSet
	parameters map[string]any
	names      *allocator
}

// Option configures a Builder.
type Option func(*Builder)

// WithNamer replaces the parameter name strategy.
func WithNamer(namer Namer) Option {
	return func(b *Builder) {
		b.names = newAllocator(namer)
	}
}

// New builder for entity.
func New(entity string, options ...Option) *Builder {
	b := &Builder{
		entity:     entity,
		alias:      strings.ToLower(entity),
		parameters: make(map[string]any),
		names:      newAllocator(CounterNames()),
	}

	for _, option := range options {
		option(b)
	}

	return b
}

// Entity name used in the FROM clause.
func (b *Builder) Entity() string {
	return b.entity
}

// Alias of the entity.
func (b *Builder) Alias() string {
	return b.alias
}

// Subquery returns a builder for entity that shares this builder's parameter
// namespace and may reference its aliases.
func (b *Builder) Subquery(entity string) *Builder {
	outer := append(slices.Clone(b.outer), b.alias)
	alias := strings.ToLower(entity)
	for i := 1; slices.Contains(outer, alias); i++ {
		alias = strings.ToLower(entity) + "_" + strconv.Itoa(i)
	}

	return &Builder{
		entity:     entity,
		alias:      alias,
		outer:      outer,
		parent:     b,
		parameters: make(map[string]any),
		names:      b.names,
	}
}

func (b *Builder) qualify(path string) string {
	for _, alias := range append([]string{b.alias}, b.outer...) {
		if path == alias || strings.HasPrefix(path, alias+".") {
			return path
		}
	}

	return b.alias + "." + path
}

func (b *Builder) bind(value any) string {
	name := b.names.allocate()
	b.parameters[name] = value
	return name
}

func (b *Builder) and(fragment ...string) *Builder {
	b.where.add("AND " + strings.Join(fragment, " "))
	return b
}

func (b *Builder) compare(path string, operator string, value any) *Builder {
	return b.and(b.qualify(path), operator, b.bind(value))
}

func (b *Builder) check(path string, operator string) *Builder {
	return b.and(b.qualify(path), operator)
}

// Select adds path expressions to the projection.
func (b *Builder) Select(paths ...string) *Builder {
	for _, path := range paths {
		b.selects.add(b.qualify(path))
	}

	return b
}

// Distinct toggles DISTINCT on the projection.
func (b *Builder) Distinct(distinct bool) *Builder {
	b.distinct = distinct
	return b
}

// Aggregate wraps the projection with one of AVG, MAX, MIN, SUM or COUNT.
// An empty function keeps the current aggregate.
func (b *Builder) Aggregate(function string) error {
	if function == "" {
		return nil
	}

	name := strings.ToUpper(function)
	if !slices.Contains(aggregateFunctions, name) {
		return fmt.Errorf("%w %q, allowed: %s", ErrInvalidAggregate, function, strings.Join(aggregateFunctions, ", "))
	}

	b.aggregate = name
	return nil
}

// ClearAggregate removes the aggregate function.
func (b *Builder) ClearAggregate() *Builder {
	b.aggregate = ""
	return b
}

// Eq adds path = value.
func (b *Builder) Eq(path string, value any) *Builder {
	return b.compare(path, "=", value)
}

// Ne adds path <> value.
func (b *Builder) Ne(path string, value any) *Builder {
	return b.compare(path, "<>", value)
}

// Gt adds path > value.
func (b *Builder) Gt(path string, value any) *Builder {
	return b.compare(path, ">", value)
}

// Gte adds path >= value.
func (b *Builder) Gte(path string, value any) *Builder {
	return b.compare(path, ">=", value)
}

// Lt adds path < value.
func (b *Builder) Lt(path string, value any) *Builder {
	return b.compare(path, "<", value)
}

// Lte adds path <= value.
func (b *Builder) Lte(path string, value any) *Builder {
	return b.compare(path, "<=", value)
}

// Like adds path LIKE value.
func (b *Builder) Like(path string, value any) *Builder {
	return b.compare(path, "LIKE", value)
}

// NotLike adds path NOT LIKE value.
func (b *Builder) NotLike(path string, value any) *Builder {
	return b.compare(path, "NOT LIKE", value)
}

// In adds path IN value, value is usually a slice.
func (b *Builder) In(path string, value any) *Builder {
	return b.compare(path, "IN", value)
}

// NotIn adds path NOT IN value.
func (b *Builder) NotIn(path string, value any) *Builder {
	return b.compare(path, "NOT IN", value)
}

// IsNull adds path IS NULL.
func (b *Builder) IsNull(path string) *Builder {
	return b.check(path, "IS NULL")
}

// IsNotNull adds path IS NOT NULL.
func (b *Builder) IsNotNull(path string) *Builder {
	return b.check(path, "IS NOT NULL")
}

// IsEmpty adds path IS EMPTY, path must be a collection.
func (b *Builder) IsEmpty(path string) *Builder {
	return b.check(path, "IS EMPTY")
}

// IsNotEmpty adds path IS NOT EMPTY.
func (b *Builder) IsNotEmpty(path string) *Builder {
	return b.check(path, "IS NOT EMPTY")
}

// Between adds path BETWEEN low AND high.
func (b *Builder) Between(path string, low, high any) *Builder {
	return b.and(b.qualify(path), "BETWEEN", b.bind(low), "AND", b.bind(high))
}

// BetweenDays restricts path to the days from and to, inclusive.
// A zero time leaves that side of the range open.
func (b *Builder) BetweenDays(path string, from, to time.Time) *Builder {
	switch {
	case !from.IsZero() && !to.IsZero():
		return b.Between(path, startOfDay(from), endOfDay(to))
	case !from.IsZero():
		return b.Gte(path, startOfDay(from))
	case !to.IsZero():
		return b.Lte(path, endOfDay(to))
	}

	return b
}

// EqPath adds path = other, both sides being path expressions.
func (b *Builder) EqPath(path, other string) *Builder {
	return b.and(b.qualify(path), "=", b.qualify(other))
}

// Exists adds EXISTS (sub).
func (b *Builder) Exists(sub *Builder) error {
	return b.exists("EXISTS", sub)
}

// NotExists adds NOT EXISTS (sub).
func (b *Builder) NotExists(sub *Builder) error {
	return b.exists("NOT EXISTS", sub)
}

func (b *Builder) exists(operator string, sub *Builder) error {
	if sub == nil {
		return fmt.Errorf("%w: nil sub-query", ErrDetachedSubquery)
	}

	for ancestor := b; ancestor != nil; ancestor = ancestor.parent {
		if ancestor == sub {
			return fmt.Errorf("%w: %s AS %s", ErrSelfReference, sub.entity, sub.alias)
		}
	}

	if sub.names != b.names {
		return fmt.Errorf("%w: %s AS %s", ErrDetachedSubquery, sub.entity, sub.alias)
	}

	maps.Copy(b.parameters, sub.parameters)
	b.and(operator, "("+sub.inline()+")")
	return nil
}

// Join adds a join on an association path. spec is composed of LEFT, OUTER,
// INNER, JOIN and FETCH.
func (b *Builder) Join(spec, path string) error {
	keywords := strings.Fields(spec)
	if len(keywords) == 0 {
		return fmt.Errorf("%w %q, allowed: %s", ErrInvalidJoin, spec, strings.Join(joinKeywords, ", "))
	}

	for i, keyword := range keywords {
		keywords[i] = strings.ToUpper(keyword)
		if !slices.Contains(joinKeywords, keywords[i]) {
			return fmt.Errorf("%w %q, allowed: %s", ErrInvalidJoin, keyword, strings.Join(joinKeywords, ", "))
		}
	}

	b.joins.add(strings.Join(keywords, " ") + " " + b.qualify(path))
	return nil
}

// OrderBy adds an ordering on path, direction is ASC or DESC.
func (b *Builder) OrderBy(path, direction string) error {
	if !slices.Contains(directions, direction) {
		return fmt.Errorf("%w %q, allowed: %s", ErrInvalidDirection, direction, strings.Join(directions, ", "))
	}

	b.orderBy.add(b.qualify(path) + " " + direction)
	return nil
}

// Asc orders by path ascending.
func (b *Builder) Asc(path string) *Builder {
	b.orderBy.add(b.qualify(path) + " ASC")
	return b
}

// Desc orders by path descending.
func (b *Builder) Desc(path string) *Builder {
	b.orderBy.add(b.qualify(path) + " DESC")
	return b
}

// Parameters returns a shallow copy of the named parameters.
func (b *Builder) Parameters() map[string]any {
	return maps.Clone(b.parameters)
}

// Render the statement:
//
//	SELECT [AGGREGATE(][DISTINCT ]projection[)]
//	FROM Entity AS alias [joins]
//	[WHERE 1 = 1 AND ...]
//	[ORDER BY ...]
func (b *Builder) Render() string {
	return strings.Join(b.clauses(), "\n")
}

func (b *Builder) String() string {
	return b.Render()
}

func (b *Builder) inline() string {
	var parts []string
	for _, clause := range b.clauses() {
		if clause != "" {
			parts = append(parts, clause)
		}
	}

	return strings.Join(parts, " ")
}

func (b *Builder) clauses() []string {
	return []string{b.selectClause(), b.fromClause(), b.whereClause(), b.orderByClause()}
}

func (b *Builder) selectClause() string {
	projection := b.alias
	if b.selects.len() > 0 {
		projection = b.selects.join(", ")
	}

	if b.distinct {
		projection = "DISTINCT " + projection
	}

	if b.aggregate != "" {
		projection = b.aggregate + "(" + projection + ")"
	}

	return "SELECT " + projection
}

func (b *Builder) fromClause() string {
	from := "FROM " + b.entity + " AS " + b.alias
	if b.joins.len() == 0 {
		return from
	}

	return from + " " + b.joins.join(" ")
}

func (b *Builder) whereClause() string {
	if b.where.len() == 0 {
		return ""
	}

	return "WHERE 1 = 1 " + b.where.join(" ")
}

func (b *Builder) orderByClause() string {
	if b.orderBy.len() == 0 {
		return ""
	}

	return "ORDER BY " + b.orderBy.join(", ")
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, 0, t.Location())
}
