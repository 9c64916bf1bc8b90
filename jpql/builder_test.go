package jpql_test

import (
	"strings"
	"testing"
	"time"

	"github.com/go-rel/jpql-example/jpql"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Render(t *testing.T) {
	tests := []struct {
		name   string
		build  func(b *jpql.Builder)
		result string
	}{
		{
			name:   "bare entity",
			build:  func(b *jpql.Builder) {},
			result: "SELECT message\nFROM Message AS message\n\n",
		},
		{
			name: "select paths",
			build: func(b *jpql.Builder) {
				b.Select("id", "content", "id", "message.profile")
			},
			result: "SELECT message.id, message.content, message.profile\nFROM Message AS message\n\n",
		},
		{
			name: "distinct",
			build: func(b *jpql.Builder) {
				b.Select("content").Distinct(true)
			},
			result: "SELECT DISTINCT message.content\nFROM Message AS message\n\n",
		},
		{
			name: "distinct toggled off",
			build: func(b *jpql.Builder) {
				b.Distinct(true).Distinct(false)
			},
			result: "SELECT message\nFROM Message AS message\n\n",
		},
		{
			name: "count distinct",
			build: func(b *jpql.Builder) {
				b.Select("id").Distinct(true)
				require.NoError(t, b.Aggregate("count"))
			},
			result: "SELECT COUNT(DISTINCT message.id)\nFROM Message AS message\n\n",
		},
		{
			name: "cleared aggregate",
			build: func(b *jpql.Builder) {
				require.NoError(t, b.Aggregate("max"))
				b.ClearAggregate()
			},
			result: "SELECT message\nFROM Message AS message\n\n",
		},
		{
			name: "comparisons",
			build: func(b *jpql.Builder) {
				b.Eq("id", 1).Ne("id", 2).Gt("id", 3).Gte("id", 4).Lt("id", 5).Lte("id", 6)
			},
			result: "SELECT message\nFROM Message AS message\n" +
				"WHERE 1 = 1 AND message.id = :P0_ AND message.id <> :P1_ AND message.id > :P2_" +
				" AND message.id >= :P3_ AND message.id < :P4_ AND message.id <= :P5_\n",
		},
		{
			name: "patterns and collections",
			build: func(b *jpql.Builder) {
				b.Like("content", "%a%").NotLike("content", "%b%").In("id", []int{1, 2}).NotIn("id", []int{3})
			},
			result: "SELECT message\nFROM Message AS message\n" +
				"WHERE 1 = 1 AND message.content LIKE :P0_ AND message.content NOT LIKE :P1_" +
				" AND message.id IN :P2_ AND message.id NOT IN :P3_\n",
		},
		{
			name: "null and empty checks",
			build: func(b *jpql.Builder) {
				b.IsNull("profile").IsNotNull("content").IsEmpty("tags").IsNotEmpty("tags").IsNull("profile")
			},
			result: "SELECT message\nFROM Message AS message\n" +
				"WHERE 1 = 1 AND message.profile IS NULL AND message.content IS NOT NULL" +
				" AND message.tags IS EMPTY AND message.tags IS NOT EMPTY\n",
		},
		{
			name: "joins",
			build: func(b *jpql.Builder) {
				require.NoError(t, b.Join("left  outer join", "profile"))
				require.NoError(t, b.Join("INNER JOIN FETCH", "message.tags"))
			},
			result: "SELECT message\nFROM Message AS message LEFT OUTER JOIN message.profile INNER JOIN FETCH message.tags\n\n",
		},
		{
			name: "ordering",
			build: func(b *jpql.Builder) {
				require.NoError(t, b.OrderBy("content", "ASC"))
				b.Desc("id").Asc("content")
			},
			result: "SELECT message\nFROM Message AS message\n\nORDER BY message.content ASC, message.id DESC",
		},
		{
			name: "full statement",
			build: func(b *jpql.Builder) {
				b.Select("id", "content").Distinct(true)
				require.NoError(t, b.Aggregate("count"))
				require.NoError(t, b.Join("LEFT JOIN", "profile"))
				b.Like("id", 1).Gt("profile.id", 2).Between("id", 1, 10).Desc("id")
			},
			result: "SELECT COUNT(DISTINCT message.id, message.content)\n" +
				"FROM Message AS message LEFT JOIN message.profile\n" +
				"WHERE 1 = 1 AND message.id LIKE :P0_ AND message.profile.id > :P1_ AND message.id BETWEEN :P2_ AND :P3_\n" +
				"ORDER BY message.id DESC",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := jpql.New("Message")
			test.build(b)

			assert.Equal(t, test.result, b.Render())
			assert.Equal(t, test.result, b.String())
		})
	}
}

func TestBuilder_Scenario(t *testing.T) {
	b := jpql.New("Message").
		Like("content", "Hello").
		Gt("profile.id", 2).
		Between("id", 1, 10).
		Desc("id")

	lines := strings.Split(b.Render(), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "WHERE 1 = 1 AND message.content LIKE :P0_ AND message.profile.id > :P1_ AND message.id BETWEEN :P2_ AND :P3_", lines[2])
	assert.Equal(t, 3, strings.Count(lines[2], "AND message."))
	assert.Equal(t, "ORDER BY message.id DESC", lines[3])

	want := map[string]any{":P0_": "Hello", ":P1_": 2, ":P2_": 1, ":P3_": 10}
	if diff := cmp.Diff(want, b.Parameters()); diff != "" {
		t.Errorf("parameters mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, b.Render(), b.Render())
}

func TestBuilder_predicateGrowth(t *testing.T) {
	tests := []struct {
		name      string
		predicate func(b *jpql.Builder)
		bound     int
	}{
		{name: "eq", predicate: func(b *jpql.Builder) { b.Eq("id", 1) }, bound: 1},
		{name: "like", predicate: func(b *jpql.Builder) { b.Like("content", "x") }, bound: 1},
		{name: "not in", predicate: func(b *jpql.Builder) { b.NotIn("id", []int{1}) }, bound: 1},
		{name: "between", predicate: func(b *jpql.Builder) { b.Between("id", 1, 2) }, bound: 2},
		{name: "is null", predicate: func(b *jpql.Builder) { b.IsNull("content") }, bound: 0},
		{name: "eq path", predicate: func(b *jpql.Builder) { b.EqPath("id", "profile.id") }, bound: 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := jpql.New("Message").Eq("content", "seed")
			before := strings.Count(b.Render(), " AND ")

			test.predicate(b)

			where := strings.Split(b.Render(), "\n")[2]
			assert.True(t, strings.HasPrefix(where, "WHERE 1 = 1 AND "))
			assert.Len(t, b.Parameters(), 1+test.bound)
			if test.name == "between" {
				// BETWEEN low AND high carries its own AND.
				assert.Equal(t, before+2, strings.Count(b.Render(), " AND "))
			} else {
				assert.Equal(t, before+1, strings.Count(b.Render(), " AND "))
			}
		})
	}
}

func TestBuilder_Aggregate(t *testing.T) {
	b := jpql.New("Message")

	require.NoError(t, b.Aggregate("count"))
	assert.Equal(t, "SELECT COUNT(message)", strings.Split(b.Render(), "\n")[0])

	require.NoError(t, b.Aggregate(""))
	assert.Equal(t, "SELECT COUNT(message)", strings.Split(b.Render(), "\n")[0])

	err := b.Aggregate("invalid")
	assert.ErrorIs(t, err, jpql.ErrInvalidAggregate)
	assert.Contains(t, err.Error(), `"invalid"`)
	assert.Contains(t, err.Error(), "AVG, MAX, MIN, SUM, COUNT")
	assert.Equal(t, "SELECT COUNT(message)", strings.Split(b.Render(), "\n")[0])

	for _, function := range []string{"avg", "Max", "MIN", "sum"} {
		require.NoError(t, b.Aggregate(function))
	}
	assert.Equal(t, "SELECT SUM(message)", strings.Split(b.Render(), "\n")[0])
}

func TestBuilder_Join(t *testing.T) {
	b := jpql.New("Message")

	require.NoError(t, b.Join("LEFT JOIN", "profile"))
	assert.Equal(t, "FROM Message AS message LEFT JOIN message.profile", strings.Split(b.Render(), "\n")[1])

	for _, spec := range []string{"BOGUS", "LEFT BOGUS JOIN", "", "   "} {
		err := b.Join(spec, "profile")
		assert.ErrorIs(t, err, jpql.ErrInvalidJoin, spec)
	}

	assert.Equal(t, "FROM Message AS message LEFT JOIN message.profile", strings.Split(b.Render(), "\n")[1])
}

func TestBuilder_OrderBy(t *testing.T) {
	b := jpql.New("Message")

	err := b.OrderBy("id", "UP")
	assert.ErrorIs(t, err, jpql.ErrInvalidDirection)
	assert.Contains(t, err.Error(), "ASC, DESC")
	assert.Equal(t, "", strings.Split(b.Render(), "\n")[3])

	require.NoError(t, b.OrderBy("id", "DESC"))
	require.NoError(t, b.OrderBy("id", "DESC"))
	assert.Equal(t, "ORDER BY message.id DESC", strings.Split(b.Render(), "\n")[3])
}

func TestBuilder_Parameters(t *testing.T) {
	b := jpql.New("Message").Eq("id", 1)

	params := b.Parameters()
	params[":P0_"] = 2
	params[":P9_"] = 3

	assert.Equal(t, map[string]any{":P0_": 1}, b.Parameters())
}

func TestBuilder_BetweenDays(t *testing.T) {
	var (
		from = time.Date(2016, 3, 1, 15, 4, 5, 0, time.UTC)
		to   = time.Date(2016, 3, 9, 1, 2, 3, 0, time.UTC)
		low  = time.Date(2016, 3, 1, 0, 0, 0, 0, time.UTC)
		high = time.Date(2016, 3, 9, 23, 59, 59, 0, time.UTC)
	)

	tests := []struct {
		name   string
		from   time.Time
		to     time.Time
		where  string
		params map[string]any
	}{
		{
			name:   "both",
			from:   from,
			to:     to,
			where:  "WHERE 1 = 1 AND event.date BETWEEN :P0_ AND :P1_",
			params: map[string]any{":P0_": low, ":P1_": high},
		},
		{
			name:   "from",
			from:   from,
			where:  "WHERE 1 = 1 AND event.date >= :P0_",
			params: map[string]any{":P0_": low},
		},
		{
			name:   "to",
			to:     to,
			where:  "WHERE 1 = 1 AND event.date <= :P0_",
			params: map[string]any{":P0_": high},
		},
		{
			name:   "none",
			where:  "",
			params: map[string]any{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := jpql.New("Event").BetweenDays("date", test.from, test.to)

			assert.Equal(t, test.where, strings.Split(b.Render(), "\n")[2])
			assert.Equal(t, test.params, b.Parameters())
		})
	}
}

func TestBuilder_Exists(t *testing.T) {
	b := jpql.New("Profile").Like("name", "A%")
	sub := b.Subquery("Message").EqPath("message.profile.id", "profile.id").Like("content", "Hello")

	require.NoError(t, b.NotExists(sub))
	assert.Equal(t, "SELECT profile\nFROM Profile AS profile\n"+
		"WHERE 1 = 1 AND profile.name LIKE :P0_ AND NOT EXISTS (SELECT message FROM Message AS message"+
		" WHERE 1 = 1 AND message.profile.id = profile.id AND message.content LIKE :P1_)\n", b.Render())
	assert.Equal(t, map[string]any{":P0_": "A%", ":P1_": "Hello"}, b.Parameters())
}

func TestBuilder_Subquery_alias(t *testing.T) {
	b := jpql.New("Message")
	sub := b.Subquery("Message")
	nested := sub.Subquery("Message")

	assert.Equal(t, "message", b.Alias())
	assert.Equal(t, "message_1", sub.Alias())
	assert.Equal(t, "message_2", nested.Alias())
	assert.Equal(t, "Message", nested.Entity())

	nested.Eq("message.id", 1).Eq("id", 2)
	assert.Equal(t, "WHERE 1 = 1 AND message.id = :P0_ AND message_2.id = :P1_", strings.Split(nested.Render(), "\n")[2])
}

func TestBuilder_Exists_invalid(t *testing.T) {
	b := jpql.New("Message")
	sub := b.Subquery("Event")

	assert.ErrorIs(t, b.Exists(b), jpql.ErrSelfReference)
	assert.ErrorIs(t, sub.Exists(b), jpql.ErrSelfReference)
	assert.ErrorIs(t, b.Exists(jpql.New("Event")), jpql.ErrDetachedSubquery)
	assert.ErrorIs(t, b.NotExists(nil), jpql.ErrDetachedSubquery)
	assert.Equal(t, "", strings.Split(b.Render(), "\n")[2])
}
