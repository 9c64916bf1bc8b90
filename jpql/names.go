package jpql

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

const randomNameLength = 6

// Namer proposes parameter names. n counts the proposals made so far.
// Returned names must not include the leading colon.
type Namer interface {
	Name(n int) string
}

// NamerFunc adapts a function to Namer.
type NamerFunc func(n int) string

// Name calls f(n).
func (f NamerFunc) Name(n int) string {
	return f(n)
}

// CounterNames names parameters P0_, P1_, ...
func CounterNames() Namer {
	return NamerFunc(func(n int) string {
		return "P" + strconv.Itoa(n) + "_"
	})
}

// RandomNames names parameters with random upper-case letters. A nil source
// uses the global generator.
func RandomNames(source *rand.Rand) Namer {
	intN := rand.IntN
	if source != nil {
		intN = source.IntN
	}

	return NamerFunc(func(int) string {
		var name strings.Builder
		for range randomNameLength {
			name.WriteByte(byte('A' + intN(26)))
		}

		return name.String()
	})
}

type allocator struct {
	namer Namer
	used  map[string]struct{}
	next  int
}

func newAllocator(namer Namer) *allocator {
	return &allocator{
		namer: namer,
		used:  make(map[string]struct{}),
	}
}

// allocate returns a token that was never returned before, retrying on collision.
func (a *allocator) allocate() string {
	for {
		name := ":" + a.namer.Name(a.next)
		a.next++

		if _, ok := a.used[name]; !ok {
			a.used[name] = struct{}{}
			return name
		}
	}
}
