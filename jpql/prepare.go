package jpql

import (
	"maps"
	"slices"
)

// Handle is a prepared query accepting named parameters.
type Handle interface {
	Bind(name string, value any) error
}

// Preparer turns query text into a Handle.
type Preparer[H Handle] interface {
	Prepare(text string) (H, error)
}

// Prepare renders b, prepares it with p and binds every parameter of b.
func Prepare[H Handle](p Preparer[H], b *Builder) (H, error) {
	handle, err := p.Prepare(b.Render())
	if err != nil {
		return handle, err
	}

	for _, name := range slices.Sorted(maps.Keys(b.parameters)) {
		if err := handle.Bind(name, b.parameters[name]); err != nil {
			return handle, err
		}
	}

	return handle, nil
}
