package session

// Association of an entity to another through a foreign key.
type Association struct {
	Entity     string
	ForeignKey string
	References string
}

func (a Association) references() string {
	if a.References == "" {
		return "id"
	}

	return a.References
}

// Mapping of an entity name to its table.
type Mapping struct {
	Entity       string
	Table        string
	PrimaryKey   string
	Associations map[string]Association
}

func (m Mapping) primaryKey() string {
	if m.PrimaryKey == "" {
		return "id"
	}

	return m.PrimaryKey
}

// Registry of entity mappings.
type Registry struct {
	mappings map[string]Mapping
}

// Register mappings, replacing those with the same entity name.
func (r *Registry) Register(mappings ...Mapping) {
	for _, mapping := range mappings {
		r.mappings[mapping.Entity] = mapping
	}
}

// Lookup mapping by entity name.
func (r *Registry) Lookup(entity string) (Mapping, bool) {
	mapping, ok := r.mappings[entity]
	return mapping, ok
}

// NewRegistry with mappings.
func NewRegistry(mappings ...Mapping) *Registry {
	r := &Registry{
		mappings: make(map[string]Mapping),
	}

	r.Register(mappings...)
	return r
}
