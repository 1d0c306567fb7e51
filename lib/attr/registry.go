package attr

import (
	"fmt"
	"sort"

	"github.com/puzpuzpuz/xsync/v3"
)

// Registry maps schema names to their descriptors, so tools can look up the
// layout of a stream by name. It is safe for concurrent use.
type Registry struct {
	schemas *xsync.MapOf[string, Descriptor]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{schemas: xsync.NewMapOf[string, Descriptor]()}
}

// DefaultRegistry is the registry used by the package level Register and Lookup
var DefaultRegistry = NewRegistry()

// Register adds a descriptor. Registering two descriptors with the same name is an error.
func (r *Registry) Register(d Descriptor) error {
	if _, loaded := r.schemas.LoadOrStore(d.Name(), d); loaded {
		return fmt.Errorf("attr: schema %s already registered", d.Name())
	}
	return nil
}

// Lookup returns the descriptor registered under name
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	return r.schemas.Load(name)
}

// Names returns the names of all registered schemas in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, r.schemas.Size())
	r.schemas.Range(func(name string, _ Descriptor) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}

// Register adds a descriptor to the DefaultRegistry
func Register(d Descriptor) error {
	return DefaultRegistry.Register(d)
}

// Lookup returns a descriptor from the DefaultRegistry
func Lookup(name string) (Descriptor, bool) {
	return DefaultRegistry.Lookup(name)
}

// Check compares a decoded sequence against a descriptor and returns one error
// per attribute that is unknown to the descriptor or has the wrong kind.
func Check(d Descriptor, seq *Sequence) []error {
	var problems []error
	for _, a := range seq.Attributes {
		f, ok := d.Field(a.Name)
		if !ok {
			problems = append(problems, fmt.Errorf("%s: unknown attribute %q", d.Name(), a.Name))
			continue
		}
		if a.Value.IsNull() {
			continue
		}
		if a.Value.Kind() != f.Kind {
			problems = append(problems, &TypeMismatchError{Schema: d.Name(), Attribute: a.Name, Expected: f.Kind, Actual: a.Value.Kind()})
			continue
		}
		if f.Kind == TagEnum {
			if _, ok := f.Enum.Ordinal(a.Value.Str()); !ok {
				problems = append(problems, &UnknownEnumVariantError{Attribute: a.Name, Enum: f.Enum.TypeName(), Variant: a.Value.Str()})
			}
		}
	}
	return problems
}
