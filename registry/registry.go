// Package registry operates the global registry of estimator types. Types
// register a declarative parameter schema and a constructor; grid search
// instantiates candidates through it instead of reflecting on constructors.
package registry

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/modelkit/modelkit/estimator"
)

// A Constructor creates an estimator from a fully-bound parameter map. Keys
// are the schema's declared parameter names; missing keys take the type's
// defaults.
type Constructor func(params map[string]interface{}) (estimator.Estimator, error)

// Schema describes one registered estimator type.
type Schema struct {
	// Params holds the type's constructor parameter names, in declaration
	// order. Grid search binds candidate values positionally to a prefix of
	// this list.
	Params []string

	// Probabilistic reports whether constructed instances satisfy
	// estimator.Probabilistic.
	Probabilistic bool

	Constructor Constructor
}

var (
	mu                sync.RWMutex
	estimatorRegistry = map[string]Schema{}
)

// Register registers an estimator type under a name.
func Register(name string, schema Schema) {
	if name == "" {
		panic(errors.New("estimator type name cannot be empty"))
	}
	if schema.Constructor == nil {
		panic(errors.Errorf("estimator type %q has no constructor", name))
	}
	mu.Lock()
	defer mu.Unlock()
	if _, old := estimatorRegistry[name]; old {
		panic(errors.Errorf("trying to register two estimator types with same name %s", name))
	}
	estimatorRegistry[name] = schema
}

// Lookup returns the schema registered under name.
func Lookup(name string) (Schema, bool) {
	mu.RLock()
	defer mu.RUnlock()
	schema, ok := estimatorRegistry[name]
	return schema, ok
}

// RegisteredNames returns all registered type names, sorted.
func RegisteredNames() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(estimatorRegistry))
	for name := range estimatorRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
