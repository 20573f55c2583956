package runtime

import (
	"fmt"
	"sort"
)

// Environment is one frame of a lexical scope chain. Bindings are only ever
// added to the frame they are defined in; lookups read outward through
// enclosing frames, and nothing writes through to an enclosing frame.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates an empty frame enclosed by parent (nil for globals).
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Define binds name in this frame, hiding any binding of the same name in
// enclosing frames. Defining a name twice in one frame replaces it.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Has reports whether name resolves from this frame.
func (e *Environment) Has(name string) bool {
	return e.lookup(name) != nil
}

// Get resolves name starting at this frame.
func (e *Environment) Get(name string) (Value, error) {
	frame := e.lookup(name)
	if frame == nil {
		return nil, fmt.Errorf("Undefined variable '%s'", name)
	}
	return frame.values[name], nil
}

// lookup returns the nearest frame binding name.
func (e *Environment) lookup(name string) *Environment {
	for frame := e; frame != nil; frame = frame.parent {
		if _, ok := frame.values[name]; ok {
			return frame
		}
	}
	return nil
}

// Keys lists the names bound directly in this frame, sorted.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot copies this frame's own bindings.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}
