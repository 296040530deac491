package formula

import "golang.org/x/exp/slices"

// Bindings maps variable names to values. It is immutable: With returns a new
// mapping and leaves the receiver untouched, so each recursion level keeps the
// bindings of its own root-to-node path.
type Bindings struct {
	vars map[string]float64
}

func NewBindings() Bindings {
	return Bindings{}
}

func (b Bindings) With(name string, value float64) Bindings {
	vars := make(map[string]float64, len(b.vars)+1)
	for k, v := range b.vars {
		vars[k] = v
	}
	vars[name] = value
	return Bindings{vars: vars}
}

func (b Bindings) Lookup(name string) (float64, bool) {
	v, ok := b.vars[name]
	return v, ok
}

func (b Bindings) Len() int {
	return len(b.vars)
}

// Names returns the bound names in sorted order.
func (b Bindings) Names() []string {
	names := make([]string, 0, len(b.vars))
	for name := range b.vars {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
