package model

type Option func(v *Variable)

// Ignore keeps the variable's realised value out of cumulative terminal formulas.
func Ignore() Option {
	return func(v *Variable) {
		v.Ignore = true
	}
}

// Minimize makes a decision pick the branch with the lowest expected value.
func Minimize() Option {
	return func(v *Variable) {
		v.Maximize = false
	}
}

// Table is the ordered list of declared variables. Index 0 is the root and
// successor indices refer to declaration order.
type Table struct {
	variables []Variable
}

func NewTable() *Table {
	return &Table{}
}

func (t *Table) Terminal(name, expr string) int {
	return t.add(Variable{
		Tag:     name,
		Kind:    Terminal,
		Formula: expr,
	})
}

func (t *Table) Chance(name string, branches []Branch, options ...Option) int {
	v := Variable{
		Tag:      name,
		Kind:     Chance,
		Branches: branches,
	}
	for _, option := range options {
		option(&v)
	}
	return t.add(v)
}

func (t *Table) Decision(name string, branches []Branch, options ...Option) int {
	v := Variable{
		Tag:      name,
		Kind:     Decision,
		Branches: branches,
		Maximize: true,
	}
	for _, option := range options {
		option(&v)
	}
	return t.add(v)
}

// Add appends a variable as given, without defaults. Loaders use it to keep
// unrecognised kinds for the builder to report.
func (t *Table) Add(v Variable) int {
	return t.add(v)
}

func (t *Table) add(v Variable) int {
	// Copy branches so callers cannot mutate the table afterwards
	v.Branches = append([]Branch(nil), v.Branches...)
	t.variables = append(t.variables, v)
	return len(t.variables) - 1
}

func (t *Table) Len() int {
	return len(t.variables)
}

// Variable returns the variable at index i and whether it exists.
func (t *Table) Variable(i int) (Variable, bool) {
	if i < 0 || i >= len(t.variables) {
		return Variable{}, false
	}
	return t.variables[i], true
}

// Variables returns a copy of the declared variables in order.
func (t *Table) Variables() []Variable {
	out := make([]Variable, len(t.variables))
	copy(out, t.variables)
	return out
}
