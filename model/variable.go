package model

import "strings"

type Kind int

const (
	Unknown Kind = iota
	Terminal
	Chance
	Decision
)

func (k Kind) String() string {
	switch k {
	case Terminal:
		return "TERMINAL"
	case Chance:
		return "CHANCE"
	case Decision:
		return "DECISION"
	default:
		return "UNKNOWN"
	}
}

// ParseKind maps a kind name to its Kind, case-insensitively. Unrecognised
// names map to Unknown so the builder can reject them.
func ParseKind(name string) Kind {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TERMINAL":
		return Terminal
	case "CHANCE":
		return Chance
	case "DECISION":
		return Decision
	default:
		return Unknown
	}
}

// Branch is one outgoing edge of a chance or decision variable.
type Branch struct {
	Probability float64 // Percent, chance branches only
	Value       float64
	Next        int // Successor index in the table
}

type Variable struct {
	Tag      string
	Kind     Kind
	Branches []Branch
	Ignore   bool   // Exclude from the accumulated path history
	Maximize bool   // Decisions only
	Formula  string // Terminals only, empty means cumulative
}

// Cumulative reports whether a terminal sums its accumulated path variables.
func (v Variable) Cumulative() bool {
	return v.Kind == Terminal && v.Formula == ""
}
