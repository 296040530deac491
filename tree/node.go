package tree

import (
	"decisions/model"

	"golang.org/x/exp/slices"
)

// RiskProfile maps an outcome value to its probability mass in percent.
type RiskProfile map[float64]float64

// Values returns the outcome values in ascending order.
func (r RiskProfile) Values() []float64 {
	values := make([]float64, 0, len(r))
	for v := range r {
		values = append(values, v)
	}
	slices.Sort(values)
	return values
}

// Total is the summed probability mass, 100 for a well-formed tree.
func (r RiskProfile) Total() float64 {
	total := 0.0
	for _, p := range r {
		total += p
	}
	return total
}

func (r RiskProfile) Clone() RiskProfile {
	if r == nil {
		return nil
	}
	out := make(RiskProfile, len(r))
	for v, p := range r {
		out[v] = p
	}
	return out
}

// Node is one expanded instance of a variable. Structural fields are set by
// Build; the remaining fields are overwritten by each evaluation pass.
type Node struct {
	ID       int
	Number   int // Diagnostic visitation number
	Variable int // Index into the model table
	Kind     model.Kind
	Tag      string
	Maximize bool   // Decisions only
	Formula  string // Terminals only, synthesized when the variable has none
	Children []int

	// How the node was reached. The root has no edge.
	HasEdge         bool
	EdgeVar         string
	EdgeValue       float64
	EdgeProbability float64 // Percent, children of chance nodes only
	EdgeIgnored     bool

	ExpectedValue   float64
	OptimalBranch   int // Decisions only, -1 until the value pass
	Selected        bool
	PathProbability float64 // Percent, terminals only
	RiskProfile     RiskProfile
}

func (n *Node) IsTerminal() bool {
	return n.Kind == model.Terminal
}

// Branchable reports whether the node accepts a forced branch.
func (n *Node) Branchable() bool {
	return n.Kind == model.Chance || n.Kind == model.Decision
}
