package tree

import (
	"decisions/model"
)

// ComputeRiskProfile aggregates the outcome distribution of the selected
// strategy bottom-up. Unselected subtrees are skipped and keep no profile.
func (t *Tree) ComputeRiskProfile() error {
	if t.stage < propagated {
		return ErrPassOrder
	}

	for i := range t.Nodes {
		t.Nodes[i].RiskProfile = nil
	}
	t.collect(0)
	t.stage = profiled
	return nil
}

// RiskProfile returns the root's outcome distribution.
func (t *Tree) RiskProfile() (RiskProfile, error) {
	if t.stage < profiled {
		return nil, ErrPassOrder
	}
	return t.Nodes[0].RiskProfile.Clone(), nil
}

func (t *Tree) collect(id int) {
	n := &t.Nodes[id]
	if !n.Selected {
		return
	}

	switch n.Kind {
	case model.Terminal:
		n.RiskProfile = RiskProfile{n.ExpectedValue: n.PathProbability}
	case model.Chance:
		// Branches ending in the same payoff coalesce
		profile := RiskProfile{}
		for _, child := range n.Children {
			t.collect(child)
			for v, mass := range t.Nodes[child].RiskProfile {
				profile[v] += mass
			}
		}
		n.RiskProfile = profile
	case model.Decision:
		for _, child := range n.Children {
			t.collect(child)
		}
		n.RiskProfile = t.Nodes[n.Children[n.OptimalBranch]].RiskProfile.Clone()
	}
}
