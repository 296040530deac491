package tree

import (
	"decisions/model"
)

// EvaluateProbabilities propagates path probabilities top-down from the root
// and marks the nodes on the selected strategy. Off-strategy branches of a
// decision receive probability 0; nothing is renormalised.
func (t *Tree) EvaluateProbabilities() error {
	if t.stage < valued {
		return ErrPassOrder
	}

	t.propagate(0, 1.0, true)
	t.stage = propagated
	return nil
}

func (t *Tree) propagate(id int, probability float64, selected bool) {
	n := &t.Nodes[id]
	n.Selected = selected
	n.PathProbability = 0

	switch n.Kind {
	case model.Terminal:
		n.PathProbability = probability * 100
	case model.Decision:
		for i, child := range n.Children {
			if i == n.OptimalBranch {
				t.propagate(child, probability, selected)
			} else {
				t.propagate(child, 0, false)
			}
		}
	case model.Chance:
		// Outcomes are not choices, so the selected flag passes through
		forced, isForced := t.forced[id]
		for i, child := range n.Children {
			share := t.Nodes[child].EdgeProbability / 100
			if isForced {
				share = 0
				if i == forced {
					share = 1
				}
			}
			t.propagate(child, probability*share, selected)
		}
	}
}
