package tree

import (
	"decisions/model"
	"errors"

	"golang.org/x/exp/rand"
)

// Simulate samples root-to-terminal walks under the current strategy and
// returns the empirical outcome distribution in percent. Decisions follow
// their optimal branch; chance nodes follow a forced branch or draw one by
// edge probability.
func (t *Tree) Simulate(rng *rand.Rand, episodes int) (RiskProfile, error) {
	if t.stage < valued {
		return nil, ErrPassOrder
	}
	if episodes <= 0 {
		return nil, errors.New("episodes must be positive")
	}

	counts := make(map[float64]int)
	for i := 0; i < episodes; i++ {
		counts[t.rollout(rng)]++
	}

	profile := make(RiskProfile, len(counts))
	for v, c := range counts {
		profile[v] = float64(c) * 100 / float64(episodes)
	}
	return profile, nil
}

func (t *Tree) rollout(rng *rand.Rand) float64 {
	n := &t.Nodes[0]
	for {
		switch n.Kind {
		case model.Terminal:
			return n.ExpectedValue
		case model.Decision:
			n = &t.Nodes[n.Children[n.OptimalBranch]]
		case model.Chance:
			n = &t.Nodes[n.Children[t.drawBranch(n, rng)]]
		default:
			panic("unexpected node kind")
		}
	}
}

// drawBranch picks a chance branch. Mass left over when probabilities do not
// sum to 100 falls to the last branch.
func (t *Tree) drawBranch(n *Node, rng *rand.Rand) int {
	if forced, ok := t.forced[n.ID]; ok {
		return forced
	}

	draw := rng.Float64() * 100
	cumulative := 0.0
	for i, child := range n.Children {
		cumulative += t.Nodes[child].EdgeProbability
		if draw < cumulative {
			return i
		}
	}
	return len(n.Children) - 1
}
