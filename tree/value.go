package tree

import (
	"decisions/formula"
	"decisions/model"
	"fmt"

	"github.com/rs/zerolog/log"
)

type valuePass struct {
	t       *Tree
	values  []float64
	optimal []int
}

// EvaluateValues computes every node's expected value bottom-up and records
// the optimal branch of each decision. Results are committed only when the
// whole pass succeeds.
func (t *Tree) EvaluateValues() error {
	t.metrics.Start()

	p := &valuePass{
		t:       t,
		values:  make([]float64, len(t.Nodes)),
		optimal: make([]int, len(t.Nodes)),
	}
	for i := range p.optimal {
		p.optimal[i] = -1
	}
	if err := p.visit(0, formula.NewBindings()); err != nil {
		t.stage = unevaluated
		return err
	}

	for i := range t.Nodes {
		t.Nodes[i].ExpectedValue = p.values[i]
		t.Nodes[i].OptimalBranch = p.optimal[i]
	}
	t.stage = valued
	t.metric = t.metrics.Complete()

	log.Debug().Msgf("evaluated tree: expected value %.4f", t.Nodes[0].ExpectedValue)
	return nil
}

func (p *valuePass) visit(id int, bindings formula.Bindings) error {
	n := &p.t.Nodes[id]
	if n.HasEdge {
		bindings = bindings.With(n.EdgeVar, n.EdgeValue)
	}
	p.t.metrics.AddNode()

	switch n.Kind {
	case model.Terminal:
		return p.terminal(n, bindings)
	case model.Chance:
		return p.chance(n, bindings)
	case model.Decision:
		return p.decision(n, bindings)
	default:
		panic(fmt.Sprintf("node %d has unexpected kind %s", id, n.Kind))
	}
}

func (p *valuePass) terminal(n *Node, bindings formula.Bindings) error {
	p.t.metrics.AddTerminal()

	v, err := p.t.evaluator.Evaluate(n.Formula, bindings)
	if err != nil {
		return fmt.Errorf("terminal node #%d (%s): %w", n.Number, n.Tag, err)
	}
	p.values[n.ID] = v
	return nil
}

// chance weights children by their edge probability. A forced branch
// contributes its full value and the other branches nothing, but every
// child is still evaluated.
func (p *valuePass) chance(n *Node, bindings formula.Bindings) error {
	forced, isForced := p.t.forced[n.ID]

	expected := 0.0
	for i, child := range n.Children {
		if err := p.visit(child, bindings); err != nil {
			return err
		}
		switch {
		case !isForced:
			expected += p.values[child] * p.t.Nodes[child].EdgeProbability / 100
		case i == forced:
			expected += p.values[child]
		}
	}
	p.values[n.ID] = expected
	return nil
}

// decision picks the best child, keeping the first one on ties. A forced
// branch is taken regardless of its value.
func (p *valuePass) decision(n *Node, bindings formula.Bindings) error {
	forced, isForced := p.t.forced[n.ID]

	best := -1
	for i, child := range n.Children {
		if err := p.visit(child, bindings); err != nil {
			return err
		}
		if isForced {
			if i == forced {
				best = i
			}
			continue
		}
		if best < 0 || improves(n.Maximize, p.values[child], p.values[n.Children[best]]) {
			best = i
		}
	}

	p.optimal[n.ID] = best
	p.values[n.ID] = p.values[n.Children[best]]
	return nil
}

func improves(maximize bool, candidate, incumbent float64) bool {
	if maximize {
		return candidate > incumbent
	}
	return candidate < incumbent
}
