package tree

import (
	"decisions/formula"
)

type stage int

const (
	unevaluated stage = iota
	valued
	propagated
	profiled
)

type Option func(t *Tree)

// WithEvaluator replaces the default HCL arithmetic evaluator.
func WithEvaluator(evaluator formula.Evaluator) Option {
	return func(t *Tree) {
		if evaluator != nil {
			t.evaluator = evaluator
		}
	}
}

// WithMaxNodes bounds expansion. Shared successors are expanded once per
// reference, so diamond-shaped models can grow exponentially.
func WithMaxNodes(limit int) Option {
	return func(t *Tree) {
		if limit > 0 {
			t.maxNodes = limit
		}
	}
}

func WithMetrics() Option {
	return func(t *Tree) {
		t.metrics = NewCollector()
	}
}

// Tree owns every expanded node; node ids are indices into Nodes and the root
// is node 0. Forced branches live in a sparse map next to the nodes.
type Tree struct {
	Nodes     []Node
	forced    map[int]int
	evaluator formula.Evaluator
	maxNodes  int
	metrics   Collector
	metric    EvaluationMetric
	stage     stage
}

func newTree(options ...Option) *Tree {
	t := &Tree{ // Default values
		forced:    make(map[int]int),
		evaluator: formula.NewArithmetic(),
		metrics:   NewNoCollector(),
	}
	for _, option := range options {
		option(t)
	}
	return t
}

func (t *Tree) Root() *Node {
	return &t.Nodes[0]
}

// Node returns the node with the given id, or nil.
func (t *Tree) Node(id int) *Node {
	if id < 0 || id >= len(t.Nodes) {
		return nil
	}
	return &t.Nodes[id]
}

func (t *Tree) Len() int {
	return len(t.Nodes)
}

// Metric returns the metrics of the last value pass. It is empty unless the
// tree was built WithMetrics.
func (t *Tree) Metric() EvaluationMetric {
	return t.metric
}

// Evaluate runs the value, probability and risk profile passes in order.
func (t *Tree) Evaluate() error {
	if err := t.EvaluateValues(); err != nil {
		return err
	}
	if err := t.EvaluateProbabilities(); err != nil {
		return err
	}
	return t.ComputeRiskProfile()
}
