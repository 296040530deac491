package tree

import (
	"decisions/formula"
	"decisions/model"
	"fmt"

	"github.com/rs/zerolog/log"
)

type edge struct {
	variable    string
	value       float64
	probability float64
	ignored     bool
}

type builder struct {
	table    *model.Table
	nodes    []Node
	number   int
	maxNodes int
	onPath   []bool // Variables on the current expansion path
}

// Build expands the table into a tree rooted at variable 0. Successors are
// not memoized: a variable referenced from several branches is expanded
// again under each of them.
func Build(table *model.Table, options ...Option) (*Tree, error) {
	t := newTree(options...)
	if table == nil || table.Len() == 0 {
		return nil, &ConfigurationError{Variable: -1, Reason: "no variables declared"}
	}

	b := &builder{
		table:    table,
		maxNodes: t.maxNodes,
		onPath:   make([]bool, table.Len()),
	}
	root, err := b.newNode(nil)
	if err != nil {
		return nil, err
	}
	if err := b.expand(root, 0, nil); err != nil {
		return nil, err
	}

	t.Nodes = b.nodes
	log.Debug().Msgf("built tree with %d nodes from %d variables", len(t.Nodes), table.Len())
	return t, nil
}

func (b *builder) newNode(e *edge) (int, error) {
	if b.maxNodes > 0 && len(b.nodes) >= b.maxNodes {
		return -1, &ConfigurationError{
			Variable: -1,
			Reason:   fmt.Sprintf("expansion exceeds %d nodes", b.maxNodes),
		}
	}

	node := Node{ID: len(b.nodes), OptimalBranch: -1}
	if e != nil {
		node.HasEdge = true
		node.EdgeVar = e.variable
		node.EdgeValue = e.value
		node.EdgeProbability = e.probability
		node.EdgeIgnored = e.ignored
	}
	b.nodes = append(b.nodes, node)
	return node.ID, nil
}

// expand fills node id from variable index and recurses into its branches.
// history holds the non-ignored variable names seen on the path so far; it
// is never appended in place so sibling subtrees do not share additions.
func (b *builder) expand(id int, index int, history []string) error {
	v, _ := b.table.Variable(index)
	if b.onPath[index] {
		return &ConfigurationError{Variable: index, Tag: v.Tag, Reason: "variable is its own successor"}
	}
	b.onPath[index] = true
	defer func() { b.onPath[index] = false }()

	// b.nodes grows during recursion, so nodes are always addressed by id
	b.nodes[id].Number = b.number
	b.number++
	b.nodes[id].Variable = index
	b.nodes[id].Kind = v.Kind
	b.nodes[id].Tag = v.Tag

	if n := b.nodes[id]; n.HasEdge && !n.EdgeIgnored {
		history = append(history[:len(history):len(history)], n.EdgeVar)
	}

	switch v.Kind {
	case model.Terminal:
		expr := v.Formula
		if expr == "" {
			expr = formula.Synthesize(history)
		}
		b.nodes[id].Formula = expr
		return nil
	case model.Chance, model.Decision:
		if len(v.Branches) == 0 {
			return &ConfigurationError{Variable: index, Tag: v.Tag, Reason: "no branches"}
		}
		if v.Kind == model.Decision {
			b.nodes[id].Maximize = v.Maximize
		}
		for i, branch := range v.Branches {
			if branch.Next < 0 || branch.Next >= b.table.Len() {
				return &ConfigurationError{
					Variable: index,
					Tag:      v.Tag,
					Reason:   fmt.Sprintf("branch %d successor %d out of range [0, %d)", i, branch.Next, b.table.Len()),
				}
			}
			e := &edge{variable: v.Tag, value: branch.Value, ignored: v.Ignore}
			if v.Kind == model.Chance {
				e.probability = branch.Probability
			}
			child, err := b.newNode(e)
			if err != nil {
				return err
			}
			b.nodes[id].Children = append(b.nodes[id].Children, child)
			if err := b.expand(child, branch.Next, history); err != nil {
				return err
			}
		}
		return nil
	default:
		return &ConfigurationError{Variable: index, Tag: v.Tag, Reason: fmt.Sprintf("unrecognised kind %s", v.Kind)}
	}
}
