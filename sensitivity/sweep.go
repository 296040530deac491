package sensitivity

import (
	"decisions/model"
	"decisions/tree"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Record is the outcome of forcing one branch of one node.
type Record struct {
	Node        int // Node id
	Number      int // Node's diagnostic number
	Tag         string
	Branch      int
	EdgeVar     string
	EdgeValue   float64
	RootValue   float64 // Root expected value with the branch forced
	RootOptimal int     // Root's optimal branch with the branch forced, -1 unless the root is a decision
}

// Nodes lists the ids of nodes on the selected strategy whose kind is one of
// kinds, in id order. The tree must have been evaluated.
func Nodes(t *tree.Tree, kinds ...model.Kind) []int {
	var ids []int
	for id := range t.Nodes {
		n := t.Node(id)
		if !n.Selected || !n.Branchable() {
			continue
		}
		for _, k := range kinds {
			if n.Kind == k {
				ids = append(ids, id)
				break
			}
		}
	}
	return ids
}

// Sweep forces every branch of every listed node in turn, re-evaluating the
// tree each time. Overrides already set on other nodes stay in place during
// the sweep. The tree's overrides are restored and it is re-evaluated before
// returning.
func Sweep(t *tree.Tree, ids []int) ([]Record, error) {
	saved := t.Overrides()
	defer restore(t, saved)

	var records []Record
	for i, id := range ids {
		n := t.Node(id)
		if n == nil || !n.Branchable() {
			return nil, fmt.Errorf("node %d cannot be swept", id)
		}

		log.Info().Msgf("sweeping node %d of %d: #%d (%s) with %d branches", i+1, len(ids), n.Number, n.Tag, len(n.Children))

		for branch, child := range n.Children {
			if err := t.Force(id, branch); err != nil {
				return nil, err
			}
			if err := t.Evaluate(); err != nil {
				return nil, fmt.Errorf("failed to evaluate node %d branch %d: %w", id, branch, err)
			}

			c := t.Node(child)
			records = append(records, Record{
				Node:        id,
				Number:      n.Number,
				Tag:         n.Tag,
				Branch:      branch,
				EdgeVar:     c.EdgeVar,
				EdgeValue:   c.EdgeValue,
				RootValue:   t.Root().ExpectedValue,
				RootOptimal: t.Root().OptimalBranch,
			})
		}

		// Leave the node as it was before moving to the next one
		if prior, ok := saved[id]; ok {
			_ = t.Force(id, prior)
		} else {
			t.Unforce(id)
		}
	}

	log.Info().Msgf("completed sweep with %d records", len(records))
	return records, nil
}

func restore(t *tree.Tree, overrides map[int]int) {
	t.ClearOverrides()
	for id, branch := range overrides {
		if err := t.Force(id, branch); err != nil {
			panic(fmt.Sprintf("failed to restore override: %v", err))
		}
	}
	if err := t.Evaluate(); err != nil {
		log.Warn().Msgf("failed to re-evaluate tree after sweep: %v", err)
	}
}
