package tree

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Force fixes the branch taken at a decision or chance node for the next
// evaluation. Derived results are invalidated until the passes run again.
func (t *Tree) Force(id, branch int) error {
	n := t.Node(id)
	if n == nil {
		return &OverrideError{Node: id, Branch: branch, Reason: "no such node"}
	}
	if !n.Branchable() {
		return &OverrideError{Node: id, Branch: branch, Reason: fmt.Sprintf("%s nodes have no branches", n.Kind)}
	}
	if branch < 0 || branch >= len(n.Children) {
		return &OverrideError{
			Node:   id,
			Branch: branch,
			Reason: fmt.Sprintf("branch out of range [0, %d)", len(n.Children)),
		}
	}

	t.forced[id] = branch
	t.stage = unevaluated
	log.Debug().Msgf("forced branch %d on node #%d (%s)", branch, n.Number, n.Tag)
	return nil
}

func (t *Tree) Unforce(id int) {
	if _, ok := t.forced[id]; !ok {
		return
	}
	delete(t.forced, id)
	t.stage = unevaluated
}

func (t *Tree) Forced(id int) (int, bool) {
	branch, ok := t.forced[id]
	return branch, ok
}

// Overrides returns a copy of the forced branches by node id.
func (t *Tree) Overrides() map[int]int {
	out := make(map[int]int, len(t.forced))
	for id, branch := range t.forced {
		out[id] = branch
	}
	return out
}

func (t *Tree) ClearOverrides() {
	if len(t.forced) == 0 {
		return
	}
	t.forced = make(map[int]int)
	t.stage = unevaluated
}
