package tree

import (
	"decisions/model"
	"testing"

	"github.com/stretchr/testify/require"
)

// investTable: invest in a 50/50 market or decline for nothing.
//
//	node 0 DECISION invest
//	├─ node 1 CHANCE market (invest=1)
//	│  ├─ node 2 TERMINAL market=100
//	│  └─ node 3 TERMINAL market=-20
//	└─ node 4 TERMINAL invest=0 (formula "0")
func investTable() *model.Table {
	t := model.NewTable()
	t.Decision("invest", []model.Branch{{Value: 1, Next: 1}, {Value: 0, Next: 3}}, model.Ignore())
	t.Chance("market", []model.Branch{{Probability: 50, Value: 100, Next: 2}, {Probability: 50, Value: -20, Next: 2}})
	t.Terminal("payoff", "")
	t.Terminal("nothing", "0")
	return t
}

// drillTable: optionally run a seismic test before deciding to drill.
func drillTable() *model.Table {
	t := model.NewTable()
	t.Decision("test", []model.Branch{{Value: -10, Next: 1}, {Value: 0, Next: 2}})
	t.Chance("seismic", []model.Branch{{Probability: 40, Value: 1, Next: 2}, {Probability: 60, Value: 0, Next: 2}}, model.Ignore())
	t.Decision("drill", []model.Branch{{Value: -70, Next: 3}, {Value: 0, Next: 4}})
	t.Chance("oil", []model.Branch{{Probability: 50, Value: 200, Next: 4}, {Probability: 50, Value: 0, Next: 4}})
	t.Terminal("profit", "")
	return t
}

// shortTable has a chance node whose probabilities sum to 80.
func shortTable() *model.Table {
	t := model.NewTable()
	t.Chance("demand", []model.Branch{{Probability: 30, Value: 10, Next: 1}, {Probability: 50, Value: 20, Next: 1}})
	t.Terminal("sales", "")
	return t
}

func mustBuild(t *testing.T, table *model.Table, options ...Option) *Tree {
	t.Helper()
	tr, err := Build(table, options...)
	require.NoError(t, err, "Model should build")
	return tr
}

func mustEvaluate(t *testing.T, table *model.Table, options ...Option) *Tree {
	t.Helper()
	tr := mustBuild(t, table, options...)
	require.NoError(t, tr.Evaluate(), "Tree should evaluate")
	return tr
}

func terminalProbabilityTotal(tr *Tree) float64 {
	total := 0.0
	for i := range tr.Nodes {
		if tr.Nodes[i].IsTerminal() {
			total += tr.Nodes[i].PathProbability
		}
	}
	return total
}
