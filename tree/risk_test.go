package tree

import (
	"decisions/model"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeRiskProfile(t *testing.T) {
	t.Run("collecting the optimal strategy's outcomes", func(t *testing.T) {
		tr := mustEvaluate(t, investTable())

		profile, err := tr.RiskProfile()

		require.NoError(t, err)
		require.Equal(t, RiskProfile{100: 50, -20: 50}, profile)
		require.Nil(t, tr.Node(4).RiskProfile, "Unselected subtrees are skipped, not zero-filled")
		require.Equal(t, RiskProfile{100: 50}, tr.Node(2).RiskProfile, "Terminal profile is a singleton")
	})

	t.Run("leaving probabilities that do not sum to 100 unnormalised", func(t *testing.T) {
		tr := mustEvaluate(t, shortTable())

		profile, err := tr.RiskProfile()

		require.NoError(t, err)
		require.InDelta(t, 13.0, tr.Root().ExpectedValue, 1e-9, "Expected value should weight by the raw percentages")
		require.InDelta(t, 30.0, tr.Node(1).PathProbability, 1e-9)
		require.InDelta(t, 50.0, tr.Node(2).PathProbability, 1e-9)
		require.InDelta(t, 80.0, profile.Total(), 1e-9)
		require.InDelta(t, 30.0, profile[10], 1e-9)
		require.InDelta(t, 50.0, profile[20], 1e-9)
	})

	t.Run("coalescing equal payoffs", func(t *testing.T) {
		table := model.NewTable()
		table.Chance("weather", []model.Branch{
			{Probability: 20, Value: 10, Next: 1},
			{Probability: 30, Value: 10, Next: 1},
			{Probability: 50, Value: 5, Next: 1},
		})
		table.Terminal("yield", "")
		tr := mustEvaluate(t, table)

		profile, err := tr.RiskProfile()

		require.NoError(t, err)
		require.Len(t, profile, 2)
		require.InDelta(t, 50.0, profile[10], 1e-9)
		require.InDelta(t, 50.0, profile[5], 1e-9)
	})

	t.Run("summing to 100 through nested decisions", func(t *testing.T) {
		tr := mustEvaluate(t, drillTable())

		profile, err := tr.RiskProfile()

		require.NoError(t, err)
		require.InDelta(t, 100.0, profile.Total(), 1e-9)
		require.Equal(t, RiskProfile{130: 50, -70: 50}, profile)
		require.Equal(t, []float64{-70, 130}, profile.Values())
	})

	t.Run("reflecting a forced decision", func(t *testing.T) {
		tr := mustBuild(t, investTable())
		require.NoError(t, tr.Force(0, 1))
		require.NoError(t, tr.Evaluate())

		profile, err := tr.RiskProfile()

		require.NoError(t, err)
		require.Equal(t, RiskProfile{0: 100}, profile)
	})

	t.Run("keeping zero-mass outcomes under a forced chance branch", func(t *testing.T) {
		tr := mustBuild(t, investTable())
		require.NoError(t, tr.Force(1, 0))
		require.NoError(t, tr.Evaluate())

		profile, err := tr.RiskProfile()

		require.NoError(t, err)
		require.Equal(t, RiskProfile{100: 100, -20: 0}, profile)
		require.InDelta(t, 100.0, profile.Total(), 1e-9)
	})

	t.Run("requiring the probability pass first", func(t *testing.T) {
		tr := mustBuild(t, investTable())
		require.NoError(t, tr.EvaluateValues())

		require.ErrorIs(t, tr.ComputeRiskProfile(), ErrPassOrder)
		_, err := tr.RiskProfile()
		require.ErrorIs(t, err, ErrPassOrder)
	})
}

func TestReevaluation(t *testing.T) {
	t.Run("repeating evaluation is idempotent", func(t *testing.T) {
		tr := mustEvaluate(t, drillTable())
		first := append([]Node(nil), tr.Nodes...)

		require.NoError(t, tr.Evaluate())

		require.Equal(t, first, tr.Nodes)
	})

	t.Run("clearing an override leaves no stale results", func(t *testing.T) {
		fresh := mustEvaluate(t, investTable())
		tr := mustBuild(t, investTable())

		require.NoError(t, tr.Force(0, 1))
		require.NoError(t, tr.Evaluate())
		tr.Unforce(0)
		require.NoError(t, tr.Evaluate())

		require.Equal(t, fresh.Nodes, tr.Nodes)
	})

	t.Run("changing an override requires a new value pass", func(t *testing.T) {
		tr := mustEvaluate(t, investTable())

		require.NoError(t, tr.Force(1, 1))

		require.ErrorIs(t, tr.EvaluateProbabilities(), ErrPassOrder)
	})
}
