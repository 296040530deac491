package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	t.Run("declaring variables in order", func(t *testing.T) {
		table := NewTable()

		root := table.Decision("invest", []Branch{{Value: 1, Next: 1}, {Value: 0, Next: 2}})
		market := table.Chance("market", []Branch{{Probability: 50, Value: 100, Next: 2}, {Probability: 50, Value: -20, Next: 2}}, Ignore())
		payoff := table.Terminal("payoff", "")

		require.Equal(t, 0, root)
		require.Equal(t, 1, market)
		require.Equal(t, 2, payoff)
		require.Equal(t, 3, table.Len())

		v, ok := table.Variable(0)
		require.True(t, ok)
		require.Equal(t, Decision, v.Kind)
		require.True(t, v.Maximize, "Decisions should maximize by default")
		require.False(t, v.Ignore)

		v, _ = table.Variable(1)
		require.True(t, v.Ignore)

		v, _ = table.Variable(2)
		require.True(t, v.Cumulative(), "Terminal without formula should be cumulative")
	})

	t.Run("minimizing decisions", func(t *testing.T) {
		table := NewTable()
		table.Decision("cost", []Branch{{Value: 0, Next: 0}}, Minimize(), Ignore())

		v, _ := table.Variable(0)
		require.False(t, v.Maximize)
		require.True(t, v.Ignore)
	})

	t.Run("copying declared branches", func(t *testing.T) {
		table := NewTable()
		branches := []Branch{{Value: 1, Next: 0}}
		table.Decision("d", branches)

		branches[0].Value = 99

		v, _ := table.Variable(0)
		require.Equal(t, 1.0, v.Branches[0].Value, "Table should not alias caller slices")
	})

	t.Run("looking up missing variables", func(t *testing.T) {
		table := NewTable()

		_, ok := table.Variable(0)
		require.False(t, ok)
		_, ok = table.Variable(-1)
		require.False(t, ok)
	})
}

func TestParseKind(t *testing.T) {
	require.Equal(t, Terminal, ParseKind("terminal"))
	require.Equal(t, Chance, ParseKind(" Chance "))
	require.Equal(t, Decision, ParseKind("DECISION"))
	require.Equal(t, Unknown, ParseKind("lottery"))
	require.Equal(t, "UNKNOWN", Unknown.String())
	require.Equal(t, "CHANCE", Chance.String())
}

const investModel = `
variables:
  - name: invest
    kind: decision
    ignore: true
    branches:
      - {value: 1, next: 1}
      - {value: 0, next: 3}
  - name: market
    kind: chance
    branches:
      - {probability: 50, value: 100, next: 2}
      - {probability: 50, value: -20, next: 2}
  - name: payoff
    kind: terminal
  - name: nothing
    kind: terminal
    formula: "0"
`

func TestLoad(t *testing.T) {
	t.Run("decoding a model file", func(t *testing.T) {
		table, err := Load(strings.NewReader(investModel))

		require.NoError(t, err)
		require.Equal(t, 4, table.Len())

		invest, _ := table.Variable(0)
		require.Equal(t, Decision, invest.Kind)
		require.True(t, invest.Maximize, "Maximize should default to true")
		require.True(t, invest.Ignore)
		require.Equal(t, []Branch{{Value: 1, Next: 1}, {Value: 0, Next: 3}}, invest.Branches)

		market, _ := table.Variable(1)
		require.Equal(t, Branch{Probability: 50, Value: -20, Next: 2}, market.Branches[1])

		nothing, _ := table.Variable(3)
		require.Equal(t, "0", nothing.Formula)
	})

	t.Run("decoding minimizing decisions and unknown kinds", func(t *testing.T) {
		table, err := Load(strings.NewReader(`
variables:
  - name: cost
    kind: decision
    maximize: false
    branches: [{value: 0, next: 1}]
  - name: odd
    kind: lottery
`))

		require.NoError(t, err)
		cost, _ := table.Variable(0)
		require.False(t, cost.Maximize)
		odd, _ := table.Variable(1)
		require.Equal(t, Unknown, odd.Kind, "Unknown kinds are left for the builder to reject")
	})

	t.Run("rejecting empty and malformed files", func(t *testing.T) {
		_, err := Load(strings.NewReader(""))
		require.Error(t, err)

		_, err = Load(strings.NewReader("variables: []"))
		require.Error(t, err)

		_, err = Load(strings.NewReader("variables:\n  - name: x\n    colour: red\n"))
		require.Error(t, err, "Unknown fields should be rejected")
	})

	t.Run("rejecting non-finite branch numbers", func(t *testing.T) {
		for _, branch := range []string{"{value: .nan, next: 1}", "{value: .inf, next: 1}", "{probability: -.inf, value: 1, next: 1}"} {
			_, err := Load(strings.NewReader("variables:\n  - name: d\n    kind: decision\n    branches: [" + branch + "]\n  - name: t\n    kind: terminal\n"))

			require.ErrorContains(t, err, "must be finite", "Branch %s should be rejected", branch)
		}
	})

	t.Run("reporting missing files", func(t *testing.T) {
		_, err := LoadFile("does/not/exist.yaml")
		require.ErrorContains(t, err, "does/not/exist.yaml")
	})
}
