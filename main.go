package main

import (
	"decisions/config"
	"decisions/model"
	"decisions/tree"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "decide",
	Short: "Evaluate decision trees by backward induction",
	Long: `Expands a decision model (decision, chance and terminal variables) into a
tree, finds the expected-value-optimal strategy, and reports its risk profile.
Branches can be forced for what-if analysis.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildTree loads the model file, expands it and applies forced branches
// given as "node=branch".
func buildTree(path string, forces []string) (*model.Table, *tree.Tree, error) {
	table, err := model.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}

	options := []tree.Option{tree.WithMetrics()}
	if cfg.Build.MaxNodes > 0 {
		options = append(options, tree.WithMaxNodes(cfg.Build.MaxNodes))
	}
	t, err := tree.Build(table, options...)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "build %s", path)
	}
	log.Info().Msgf("expanded %d variables into %d nodes", table.Len(), t.Len())

	for _, force := range forces {
		id, branch, err := parseForce(force)
		if err != nil {
			return nil, nil, err
		}
		if err := t.Force(id, branch); err != nil {
			return nil, nil, eris.Wrap(err, "force")
		}
	}
	return table, t, nil
}

func evaluateTree(t *tree.Tree) error {
	if err := t.Evaluate(); err != nil {
		return eris.Wrap(err, "evaluate")
	}
	m := t.Metric()
	log.Info().Msgf("evaluated %d nodes (%d terminals) in %s", m.Nodes, m.Terminals, m.Duration)
	return nil
}

func parseForce(s string) (int, int, error) {
	node, branch, ok := strings.Cut(s, "=")
	if !ok {
		return 0, 0, eris.Errorf("force %q: expected node=branch", s)
	}
	id, err := strconv.Atoi(strings.TrimSpace(node))
	if err != nil {
		return 0, 0, eris.Wrapf(err, "force %q: node", s)
	}
	b, err := strconv.Atoi(strings.TrimSpace(branch))
	if err != nil {
		return 0, 0, eris.Wrapf(err, "force %q: branch", s)
	}
	return id, b, nil
}
