package main

import (
	"decisions/model"
	"decisions/report"
	"decisions/sensitivity"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
)

var variablesCmd = &cobra.Command{
	Use:   "variables <model.yaml>",
	Short: "List the declared variables",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := model.LoadFile(args[0])
		if err != nil {
			return err
		}
		return report.Variables(cmd.OutOrStdout(), table)
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree <model.yaml>",
	Short: "Print the evaluated tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		forces, _ := f.GetStringArray("force")
		_, t, err := buildTree(args[0], forces)
		if err != nil {
			return err
		}
		if err := evaluateTree(t); err != nil {
			return err
		}

		options := report.TreeOptions{
			MaxDepth:     cfg.Display.MaxDepth,
			SelectedOnly: cfg.Display.SelectedOnly,
		}
		if f.Changed("depth") {
			options.MaxDepth, _ = f.GetInt("depth")
		}
		if f.Changed("selected") {
			options.SelectedOnly, _ = f.GetBool("selected")
		}
		return report.Tree(cmd.OutOrStdout(), t, options)
	},
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <model.yaml>",
	Short: "Report the optimal expected value and its risk profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		forces, _ := cmd.Flags().GetStringArray("force")
		csvDir, _ := cmd.Flags().GetString("csv")

		_, t, err := buildTree(args[0], forces)
		if err != nil {
			return err
		}
		if err := evaluateTree(t); err != nil {
			return err
		}
		profile, err := t.RiskProfile()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		root := t.Root()
		fmt.Fprintf(out, "Expected value: %.4f\n", root.ExpectedValue)
		if root.OptimalBranch >= 0 {
			best := t.Node(root.Children[root.OptimalBranch])
			fmt.Fprintf(out, "Optimal choice: %s=%g (branch %d)\n", best.EdgeVar, best.EdgeValue, root.OptimalBranch)
		}
		fmt.Fprintln(out, "Risk profile:")
		if err := report.RiskProfile(out, profile); err != nil {
			return err
		}

		if csvDir == "" {
			return nil
		}
		w, err := report.NewWriter(csvDir)
		if err != nil {
			return err
		}
		if err := w.WriteRiskProfile(profile); err != nil {
			return err
		}
		if err := w.WriteTerminals(t); err != nil {
			return err
		}
		log.Info().Msgf("stored risk profile and terminals in %s", w.Dir())
		return nil
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep <model.yaml>",
	Short: "Force each branch of the chosen nodes and report the root value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		forces, _ := cmd.Flags().GetStringArray("force")
		nodes, _ := cmd.Flags().GetIntSlice("node")
		csvDir, _ := cmd.Flags().GetString("csv")

		_, t, err := buildTree(args[0], forces)
		if err != nil {
			return err
		}
		if err := evaluateTree(t); err != nil {
			return err
		}
		if len(nodes) == 0 {
			nodes = sensitivity.Nodes(t, model.Decision)
		}

		records, err := sensitivity.Sweep(t, nodes)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%6s %-16s %6s %12s %12s\n", "Node", "Variable", "Branch", "Outcome", "Root EV")
		for _, r := range records {
			fmt.Fprintf(out, "%6d %-16s %6d %12g %12.4f\n", r.Number, r.Tag, r.Branch, r.EdgeValue, r.RootValue)
		}

		if csvDir == "" {
			return nil
		}
		w, err := report.NewWriter(csvDir)
		if err != nil {
			return err
		}
		if err := w.WriteSweep(records); err != nil {
			return err
		}
		log.Info().Msgf("stored sweep records in %s", w.Dir())
		return nil
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate <model.yaml>",
	Short: "Sample the optimal strategy and compare with its risk profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		forces, _ := f.GetStringArray("force")
		episodes := cfg.Simulate.Episodes
		if f.Changed("episodes") {
			episodes, _ = f.GetInt("episodes")
		}
		seed := cfg.Simulate.Seed
		if f.Changed("seed") {
			seed, _ = f.GetUint64("seed")
		}

		_, t, err := buildTree(args[0], forces)
		if err != nil {
			return err
		}
		if err := evaluateTree(t); err != nil {
			return err
		}

		sampled, err := t.Simulate(rand.New(rand.NewSource(seed)), episodes)
		if err != nil {
			return err
		}
		exact, err := t.RiskProfile()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Sampled %d episodes (seed %d):\n", episodes, seed)
		if err := report.RiskProfile(out, sampled); err != nil {
			return err
		}
		fmt.Fprintln(out, "Exact:")
		return report.RiskProfile(out, exact)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{treeCmd, evaluateCmd, sweepCmd, simulateCmd} {
		cmd.Flags().StringArray("force", nil, "force a branch as node=branch (repeatable)")
	}

	treeCmd.Flags().Int("depth", 0, "maximum depth to print (0 = all)")
	treeCmd.Flags().Bool("selected", false, "print only the selected strategy")

	evaluateCmd.Flags().String("csv", "", "directory for CSV output")

	sweepCmd.Flags().IntSlice("node", nil, "node ids to sweep (default: decisions on the selected strategy)")
	sweepCmd.Flags().String("csv", "", "directory for CSV output")

	simulateCmd.Flags().Int("episodes", 0, "number of sampled episodes (overrides config)")
	simulateCmd.Flags().Uint64("seed", 0, "random seed (overrides config)")

	rootCmd.AddCommand(variablesCmd, treeCmd, evaluateCmd, sweepCmd, simulateCmd)
}
