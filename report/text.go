package report

import (
	"decisions/model"
	"decisions/tree"
	"fmt"
	"io"
	"strings"
)

// errWriter keeps the first write error so rendering code can stay linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

// Variables lists the declared variables with their branches.
func Variables(w io.Writer, table *model.Table) error {
	out := &errWriter{w: w}
	for i, v := range table.Variables() {
		out.printf("Variable %d\n", i)
		out.printf("    Name: %s\n", v.Tag)

		switch v.Kind {
		case model.Decision:
			payoff := "Maximum Payoff"
			if !v.Maximize {
				payoff = "Minimum Payoff"
			}
			out.printf("    Type: %s - %s\n", v.Kind, payoff)
			out.printf("    Branches:\n")
			out.printf("    %12s  %s\n", "Outcome", "Successor")
			for _, b := range v.Branches {
				out.printf("    %12.3f  %d\n", b.Value, b.Next)
			}
		case model.Chance:
			out.printf("    Type: %s\n", v.Kind)
			out.printf("    Branches:\n")
			out.printf("    %8s  %12s  %s\n", "Chance", "Outcome", "Successor")
			for _, b := range v.Branches {
				out.printf("    %8.2f  %12.3f  %d\n", b.Probability, b.Value, b.Next)
			}
		case model.Terminal:
			out.printf("    Type: %s\n", v.Kind)
			if v.Cumulative() {
				out.printf("    Expr: (cumulative)\n")
			} else {
				out.printf("    Expr: %s\n", v.Formula)
			}
		default:
			out.printf("    Type: %s\n", v.Kind)
		}
		if v.Ignore {
			out.printf("    (ignored in cumulative formulas)\n")
		}
		out.printf("\n")
	}
	return out.err
}

type TreeOptions struct {
	MaxDepth     int  // 0 prints every level
	SelectedOnly bool // Decisions show only their optimal branch
}

// Tree prints an indented dump of the tree and whatever the evaluation
// passes have filled in so far.
func Tree(w io.Writer, t *tree.Tree, options TreeOptions) error {
	p := &treePrinter{out: &errWriter{w: w}, t: t, options: options}
	p.node(0, "", true, 0)
	return p.out.err
}

type treePrinter struct {
	out     *errWriter
	t       *tree.Tree
	options TreeOptions
}

func (p *treePrinter) node(id int, prefix string, last bool, depth int) {
	n := p.t.Node(id)

	connector, childPrefix := "+-- ", prefix+"|   "
	if last {
		connector, childPrefix = "\\-- ", prefix+"    "
	}
	p.out.printf("%s%s%s\n", prefix, connector, header(n))

	detail := childPrefix + "  "
	if n.IsTerminal() {
		p.out.printf("%s%s = %s\n", detail, n.Tag, n.Formula)
		p.out.printf("%sPathProb=%.2f\n", detail, n.PathProbability)
	}
	p.out.printf("%sExpVal=%.2f\n", detail, n.ExpectedValue)
	if !n.IsTerminal() && n.RiskProfile != nil {
		p.out.printf("%sRisk Profile:\n", detail)
		p.riskRows(detail+"  ", n.RiskProfile)
	}
	if n.Selected {
		p.out.printf("%s(selected strategy)\n", detail)
	}
	if branch, ok := p.t.Forced(id); ok {
		p.out.printf("%s(forced branch = %d)\n", detail, branch)
	}

	if p.options.MaxDepth > 0 && depth >= p.options.MaxDepth {
		return
	}

	children := n.Children
	if p.options.SelectedOnly && n.Kind == model.Decision && n.OptimalBranch >= 0 {
		children = []int{n.Children[n.OptimalBranch]}
	}
	for i, child := range children {
		p.node(child, childPrefix, i == len(children)-1, depth+1)
	}
}

func (p *treePrinter) riskRows(prefix string, profile tree.RiskProfile) {
	p.out.printf("%s%10s %8s\n", prefix, "Value", "Prob")
	for _, v := range profile.Values() {
		p.out.printf("%s%10.2f %8.2f\n", prefix, v, profile[v])
	}
}

func header(n *tree.Node) string {
	var sb strings.Builder
	switch n.Kind {
	case model.Decision:
		sb.WriteString("[D]")
	case model.Chance:
		sb.WriteString("[C]")
	case model.Terminal:
		sb.WriteString("[T]")
	default:
		sb.WriteString("[?]")
	}
	fmt.Fprintf(&sb, " #%d", n.Number)
	if n.HasEdge {
		fmt.Fprintf(&sb, " %s=%g", n.EdgeVar, n.EdgeValue)
		if n.EdgeProbability != 0 {
			fmt.Fprintf(&sb, " Prob=%.2f", n.EdgeProbability)
		}
	}
	return sb.String()
}

// RiskProfile prints an outcome distribution sorted by value.
func RiskProfile(w io.Writer, profile tree.RiskProfile) error {
	out := &errWriter{w: w}
	out.printf("%10s %8s\n", "Value", "Prob")
	for _, v := range profile.Values() {
		out.printf("%10.2f %8.2f\n", v, profile[v])
	}
	out.printf("%10s %8.2f\n", "Total", profile.Total())
	return out.err
}
