package formula

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// Evaluator computes the numeric value of a terminal formula.
type Evaluator interface {
	Evaluate(expr string, bindings Bindings) (float64, error)
}

type ExpressionError struct {
	Formula string
	Reason  string
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("formula %q: %s", e.Formula, e.Reason)
}

// Synthesize builds the cumulative formula for a terminal from the accumulated
// path variable names, in visitation order.
func Synthesize(names []string) string {
	return strings.Join(names, "+")
}

// Arithmetic evaluates formulas with the HCL expression syntax. Only
// arithmetic over bound variables is possible: the evaluation context has no
// functions, and every referenced name must be bound.
//
// HCL lets identifiers contain dashes. A dashed name that is not bound is
// read as subtraction, so "revenue-cost" and "x-1" work as they read.
type Arithmetic struct{}

func NewArithmetic() *Arithmetic {
	return &Arithmetic{}
}

func (a *Arithmetic) Evaluate(expr string, bindings Bindings) (float64, error) {
	if strings.TrimSpace(expr) == "" {
		return 0, &ExpressionError{Formula: expr, Reason: "empty formula"}
	}

	src := splitDashes([]byte(expr), bindings)
	parsed, diags := hclsyntax.ParseExpression(src, "formula", start)
	if diags.HasErrors() {
		return 0, &ExpressionError{Formula: expr, Reason: diagnostics(diags)}
	}

	// Reject unknown identifiers before evaluating so the error names them
	vars := make(map[string]cty.Value, bindings.Len())
	for _, traversal := range parsed.Variables() {
		name := traversal.RootName()
		value, ok := bindings.Lookup(name)
		if !ok {
			return 0, &ExpressionError{Formula: expr, Reason: fmt.Sprintf("unknown variable %q", name)}
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return 0, &ExpressionError{Formula: expr, Reason: fmt.Sprintf("variable %q is %v", name, value)}
		}
		vars[name] = cty.NumberFloatVal(value)
	}

	ctx := &hcl.EvalContext{Variables: vars}
	if op := zeroDivisor(parsed, ctx); op != "" {
		return 0, &ExpressionError{Formula: expr, Reason: op + " by zero"}
	}
	val, diags := parsed.Value(ctx)
	if diags.HasErrors() {
		return 0, &ExpressionError{Formula: expr, Reason: diagnostics(diags)}
	}
	if val.IsNull() || !val.IsKnown() {
		return 0, &ExpressionError{Formula: expr, Reason: "formula has no value"}
	}
	if val.Type() != cty.Number {
		return 0, &ExpressionError{Formula: expr, Reason: fmt.Sprintf("result is %s, not a number", val.Type().FriendlyName())}
	}

	// Numbers are arbitrary precision, so overflow shows only on conversion
	f, _ := val.AsBigFloat().Float64()
	if math.IsInf(f, 0) {
		return 0, &ExpressionError{Formula: expr, Reason: "result is infinite"}
	}
	return f, nil
}

var start = hcl.Pos{Line: 1, Column: 1, Byte: 0}

// splitDashes rewrites every dashed identifier that is not bound as a whole
// into a subtraction of its parts. Lexing errors are left for the parser.
func splitDashes(src []byte, bindings Bindings) []byte {
	tokens, _ := hclsyntax.LexExpression(src, "formula", start)

	var out []byte
	prev := 0
	for _, tok := range tokens {
		if tok.Type != hclsyntax.TokenIdent || !bytes.ContainsRune(tok.Bytes, '-') {
			continue
		}
		if _, ok := bindings.Lookup(string(tok.Bytes)); ok {
			continue
		}
		out = append(out, src[prev:tok.Range.Start.Byte]...)
		out = append(out, bytes.ReplaceAll(tok.Bytes, []byte("-"), []byte(" - "))...)
		prev = tok.Range.End.Byte
	}
	if out == nil {
		return src
	}
	return append(out, src[prev:]...)
}

// zeroDivisor returns "division" or "modulo" when a divisor in the
// expression evaluates to zero, and "" otherwise.
func zeroDivisor(expr hclsyntax.Expression, ctx *hcl.EvalContext) string {
	var found string
	hclsyntax.VisitAll(expr, func(node hclsyntax.Node) hcl.Diagnostics {
		bin, ok := node.(*hclsyntax.BinaryOpExpr)
		if !ok || found != "" {
			return nil
		}
		var op string
		switch bin.Op {
		case hclsyntax.OpDivide:
			op = "division"
		case hclsyntax.OpModulo:
			op = "modulo"
		default:
			return nil
		}
		rhs, diags := bin.RHS.Value(ctx)
		if diags.HasErrors() || rhs.IsNull() || !rhs.IsKnown() || rhs.Type() != cty.Number {
			return nil
		}
		if rhs.AsBigFloat().Sign() == 0 {
			found = op
		}
		return nil
	})
	return found
}

func diagnostics(diags hcl.Diagnostics) string {
	var msgs []string
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		if d.Detail != "" {
			msgs = append(msgs, d.Summary+": "+d.Detail)
		} else {
			msgs = append(msgs, d.Summary)
		}
	}
	return strings.Join(msgs, "; ")
}
