package tree

import (
	"errors"
	"fmt"
)

var ErrPassOrder = errors.New("evaluation passes must run in order: values, probabilities, risk profile")

// ConfigurationError reports a malformed model found while expanding it.
type ConfigurationError struct {
	Variable int // -1 when not tied to a variable
	Tag      string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	if e.Variable < 0 {
		return "configuration: " + e.Reason
	}
	return fmt.Sprintf("configuration: variable %d (%s): %s", e.Variable, e.Tag, e.Reason)
}

// OverrideError reports an invalid forced branch.
type OverrideError struct {
	Node   int
	Branch int
	Reason string
}

func (e *OverrideError) Error() string {
	return fmt.Sprintf("force branch %d on node %d: %s", e.Branch, e.Node, e.Reason)
}
