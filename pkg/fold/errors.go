package fold

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotInvokable is returned by Carrier.Invoke when the underlying
// subject cannot execute.
var ErrNotInvokable = errors.New("subject is not invokable")

// ErrUnnamedInterp is returned by Apply for an interpretation with an
// empty Name; results need a name to be recorded under.
var ErrUnnamedInterp = errors.New("interpretation has no name")

// GrammarError reports a tree that falls outside the fixed grammar:
// a nil node, an unknown construct or operator, or a chained
// comparison.
type GrammarError struct {
	Construct string
	Detail    string
}

func (e *GrammarError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("grammar error: %s", e.Construct)
	}
	return fmt.Sprintf("grammar error: %s: %s", e.Construct, e.Detail)
}

// MissingHandlerError reports a construct the interpretation assigns
// no semantics to. Construct is the most specific name that failed
// (the operator for operator constructs); Tried lists every handler
// consulted, in dispatch order.
type MissingHandlerError struct {
	Interp    string
	Construct string
	Tried     []string
}

func (e *MissingHandlerError) Error() string {
	who := "interpretation"
	if e.Interp != "" {
		who = fmt.Sprintf("interpretation %q", e.Interp)
	}
	if len(e.Tried) > 1 {
		return fmt.Sprintf("%s has no handler for %s (tried %s)", who, e.Construct, strings.Join(e.Tried, ", then "))
	}
	return fmt.Sprintf("%s has no handler for %s", who, e.Construct)
}

// ResultNotFoundError reports a carrier lookup for a name no applied
// interpretation has recorded.
type ResultNotFoundError struct {
	Name string
	Have []string
}

func (e *ResultNotFoundError) Error() string {
	if len(e.Have) == 0 {
		return fmt.Sprintf("no result named %q (no interpretations applied)", e.Name)
	}
	return fmt.Sprintf("no result named %q (have %s)", e.Name, strings.Join(e.Have, ", "))
}
