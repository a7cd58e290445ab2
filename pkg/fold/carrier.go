package fold

import "github.com/starfold-labs/starfold/pkg/ast"

// Subject is anything an interpretation can be applied to: it owns an
// immutable tree.
type Subject interface {
	Tree() *ast.Module
}

// Invokable is implemented by subjects that can execute, such as
// functions backed by runnable source. Carriers delegate Invoke to
// their subject, so an analyzed function still answers as itself.
type Invokable interface {
	Invoke(args ...any) (any, error)
}

// Result is one named interpretation result held by a Carrier.
type Result struct {
	Name  string
	Value any
}

// Carrier pairs a subject with the results of the interpretations
// applied to it so far. A Carrier is itself a Subject, so applications
// stack; every interpretation folds the pristine original tree, never
// a view of earlier results.
//
// A Carrier is mutated only as the final step of Apply. Callers
// sequence applications; concurrent applications to one carrier are
// not supported.
type Carrier struct {
	subject Subject
	results map[string]any
	order   []string
}

// Subject returns the original subject the carrier wraps.
func (c *Carrier) Subject() Subject { return c.subject }

// Tree returns the subject's tree.
func (c *Carrier) Tree() *ast.Module { return c.subject.Tree() }

// Result returns the value recorded under name. The error lists the
// names actually present when there is no such result.
func (c *Carrier) Result(name string) (any, error) {
	v, ok := c.results[name]
	if !ok {
		return nil, &ResultNotFoundError{Name: name, Have: c.Names()}
	}
	return v, nil
}

// Names returns the recorded result names in application order.
func (c *Carrier) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Results returns the recorded results in application order.
func (c *Carrier) Results() []Result {
	out := make([]Result, len(c.order))
	for i, name := range c.order {
		out[i] = Result{Name: name, Value: c.results[name]}
	}
	return out
}

// Invoke delegates to the subject when it is Invokable and returns
// ErrNotInvokable otherwise.
func (c *Carrier) Invoke(args ...any) (any, error) {
	if inv, ok := c.subject.(Invokable); ok {
		return inv.Invoke(args...)
	}
	return nil, ErrNotInvokable
}

// Apply folds the interpretation over the subject's tree under ctx and
// records the result under the interpretation's name.
//
// Applying to a bare subject allocates a new carrier; applying to an
// existing carrier adds to it and returns it, so results accumulate
// monotonically. Either way the fold runs on the original tree.
// Re-applying a name replaces that name's value. The fold's final
// context is discarded; interpretations that need it expose it through
// their result type.
func Apply[R any](in *Interp[R], s Subject, ctx Context) (*Carrier, error) {
	if in.Name == "" {
		return nil, ErrUnnamedInterp
	}
	c, ok := s.(*Carrier)
	if !ok {
		c = &Carrier{subject: s, results: make(map[string]any)}
	}
	r, _, err := in.Fold(c.subject.Tree(), ctx)
	if err != nil {
		return nil, err
	}
	if _, exists := c.results[in.Name]; !exists {
		c.order = append(c.order, in.Name)
	}
	c.results[in.Name] = r
	return c, nil
}

// Applier applies a named interpretation to subjects. It erases the
// result type parameter so interpretations over different result types
// can share registries and pipelines.
type Applier interface {
	Name() string
	ApplyTo(s Subject, ctx Context) (*Carrier, error)
}

type applier[R any] struct {
	in *Interp[R]
}

func (a applier[R]) Name() string { return a.in.Name }

func (a applier[R]) ApplyTo(s Subject, ctx Context) (*Carrier, error) {
	return Apply(a.in, s, ctx)
}

// Applier wraps the interpretation for use where the result type
// cannot appear, such as heterogeneous registries.
func (in *Interp[R]) Applier() Applier {
	return applier[R]{in: in}
}
