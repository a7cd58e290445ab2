package source_test

import (
	"testing"

	"github.com/starfold-labs/starfold/pkg/ast"
	"github.com/starfold-labs/starfold/pkg/fold"
	"github.com/starfold-labs/starfold/pkg/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvokeFunction(t *testing.T) {
	prog, err := source.Parse("calc.py", []byte(`def add(x, y=1):
    return x + y

def total(items):
    n = 0
    for item in items:
        n += item
    return n
`))
	require.NoError(t, err)

	add, err := prog.Function("add")
	require.NoError(t, err)

	got, err := add.Invoke(40, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)

	total, err := prog.Function("total")
	require.NoError(t, err)

	got, err = total.Invoke([]any{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, int64(6), got)
}

func TestInvokeWhileLoop(t *testing.T) {
	// While loops are off in the default dialect; Invoke must accept
	// everything the grammar covers.
	prog, err := source.Parse("loop.py", []byte(`def countdown(n):
    steps = 0
    while n > 0:
        n -= 1
        steps += 1
    return steps
`))
	require.NoError(t, err)

	fn, err := prog.Function("countdown")
	require.NoError(t, err)

	got, err := fn.Invoke(5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got)
}

func TestInvokeOpaqueResult(t *testing.T) {
	// A result outside the conversion set comes back in its printed
	// form rather than failing the call.
	prog, err := source.Parse("fn.py", []byte("def pick():\n    return pick\n"))
	require.NoError(t, err)

	fn, err := prog.Function("pick")
	require.NoError(t, err)

	got, err := fn.Invoke()
	require.NoError(t, err)
	assert.Equal(t, "<function pick>", got)
}

func TestInvokeRuntimeError(t *testing.T) {
	prog, err := source.Parse("div.py", []byte("def div(x, y):\n    return x // y\n"))
	require.NoError(t, err)

	fn, err := prog.Function("div")
	require.NoError(t, err)

	_, err = fn.Invoke(1, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "div")
}

func TestCarrierDelegatesInvoke(t *testing.T) {
	prog, err := source.Parse("id.py", []byte("def identity(x):\n    return x\n"))
	require.NoError(t, err)

	fn, err := prog.Function("identity")
	require.NoError(t, err)

	defs := &fold.Interp[int]{
		Name: "defs",
		Module: func(_ *ast.Module, body *fold.Body[int], ctx fold.Context) (int, fold.Context, error) {
			return body.Post(ctx)
		},
		Block: func(stmts []*fold.View[int], ctx fold.Context) (int, fold.Context, error) {
			return len(stmts), ctx, nil
		},
	}

	carrier, err := fold.Apply(defs, fn, nil)
	require.NoError(t, err)

	got, err := carrier.Invoke("hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", got, "an analyzed function should still answer as itself")
}
