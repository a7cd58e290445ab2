package source

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// execOptions is the dialect Invoke runs under. The fixed grammar
// includes while loops and top-level control flow, so execution must
// accept them too; recursion and global reassignment round out plain
// Python-style functions.
func execOptions() *syntax.FileOptions {
	return &syntax.FileOptions{
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
		Recursion:       true,
	}
}

// Invoke executes the program's source and calls the function with the
// given Go values. The result comes back as a Go value. Analysis never
// executes anything; this path exists so a carrier stacked on a
// function can still answer calls as the original.
func (f *Function) Invoke(args ...any) (any, error) {
	thread := &starlark.Thread{Name: f.prog.path}
	globals, err := starlark.ExecFileOptions(execOptions(), thread, f.prog.path, f.prog.src, nil)
	if err != nil {
		return nil, fmt.Errorf("exec %s: %w", f.prog.path, err)
	}
	fn, ok := globals[f.def.Name]
	if !ok {
		return nil, &FunctionNotFoundError{Name: f.def.Name, File: f.prog.path}
	}

	tuple := make(starlark.Tuple, len(args))
	for i, a := range args {
		v, err := goToStarlark(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		tuple[i] = v
	}

	out, err := starlark.Call(thread, fn, tuple, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", f.def.Name, err)
	}
	return starlarkToGo(out)
}

// goToStarlark converts a Go value for use as a call argument.
// Supported: nil, string, int, int64, float64, bool, []string, []any,
// map[string]any.
func goToStarlark(v any) (starlark.Value, error) {
	if v == nil {
		return starlark.None, nil
	}
	switch val := v.(type) {
	case string:
		return starlark.String(val), nil
	case int:
		return starlark.MakeInt(val), nil
	case int64:
		return starlark.MakeInt64(val), nil
	case float64:
		return starlark.Float(val), nil
	case bool:
		return starlark.Bool(val), nil
	case []string:
		list := make([]starlark.Value, len(val))
		for i, s := range val {
			list[i] = starlark.String(s)
		}
		return starlark.NewList(list), nil
	case []any:
		list := make([]starlark.Value, len(val))
		for i, item := range val {
			sv, err := goToStarlark(item)
			if err != nil {
				return nil, fmt.Errorf("list index %d: %w", i, err)
			}
			list[i] = sv
		}
		return starlark.NewList(list), nil
	case map[string]any:
		dict := starlark.NewDict(len(val))
		for k, item := range val {
			sv, err := goToStarlark(item)
			if err != nil {
				return nil, fmt.Errorf("dict key %q: %w", k, err)
			}
			if err := dict.SetKey(starlark.String(k), sv); err != nil {
				return nil, fmt.Errorf("dict key %q: %w", k, err)
			}
		}
		return dict, nil
	}
	return nil, fmt.Errorf("unsupported argument type: %T", v)
}

// starlarkToGo converts a call result back to a Go value: string,
// int64, float64, bool, []any, map[string]any, or nil.
func starlarkToGo(v starlark.Value) (any, error) {
	switch val := v.(type) {
	case starlark.NoneType:
		return nil, nil
	case starlark.String:
		return string(val), nil
	case starlark.Int:
		i64, ok := val.Int64()
		if !ok {
			// Out of int64 range; the decimal string is the best we can do.
			return val.String(), nil
		}
		return i64, nil
	case starlark.Float:
		return float64(val), nil
	case starlark.Bool:
		return bool(val), nil
	case *starlark.List:
		out := make([]any, val.Len())
		for i := 0; i < val.Len(); i++ {
			gv, err := starlarkToGo(val.Index(i))
			if err != nil {
				return nil, fmt.Errorf("list index %d: %w", i, err)
			}
			out[i] = gv
		}
		return out, nil
	case starlark.Tuple:
		out := make([]any, val.Len())
		for i := 0; i < val.Len(); i++ {
			gv, err := starlarkToGo(val.Index(i))
			if err != nil {
				return nil, fmt.Errorf("tuple index %d: %w", i, err)
			}
			out[i] = gv
		}
		return out, nil
	case *starlark.Dict:
		out := make(map[string]any, val.Len())
		for _, item := range val.Items() {
			key, ok := item[0].(starlark.String)
			if !ok {
				return nil, fmt.Errorf("dict key must be string, got %s", item[0].Type())
			}
			gv, err := starlarkToGo(item[1])
			if err != nil {
				return nil, fmt.Errorf("dict key %q: %w", key, err)
			}
			out[string(key)] = gv
		}
		return out, nil
	}
	return v.String(), nil
}
