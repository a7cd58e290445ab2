// Package analyses ships ready-made interpretations and a registry for
// discovering them by name.
//
// # Registry
//
// Each analysis registers itself in an init() function, so importing
// the package makes the full set available:
//
//	a, ok := analyses.Get("size")
//	applier, err := a.Build(nil)
//	carrier, err := applier.ApplyTo(subject, nil)
//
// Build accepts an options map merged over the analysis defaults;
// options are decoded with mapstructure, so values may come straight
// from a YAML config.
//
// # Shipped analyses
//
//   - size: counts the nodes of a function body.
//   - cost: abstract step count, loops scaled by the extent of their
//     iterable.
//   - typecheck: propagates simple type tags through expressions.
//   - complexity: symbolic asymptotic bounds over named input sizes.
package analyses
