package analyses

import (
	"fmt"
	"sort"
	"strings"
)

// Bound is a symbolic asymptotic bound over named input sizes. It is a
// product of factors per symbol: a polynomial degree, an optional
// exponential, and a logarithm power. The zero value is O(1).
//
// Bounds are immutable; Mul and Add return fresh values.
type Bound struct {
	degrees map[string]int
	expos   map[string]bool
	logs    map[string]int
}

// Constant returns the O(1) bound.
func Constant() Bound { return Bound{} }

// Linear returns the bound O(sym).
func Linear(sym string) Bound {
	return Bound{degrees: map[string]int{sym: 1}}
}

// Poly returns the bound O(sym^deg).
func Poly(sym string, deg int) Bound {
	if deg <= 0 {
		return Bound{}
	}
	return Bound{degrees: map[string]int{sym: deg}}
}

// Log returns the bound O(log sym).
func Log(sym string) Bound {
	return Bound{logs: map[string]int{sym: 1}}
}

// Exponential returns the bound O(2^sym).
func Exponential(sym string) Bound {
	return Bound{expos: map[string]bool{sym: true}}
}

// IsConstant reports whether the bound is O(1).
func (b Bound) IsConstant() bool {
	return len(b.degrees) == 0 && len(b.expos) == 0 && len(b.logs) == 0
}

// Mul returns the product of the two bounds: degrees and log powers
// add, exponentials combine.
func (b Bound) Mul(o Bound) Bound {
	out := b.clone()
	for sym, d := range o.degrees {
		out.degrees[sym] += d
	}
	for sym := range o.expos {
		out.expos[sym] = true
	}
	for sym, p := range o.logs {
		out.logs[sym] += p
	}
	return out.trim()
}

// Add returns an upper bound for the sum of the two bounds. The true
// sum is not a single product form, so Add takes the pointwise maximum
// of the factors, which dominates both terms.
func (b Bound) Add(o Bound) Bound {
	out := b.clone()
	for sym, d := range o.degrees {
		if d > out.degrees[sym] {
			out.degrees[sym] = d
		}
	}
	for sym := range o.expos {
		out.expos[sym] = true
	}
	for sym, p := range o.logs {
		if p > out.logs[sym] {
			out.logs[sym] = p
		}
	}
	return out.trim()
}

// String renders the bound in O-notation, factors sorted by symbol,
// exponentials first: "O(1)", "O(n^2)", "O(2^n * n * log(m))".
func (b Bound) String() string {
	if b.IsConstant() {
		return "O(1)"
	}
	var factors []string
	for _, sym := range sortedKeys(b.expos) {
		factors = append(factors, "2^"+sym)
	}
	for _, sym := range sortedKeys(b.degrees) {
		if d := b.degrees[sym]; d == 1 {
			factors = append(factors, sym)
		} else {
			factors = append(factors, fmt.Sprintf("%s^%d", sym, d))
		}
	}
	for _, sym := range sortedKeys(b.logs) {
		if p := b.logs[sym]; p == 1 {
			factors = append(factors, "log("+sym+")")
		} else {
			factors = append(factors, fmt.Sprintf("log(%s)^%d", sym, p))
		}
	}
	return "O(" + strings.Join(factors, " * ") + ")"
}

func (b Bound) clone() Bound {
	out := Bound{
		degrees: make(map[string]int, len(b.degrees)),
		expos:   make(map[string]bool, len(b.expos)),
		logs:    make(map[string]int, len(b.logs)),
	}
	for k, v := range b.degrees {
		out.degrees[k] = v
	}
	for k := range b.expos {
		out.expos[k] = true
	}
	for k, v := range b.logs {
		out.logs[k] = v
	}
	return out
}

// trim drops zero entries and empty maps so IsConstant and equality
// behave on computed bounds.
func (b Bound) trim() Bound {
	for k, v := range b.degrees {
		if v == 0 {
			delete(b.degrees, k)
		}
	}
	for k, v := range b.logs {
		if v == 0 {
			delete(b.logs, k)
		}
	}
	if len(b.degrees) == 0 {
		b.degrees = nil
	}
	if len(b.expos) == 0 {
		b.expos = nil
	}
	if len(b.logs) == 0 {
		b.logs = nil
	}
	return b
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
