// equiv.go — alpha-equivalence of lambda terms.
//
// Two terms are alpha-equivalent when they are identical up to a consistent
// renaming of bound variables. The check is purely structural and never
// reduces: it is used to compare normal forms, to state the printer's
// round-trip law, and by the value classifier.
package m3lc

import "golang.org/x/exp/slices"

// AlphaEquiv reports whether a and b are alpha-equivalent. Free variables
// must match by name exactly.
func AlphaEquiv(a, b Term) bool {
	return alphaEquiv(a, b, nil)
}

// AlphaEquivUnder is AlphaEquiv with a mapping of currently-open free names:
// a free occurrence of k in a corresponds to a free occurrence of open[k]
// in b. Free names outside the mapping must match exactly.
func AlphaEquivUnder(a, b Term, open map[string]string) bool {
	keys := make([]string, 0, len(open))
	for k := range open {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	ctx := make([]binderPair, 0, len(open))
	for _, k := range keys {
		ctx = append(ctx, binderPair{left: k, right: open[k]})
	}
	return alphaEquiv(a, b, ctx)
}

//// END_OF_PUBLIC

// binderPair associates a binder name in the left term with the
// corresponding binder name in the right term.
type binderPair struct {
	left, right string
}

// alphaEquiv walks both terms in lockstep. ctx holds the binder pairs in
// scope, innermost last; a variable pair is decided by the innermost entry
// mentioning either name, so a name rebound on only one side cannot be
// mistaken for a matching free occurrence.
func alphaEquiv(a, b Term, ctx []binderPair) bool {
	switch a := a.(type) {
	case *Var:
		bv, ok := b.(*Var)
		if !ok {
			return false
		}
		for i := len(ctx) - 1; i >= 0; i-- {
			p := ctx[i]
			if p.left == a.Name || p.right == bv.Name {
				return p.left == a.Name && p.right == bv.Name
			}
		}
		return a.Name == bv.Name

	case *Lam:
		bl, ok := b.(*Lam)
		if !ok {
			return false
		}
		return alphaEquiv(a.Body, bl.Body, append(ctx, binderPair{left: a.Param, right: bl.Param}))

	case *Appl:
		ba, ok := b.(*Appl)
		if !ok {
			return false
		}
		return alphaEquiv(a.Left, ba.Left, ctx) && alphaEquiv(a.Right, ba.Right, ctx)
	}
	return false
}
