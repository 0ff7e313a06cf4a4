// classify.go — recognizing familiar encodings in normal forms.
//
// After reducing a program the CLI tries to "guess the value": is this normal
// form a Church boolean, or a Church numeral? Recognition is built on the
// public alpha-equivalence contract: a term is classified as a value exactly
// when it is alpha-equivalent to that value's canonical encoding, so binder
// names, including dotted names generated during reduction, never matter.
package m3lc

import (
	"fmt"

	"github.com/samber/lo"
)

// True returns the canonical Church true: fn t => fn e => t.
func True() Term {
	return &Lam{Param: "t", Body: &Lam{Param: "e", Body: &Var{Name: "t"}}}
}

// False returns the canonical Church false: fn t => fn e => e.
func False() Term {
	return &Lam{Param: "t", Body: &Lam{Param: "e", Body: &Var{Name: "e"}}}
}

// FromBool returns the canonical encoding of b.
func FromBool(b bool) Term {
	if b {
		return True()
	}
	return False()
}

// ToBool decodes a Church boolean. The second result is false when t is not
// alpha-equivalent to either encoding.
func ToBool(t Term) (bool, bool) {
	switch {
	case AlphaEquiv(t, True()):
		return true, true
	case AlphaEquiv(t, False()):
		return false, true
	}
	return false, false
}

// FromInt returns the Church numeral for n: fn f => fn a => f (f (... a)),
// with n applications of f.
func FromInt(n int) Term {
	var body Term = &Var{Name: "a"}
	for i := 0; i < n; i++ {
		body = &Appl{Left: &Var{Name: "f"}, Right: body}
	}
	return &Lam{Param: "f", Body: &Lam{Param: "a", Body: body}}
}

// ToInt decodes a Church numeral. A structural walk down the body's spine
// proposes a candidate count; the verdict is then issued by AlphaEquiv
// against the canonical numeral, so the walk only ever has to be right about
// terms that really are numerals.
func ToInt(t Term) (int, bool) {
	n, ok := numeralCandidate(t)
	if !ok || !AlphaEquiv(t, FromInt(n)) {
		return 0, false
	}
	return n, true
}

// Succ applies the successor combinator fn n => fn f => fn a => f (n f a)
// to t and reduces.
func Succ(t Term) Term {
	succ := &Lam{Param: "n", Body: &Lam{Param: "f", Body: &Lam{Param: "a", Body: &Appl{
		Left: &Var{Name: "f"},
		Right: &Appl{
			Left:  &Appl{Left: &Var{Name: "n"}, Right: &Var{Name: "f"}},
			Right: &Var{Name: "a"},
		},
	}}}}
	return Reduce(&Appl{Left: succ, Right: t})
}

// And applies the conjunction combinator fn a => fn b => a b false to the
// two terms and reduces.
func And(a, b Term) Term {
	and := &Lam{Param: "a", Body: &Lam{Param: "b", Body: &Appl{
		Left:  &Appl{Left: &Var{Name: "a"}, Right: &Var{Name: "b"}},
		Right: False(),
	}}}
	return Reduce(&Appl{Left: &Appl{Left: and, Right: a}, Right: b})
}

// Classify returns human-readable descriptions of every known encoding the
// term matches, e.g. "Church numeral 2" or "boolean false". The result is
// empty when nothing matches, and can hold more than one entry: zero and
// false share an encoding, so fn f => fn a => a reports both.
func Classify(t Term) []string {
	guesses := []func(Term) (string, bool){
		func(t Term) (string, bool) {
			n, ok := ToInt(t)
			return fmt.Sprintf("Church numeral %d", n), ok
		},
		func(t Term) (string, bool) {
			b, ok := ToBool(t)
			return fmt.Sprintf("boolean %t", b), ok
		},
	}
	return lo.FilterMap(guesses, func(guess func(Term) (string, bool), _ int) (string, bool) {
		return guess(t)
	})
}

//// END_OF_PUBLIC

// numeralCandidate walks fn f => fn a => f (f (... a)) and counts the
// applications of f. It accepts any binder names.
func numeralCandidate(t Term) (int, bool) {
	outer, ok := t.(*Lam)
	if !ok {
		return 0, false
	}
	inner, ok := outer.Body.(*Lam)
	if !ok {
		return 0, false
	}
	f, a := outer.Param, inner.Param

	n := 0
	cur := inner.Body
	for {
		switch c := cur.(type) {
		case *Appl:
			if v, ok := c.Left.(*Var); !ok || v.Name != f {
				return 0, false
			}
			n++
			cur = c.Right
		case *Var:
			if c.Name != a {
				return 0, false
			}
			return n, true
		default:
			return 0, false
		}
	}
}
