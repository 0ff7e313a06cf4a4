// term.go — the abstract grammar: lambda terms, definitions, files.
//
// A Term is one of three shapes:
//
//	(*Var)  x            a named variable
//	(*Lam)  fn x => t    an abstraction binding x over t
//	(*Appl) t1 t2        an application, left-associative in surface syntax
//
// Terms are immutable once constructed. The reducer and the substitution
// machinery never mutate an existing node; they build new trees, and they may
// reuse an untouched subtree by pointer. That sharing is safe precisely
// because nothing writes to a node after construction, and it is what lets
// the reducer cache free-variable sets by node identity across steps.
//
// Printing lives here too: String() renders valid surface syntax with minimal
// parenthesization, so that ParseTerm(t.String()) is alpha-equivalent to t.
package m3lc

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// Term is a single lambda term. It is implemented by *Var, *Lam and *Appl and
// by nothing else.
type Term interface {
	fmt.Stringer

	// isTerm restricts implementations to this package.
	isTerm()
}

// Var is a named variable reference.
type Var struct {
	Name string
}

// Lam is a lambda abstraction: fn Param => Body.
type Lam struct {
	Param string
	Body  Term
}

// Appl is a function application: Left applied to Right.
type Appl struct {
	Left  Term
	Right Term
}

func (*Var) isTerm()  {}
func (*Lam) isTerm()  {}
func (*Appl) isTerm() {}

// Defn is a named top-level term, for later substitution into main.
type Defn struct {
	Name string
	Term Term
}

// File is an ordered sequence of definitions together with a main term.
// Definition order is significant: later definitions shadow earlier ones of
// the same name, like nested lets.
type File struct {
	Defns []Defn
	Main  Term
}

// Unroll desugars the file into a single term. We think of main as abstracted
// over each definition in reverse:
//
//	foo := term1
//	bar := term2
//	main := term3
//
// unrolls into a term equivalent to
//
//	(fn foo => (fn bar => term3) term2) term1
//
// Processing in reverse source order is what makes the earlier definition end
// up outermost, so every definition is visible to all later ones and to main.
func (f *File) Unroll() Term {
	acc := f.Main
	for i := len(f.Defns) - 1; i >= 0; i-- {
		d := f.Defns[i]
		acc = &Appl{Left: &Lam{Param: d.Name, Body: acc}, Right: d.Term}
	}
	return acc
}

// FreeVars returns the free variable names of t, sorted.
func FreeVars(t Term) []string {
	set := make(varSet)
	collectFree(t, set, nil)
	names := maps.Keys(set)
	slices.Sort(names)
	return names
}

/* ---------- printing ---------- */

func (v *Var) String() string { return v.Name }

func (l *Lam) String() string {
	return "fn " + l.Param + " => " + l.Body.String()
}

// String renders an application with minimal parens: the function position is
// parenthesized only when it is an abstraction (whose body would otherwise
// swallow the argument), the argument position whenever it is not a plain
// variable (to preserve left associativity).
func (a *Appl) String() string {
	var b strings.Builder
	if _, ok := a.Left.(*Lam); ok {
		b.WriteByte('(')
		b.WriteString(a.Left.String())
		b.WriteByte(')')
	} else {
		b.WriteString(a.Left.String())
	}
	b.WriteByte(' ')
	if _, ok := a.Right.(*Var); ok {
		b.WriteString(a.Right.String())
	} else {
		b.WriteByte('(')
		b.WriteString(a.Right.String())
		b.WriteByte(')')
	}
	return b.String()
}

func (d Defn) String() string { return d.Name + " := " + d.Term.String() }

// String renders the file with one definition per line, semicolon-terminated,
// main last.
func (f *File) String() string {
	var b strings.Builder
	for _, d := range f.Defns {
		b.WriteString(d.String())
		b.WriteString(";\n")
	}
	b.WriteString("main := ")
	b.WriteString(f.Main.String())
	b.WriteByte(';')
	return b.String()
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
//                                 PRIVATE
////////////////////////////////////////////////////////////////////////////////

// varSet is the working representation of a set of names.
type varSet map[string]struct{}

func (s varSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

// collectFree adds the free names of t to out. bound is the stack of binders
// currently in scope.
func collectFree(t Term, out varSet, bound []string) {
	switch t := t.(type) {
	case *Var:
		if !slices.Contains(bound, t.Name) {
			out[t.Name] = struct{}{}
		}
	case *Lam:
		collectFree(t.Body, out, append(bound, t.Param))
	case *Appl:
		collectFree(t.Left, out, bound)
		collectFree(t.Right, out, bound)
	}
}
