// term_test.go
package m3lc

import (
	"reflect"
	"testing"
)

// --- AST builders shared across the package tests --------------------------

func v(name string) Term        { return &Var{Name: name} }
func lam(p string, b Term) Term { return &Lam{Param: p, Body: b} }
func app(l, r Term) Term        { return &Appl{Left: l, Right: r} }
func apps(ts ...Term) Term {
	t := ts[0]
	for _, next := range ts[1:] {
		t = app(t, next)
	}
	return t
}

// identity: fn x => x
func identity() Term { return lam("x", v("x")) }

// --- printing ---------------------------------------------------------------

func Test_Term_String(t *testing.T) {
	cases := map[string]struct {
		term Term
		want string
	}{
		"identifier": {v("s"), "s"},
		"identity":   {identity(), "fn x => x"},
		"one": {
			lam("f", lam("a", app(v("f"), v("a")))),
			"fn f => fn a => f a",
		},
		"succ": {
			lam("n", lam("f", lam("a", app(v("f"), apps(v("n"), v("f"), v("a")))))),
			"fn n => fn f => fn a => f (n f a)",
		},
		"y combinator": {
			lam("g", app(
				lam("x", app(v("g"), app(v("x"), v("x")))),
				lam("x", app(v("g"), app(v("x"), v("x")))),
			)),
			"fn g => (fn x => g (x x)) (fn x => g (x x))",
		},
		"left associative application": {
			apps(v("x"), v("y"), v("z")),
			"x y z",
		},
		"right associative application": {
			app(v("x"), app(v("y"), v("z"))),
			"x (y z)",
		},
		"abstraction in function position": {
			app(identity(), v("y")),
			"(fn x => x) y",
		},
		"abstraction in argument position": {
			app(v("y"), identity()),
			"y (fn x => x)",
		},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			if got := tc.term.String(); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func Test_Defn_String(t *testing.T) {
	d := Defn{Name: "ident", Term: identity()}
	if got, want := d.String(), "ident := fn x => x"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func Test_File_String(t *testing.T) {
	f := &File{
		Defns: []Defn{
			{Name: "ident", Term: identity()},
			{Name: "zero", Term: lam("f", lam("a", v("a")))},
		},
		Main: app(v("ident"), v("zero")),
	}
	want := "ident := fn x => x;\nzero := fn f => fn a => a;\nmain := ident zero;"
	if got := f.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// --- round trip -------------------------------------------------------------

// Printing then re-parsing must give back an alpha-equivalent term.
func Test_Print_Parse_Round_Trip(t *testing.T) {
	sources := []string{
		"x",
		"fn x => x",
		"fn f => fn a => f a",
		"fn n => fn f => fn a => f (n f a)",
		"fn g => (fn x => g (x x)) (fn x => g (x x))",
		"x y z",
		"x (y z)",
		"(fn x => x) y",
		"y (fn x => x)",
		"fn x => x y",
		"(fn x => x x) (fn x => x x)",
	}
	for _, src := range sources {
		src := src
		t.Run(src, func(t *testing.T) {
			term := mustParseTerm(t, src)
			back := mustParseTerm(t, term.String())
			if !AlphaEquiv(term, back) {
				t.Fatalf("round trip broke alpha-equivalence:\n  term:    %s\n  printed: %s", term, back)
			}
		})
	}
}

// --- unrolling --------------------------------------------------------------

func Test_File_Unroll(t *testing.T) {
	f := &File{
		Defns: []Defn{
			{Name: "ident", Term: identity()},
			{Name: "zero", Term: lam("f", lam("a", v("a")))},
		},
		Main: app(v("ident"), v("zero")),
	}

	// (fn ident => (fn zero => ident zero) (fn f => fn a => a)) (fn x => x)
	want := app(
		lam("ident", app(
			lam("zero", app(v("ident"), v("zero"))),
			lam("f", lam("a", v("a"))),
		)),
		identity(),
	)
	if got := f.Unroll(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unroll mismatch:\n  got:  %s\n  want: %s", got, want)
	}
}

func Test_File_Unroll_No_Defns(t *testing.T) {
	f := &File{Main: identity()}
	if got := f.Unroll(); !reflect.DeepEqual(got, identity()) {
		t.Fatalf("got %s, want fn x => x", got)
	}
}

// --- free variables ---------------------------------------------------------

func Test_FreeVars(t *testing.T) {
	cases := map[string]struct {
		src  string
		want []string
	}{
		"free variable":      {"x", []string{"x"}},
		"closed":             {"fn x => x", nil},
		"body frees":         {"fn x => x y z", []string{"y", "z"}},
		"shadowed binder":    {"fn x => fn x => x", nil},
		"free and bound mix": {"(fn x => x y) x", []string{"x", "y"}},
	}
	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			got := FreeVars(mustParseTerm(t, tc.src))
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}
