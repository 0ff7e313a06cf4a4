// classify_test.go
package m3lc

import (
	"reflect"
	"testing"
)

// --- booleans ---------------------------------------------------------------

func Test_ToBool(t *testing.T) {
	if b, ok := ToBool(True()); !ok || !b {
		t.Fatalf("got %v, %v", b, ok)
	}
	if b, ok := ToBool(False()); !ok || b {
		t.Fatalf("got %v, %v", b, ok)
	}
	if _, ok := ToBool(identity()); ok {
		t.Fatal("identity is not a boolean")
	}
	// renamed binders are still booleans
	if b, ok := ToBool(mustParseTerm(t, "fn p => fn q => p")); !ok || !b {
		t.Fatalf("got %v, %v", b, ok)
	}
}

func Test_And(t *testing.T) {
	cases := []struct {
		a, b, want bool
	}{
		{true, true, true},
		{true, false, false},
		{false, true, false},
		{false, false, false},
	}
	for _, tc := range cases {
		got := And(FromBool(tc.a), FromBool(tc.b))
		wantEquiv(t, got, FromBool(tc.want))
	}
}

// --- Church numerals --------------------------------------------------------

func Test_FromInt_Zero(t *testing.T) {
	wantTerm(t, FromInt(0), lam("f", lam("a", v("a"))))
}

func Test_FromInt_Three(t *testing.T) {
	wantTerm(t, FromInt(3),
		lam("f", lam("a", app(v("f"), app(v("f"), app(v("f"), v("a")))))))
}

func Test_ToInt_Round_Trip(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 17, 143} {
		got, ok := ToInt(FromInt(n))
		if !ok || got != n {
			t.Fatalf("n=%d: got %d, %v", n, got, ok)
		}
	}
}

func Test_ToInt_Weird_Names(t *testing.T) {
	// Binder names produced by reduction (dotted fresh names) must decode.
	one := lam("f.1234", lam("qwerty", app(v("f.1234"), v("qwerty"))))
	if got, ok := ToInt(one); !ok || got != 1 {
		t.Fatalf("got %d, %v", got, ok)
	}
}

func Test_ToInt_Rejects_Non_Numerals(t *testing.T) {
	bad := []Term{
		identity(),
		True(),
		v("x"),
		// body applies g but the outer binder is f
		lam("g", lam("a", app(v("g"), app(v("f"), v("a"))))),
		// terminates in the wrong variable
		lam("f", lam("a", app(v("f"), v("f")))),
	}
	for _, term := range bad {
		if n, ok := ToInt(term); ok {
			t.Fatalf("%s decoded as numeral %d", term, n)
		}
	}
}

func Test_Succ(t *testing.T) {
	wantEquiv(t, Succ(FromInt(0)), FromInt(1))
	wantEquiv(t, Succ(FromInt(17)), FromInt(18))

	// and via the reducer end to end
	n, ok := ToInt(Succ(Succ(FromInt(1))))
	if !ok || n != 3 {
		t.Fatalf("got %d, %v", n, ok)
	}
}

// --- classification ---------------------------------------------------------

func Test_Classify(t *testing.T) {
	cases := map[string]struct {
		term Term
		want []string
	}{
		"two":      {FromInt(2), []string{"Church numeral 2"}},
		"true":     {True(), []string{"boolean true"}},
		"identity": {identity(), nil},
		"free var": {v("x"), nil},
		"zero is also false": {
			FromInt(0),
			[]string{"Church numeral 0", "boolean false"},
		},
	}
	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			got := Classify(tc.term)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func Test_Classify_After_Reduction(t *testing.T) {
	src := `zero := fn f => fn x => x;
succ := fn n => fn f => fn x => f (n f x);
main := succ (succ zero);`
	got := Classify(reduceFile(t, src))
	want := []string{"Church numeral 2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
