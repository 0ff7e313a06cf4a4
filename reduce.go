// reduce.go — normal-order beta reduction to normal form.
//
// Strategy: always contract the leftmost-outermost redex, and keep going
// under binders, so reduction reaches full normal form rather than weak head
// normal form. The calculus is untyped, so some terms (famously
// (fn x => x x) (fn x => x x)) have no normal form; on those inputs Reduce
// simply never returns. Callers that need a bound drive a *Reduction and stop
// pulling, which is exactly what the CLI's -steps flag does.
//
// Substitution is capture-avoiding. A binder is renamed only when its name is
// free in the incoming argument; renaming unconditionally would be correct
// but pathologically slow. The other hot spot is the free-variable test
// itself: a run memoizes the free set of every node it has seen, keyed by
// node identity. Terms are immutable and substitution shares untouched
// subtrees by pointer, so a cached set stays valid for the whole run and most
// lookups after the first few steps are hits.
package m3lc

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// Reduce rewrites t to its beta-normal form. It does not return if t has no
// normal form.
func Reduce(t Term) Term {
	r := newReducer()
	for {
		next, ok := r.step(t)
		if !ok {
			return t
		}
		t = next
	}
}

// Reduction is a pull-based trace of one reduction run: each Next yields the
// term after one more leftmost-outermost step. The sequence is finite exactly
// when the initial term normalizes, and it is not restartable. Stopping early
// is the only cancellation mechanism, and the only one needed.
type Reduction struct {
	r    *reducer
	cur  Term
	done bool
}

// NewReduction starts a reduction run on t without performing any steps.
func NewReduction(t Term) *Reduction {
	return &Reduction{r: newReducer(), cur: t}
}

// Term returns the current term: the initial term before the first Next, and
// afterwards the result of the last step.
func (s *Reduction) Term() Term { return s.cur }

// Next performs one reduction step and returns the resulting term. It
// returns false once the current term is a normal form.
func (s *Reduction) Next() (Term, bool) {
	if s.done {
		return nil, false
	}
	next, ok := s.r.step(s.cur)
	if !ok {
		s.done = true
		return nil, false
	}
	s.cur = next
	return next, true
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
//                            PRIVATE IMPLEMENTATION
////////////////////////////////////////////////////////////////////////////////

// reducer holds the per-run state: the fresh-name generator and the memoized
// free-variable sets. It is created per Reduce/NewReduction call, never
// shared, so concurrent reductions are independent.
type reducer struct {
	fresh *freshNames
	free  map[Term]varSet
}

func newReducer() *reducer {
	return &reducer{
		fresh: newFreshNames(),
		free:  make(map[Term]varSet),
	}
}

// freeSet returns the memoized free-variable set of t.
func (r *reducer) freeSet(t Term) varSet {
	if s, ok := r.free[t]; ok {
		return s
	}
	var s varSet
	switch t := t.(type) {
	case *Var:
		s = varSet{t.Name: {}}
	case *Lam:
		body := r.freeSet(t.Body)
		s = make(varSet, len(body))
		for name := range body {
			if name != t.Param {
				s[name] = struct{}{}
			}
		}
	case *Appl:
		left, right := r.freeSet(t.Left), r.freeSet(t.Right)
		s = make(varSet, len(left)+len(right))
		for name := range left {
			s[name] = struct{}{}
		}
		for name := range right {
			s[name] = struct{}{}
		}
	}
	r.free[t] = s
	return s
}

func (r *reducer) freeIn(t Term, name string) bool {
	return r.freeSet(t).has(name)
}

// step performs one leftmost-outermost reduction step. The second result is
// false when t is already in normal form.
func (r *reducer) step(t Term) (Term, bool) {
	switch t := t.(type) {
	case *Appl:
		if lam, ok := t.Left.(*Lam); ok {
			return r.subst(lam.Body, lam.Param, t.Right), true
		}
		if left, ok := r.step(t.Left); ok {
			return &Appl{Left: left, Right: t.Right}, true
		}
		if right, ok := r.step(t.Right); ok {
			return &Appl{Left: t.Left, Right: right}, true
		}
	case *Lam:
		if body, ok := r.step(t.Body); ok {
			return &Lam{Param: t.Param, Body: body}, true
		}
	}
	return t, false
}

// subst returns t with repl substituted for free occurrences of name:
//
//	[s/x] x           = s
//	[s/x] y           = y
//	[s/x] (t1 t2)     = ([s/x] t1) ([s/x] t2)
//	[s/x] (fn x => t) = fn x => t
//	[s/x] (fn y => t) = fn y => [s/x] t          if y not free in s
//	[s/x] (fn y => t) = fn z => [s/x] ([z/y] t)  for fresh z, otherwise
func (r *reducer) subst(t Term, name string, repl Term) Term {
	if !r.freeIn(t, name) {
		return t
	}
	switch t := t.(type) {
	case *Var:
		// name is free in t, so this is the variable being replaced.
		return repl

	case *Appl:
		return &Appl{
			Left:  r.subst(t.Left, name, repl),
			Right: r.subst(t.Right, name, repl),
		}

	case *Lam:
		// name is free in t, so t.Param != name.
		if !r.freeIn(repl, t.Param) {
			return &Lam{Param: t.Param, Body: r.subst(t.Body, name, repl)}
		}
		// Capture risk: t.Param is free in repl. Rename the binder to a name
		// free nowhere it matters, then substitute into the renamed body.
		avoid := make(varSet)
		for n := range r.freeSet(repl) {
			avoid[n] = struct{}{}
		}
		for n := range r.freeSet(t.Body) {
			avoid[n] = struct{}{}
		}
		avoid[name] = struct{}{}
		z := r.fresh.fresh(t.Param, avoid)
		body := r.subst(t.Body, t.Param, &Var{Name: z})
		return &Lam{Param: z, Body: r.subst(body, name, repl)}
	}
	panic("unreachable")
}
