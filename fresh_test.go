// fresh_test.go
package m3lc

import (
	"strings"
	"testing"
)

func Test_Fresh_Names_Are_Unique(t *testing.T) {
	f := newFreshNames()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		name := f.fresh("foo", nil)
		if seen[name] {
			t.Fatalf("duplicate name %q", name)
		}
		seen[name] = true
	}
}

func Test_Fresh_Mixed_Bases_Are_Unique(t *testing.T) {
	f := newFreshNames()
	bases := []string{"hello", "goodbye", "foo", "bar", "foo", "goodbye", "World", "x", "y", "foo", "foo_world"}
	seen := make(map[string]bool)
	for _, base := range bases {
		name := f.fresh(base, nil)
		if seen[name] {
			t.Fatalf("duplicate name %q", name)
		}
		seen[name] = true
	}
}

func Test_Fresh_Probes_The_Avoid_Set(t *testing.T) {
	f := newFreshNames()
	avoid := varSet{"x.0": {}, "x.1": {}}
	if got := f.fresh("x", avoid); got != "x.2" {
		t.Fatalf("got %q, want %q", got, "x.2")
	}
	// The counter keeps advancing; no rescan from zero.
	if got := f.fresh("x", avoid); got != "x.3" {
		t.Fatalf("got %q, want %q", got, "x.3")
	}
}

func Test_Fresh_Strips_Generated_Suffixes(t *testing.T) {
	f := newFreshNames()
	got := f.fresh("y.9", nil)
	if got != "y.0" {
		t.Fatalf("got %q, want %q", got, "y.0")
	}
	if strings.Count(got, ".") != 1 {
		t.Fatalf("suffixes must not pile up: %q", got)
	}
}

func Test_Fresh_Names_Are_Not_Lexable(t *testing.T) {
	// The whole scheme rests on generated names being impossible to write in
	// source: '.' must stay an illegal identifier character.
	f := newFreshNames()
	name := f.fresh("x", nil)
	if _, err := NewLexer(name).Scan(); err == nil {
		t.Fatalf("generated name %q lexed as valid source", name)
	}
}
