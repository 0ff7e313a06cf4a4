// fresh.go — fresh-name generation for capture-avoiding substitution.
package m3lc

import (
	"strconv"
	"strings"
)

// freshNames hands out identifiers guaranteed not to occur in a caller-
// supplied avoid set. One instance belongs to one reduction run; nothing here
// is global, so concurrent reductions cannot interfere with each other.
//
// Generated names have the form "base.N". The lexer rejects '.' inside
// identifiers, so a generated name can never collide with a source name; the
// avoid-set probe exists to skip names generated by earlier steps of the same
// run, and any dotted names present in hand-built terms. The counter
// is monotonic per base name, so repeated calls do not rescan from zero.
type freshNames struct {
	next map[string]int
}

func newFreshNames() *freshNames {
	return &freshNames{next: make(map[string]int)}
}

// fresh returns a name based on base that is not in avoid. If base is itself
// a generated name, its suffix is stripped first so renames do not pile up
// as "x.1.4.9".
func (f *freshNames) fresh(base string, avoid varSet) string {
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	n := f.next[base]
	for {
		candidate := base + "." + strconv.Itoa(n)
		n++
		if !avoid.has(candidate) {
			f.next[base] = n
			return candidate
		}
	}
}
