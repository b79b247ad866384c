// Package export implements the mission snapshot pipeline: per-type
// identifier resolution, row assembly, and the dependency-ordered
// orchestration that emits one batch per entity type.
package export

import "sort"

// idSet is a deduplicated set of primary keys for one entity type. Adding an
// identifier twice, whether from one edge or from two, keeps one member.
type idSet map[string]struct{}

func newIDSet(ids ...string) idSet {
	s := make(idSet, len(ids))
	s.add(ids...)
	return s
}

func (s idSet) add(ids ...string) {
	for _, id := range ids {
		if id != "" {
			s[id] = struct{}{}
		}
	}
}

// sorted returns the members in lexical order, so that membership queries
// and therefore whole exports are reproducible for the same data.
func (s idSet) sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
