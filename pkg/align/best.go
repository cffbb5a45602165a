// Copyright 2020 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package align

import (
	"fmt"
	"sort"

	"github.com/Prashantguptanz/cldiff/pkg/checklist"
)

// Best returns the single best articulation for n into the other checklist,
// or nil when n has none or its least-bad candidates tie.  Memoized.
func (a *Aligner) Best(n checklist.Node) *Articulation {
	a.Analyze()
	return a.bestMatch(n, a.other(n))
}

func (a *Aligner) bestMatch(n checklist.Node, other *checklist.Checklist) *Articulation {
	if ar, ok := a.best[n]; ok {
		return ar
	}
	winner, ties := a.chooseLeastBad(a.goodMatches(n, other))
	if winner == nil && len(ties) > 1 {
		a.ambiguous[n] = ties
	}
	a.best[n] = winner
	return winner
}

// assignMatches fills the best-match cache for every accepted record of
// here, in post-order.
func (a *Aligner) assignMatches(here, other *checklist.Checklist) {
	var process func(n checklist.Node)
	process = func(n checklist.Node) {
		for _, child := range n.Children() {
			process(child)
		}
		a.bestMatch(n, other)
	}
	for _, root := range here.Roots() {
		process(root)
	}
}

// goodMatches unions n's topological and name-based candidates, upgrades
// topological candidates that name evidence corroborates, resolves synonym
// codomains to their accepted records, and prunes to one candidate per
// codomain.
func (a *Aligner) goodMatches(n checklist.Node, other *checklist.Checklist) []*Articulation {
	topos := a.topologicalMatches(n, other)
	nameys := a.nameBasedMatches(n, other)
	matches := make([]*Articulation, 0, len(topos)+len(nameys))
	for _, topo := range topos {
		matches = append(matches, a.scoreTopoMatch(topo, nameys))
	}
	matches = append(matches, nameys...)
	for i, m := range matches {
		matches[i] = a.toAcceptedMatch(m)
	}
	return pruneMatches(matches)
}

// scoreTopoMatch upgrades a topological candidate to fringe=+name= when a
// name-based candidate reaches the same codomain: agreement of the two
// kinds of evidence is strictly stronger than either.
func (a *Aligner) scoreTopoMatch(match *Articulation, nameys []*Articulation) *Articulation {
	for _, namey := range nameys {
		if namey.Cod == match.Cod {
			return a.newArticulation(match.Dom, match.Cod, relFringeAndName, nil, namey.Reason)
		}
	}
	return match
}

// nameBasedMatches returns n's candidates justified by names and synonyms:
// synonym-or-self, then a direct match, then accepted-of if the codomain is
// a synonym.  Memoized.
func (a *Aligner) nameBasedMatches(n checklist.Node, other *checklist.Checklist) []*Articulation {
	if m, ok := a.nameBased[n]; ok {
		return m
	}
	var matches []*Articulation
	for _, from := range a.fromAcceptedArticulations(n) {
		for _, direct := range a.directMatches(from.Cod, other) {
			matches = append(matches, a.toAcceptedMatch(a.Compose(from, direct)))
		}
	}
	matches = pruneMatches(matches)
	a.nameBased[n] = matches
	return matches
}

// toAcceptedMatch extends a match whose codomain is a synonym with the
// synonym's accepted articulation.
func (a *Aligner) toAcceptedMatch(m *Articulation) *Articulation {
	if m.Cod.IsSynonym() {
		if acc := m.Cod.Accepted(); !acc.IsZero() {
			return a.Compose(m, a.Synonymy(m.Cod, acc))
		}
	}
	return m
}

// fromAcceptedArticulations returns the identity on n plus an edge to each
// of n's synonyms.
func (a *Aligner) fromAcceptedArticulations(n checklist.Node) []*Articulation {
	out := []*Articulation{a.Identity(n)}
	return append(out, a.synonymArticulations(n)...)
}

func (a *Aligner) synonymArticulations(n checklist.Node) []*Articulation {
	if n.IsSynonym() {
		return nil
	}
	var out []*Articulation
	for _, syn := range n.Synonyms() {
		out = append(out, a.Reverse(a.Synonymy(syn, n)))
	}
	return pruneMatches(out)
}

// pruneMatches reduces a candidate set so all codomains are distinct,
// keeping the lowest-badness articulation for each.
func pruneMatches(arts []*Articulation) []*Articulation {
	if len(arts) <= 1 {
		return arts
	}
	sorted := make([]*Articulation, len(arts))
	copy(sorted, arts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Relation.Badness < sorted[j].Relation.Badness
	})
	seen := map[checklist.Node]bool{}
	kept := sorted[:0]
	for _, ar := range sorted {
		if !seen[ar.Cod] {
			seen[ar.Cod] = true
			kept = append(kept, ar)
		}
	}
	return kept
}

// pruneKey is the full tie-breaking key: badness, codomain rank level,
// number of factors, then property-diff weight.
type pruneKey struct {
	badness int
	mutex   int
	factors int
	changed checklist.Mask
	dropped checklist.Mask
}

func keyOf(ar *Articulation) pruneKey {
	return pruneKey{
		badness: ar.Relation.Badness,
		mutex:   ar.Cod.Mutex(),
		factors: ar.factorCount(),
		changed: ar.Diff.Changed,
		dropped: ar.Diff.Dropped,
	}
}

func (k pruneKey) less(o pruneKey) bool {
	switch {
	case k.badness != o.badness:
		return k.badness < o.badness
	case k.mutex != o.mutex:
		return k.mutex < o.mutex
	case k.factors != o.factors:
		return k.factors < o.factors
	case k.changed != o.changed:
		return k.changed < o.changed
	}
	return k.dropped < o.dropped
}

// pruneFurther keeps every candidate tied for the minimal tie-breaking key.
func pruneFurther(arts []*Articulation) []*Articulation {
	if len(arts) == 0 {
		return nil
	}
	sorted := make([]*Articulation, len(arts))
	copy(sorted, arts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return keyOf(sorted[i]).less(keyOf(sorted[j]))
	})
	key := keyOf(sorted[0])
	out := []*Articulation{sorted[0]}
	for _, ar := range sorted[1:] {
		if keyOf(ar) != key {
			break
		}
		out = append(out, ar)
	}
	return out
}

// chooseLeastBad picks the single least-bad candidate.  When several tie on
// every criterion it refuses to choose: the ties are returned for the
// caller to record, and no winner is reported.
func (a *Aligner) chooseLeastBad(arts []*Articulation) (*Articulation, []*Articulation) {
	besties := pruneFurther(arts)
	switch len(besties) {
	case 0:
		return nil, nil
	case 1:
		return besties[0], nil
	}
	cods := make([]string, len(besties))
	for i, ar := range besties {
		cods[i] = ar.Cod.Unique()
	}
	fmt.Fprintf(a.warn, "** Multiple least-bad matches: %s -> %v\n",
		besties[0].Dom.Unique(), cods)
	return nil, besties
}

// ParentChanged reports whether the domain's parent fails to align with the
// codomain's parent.  The parent is resolved through best-match rather than
// the final alignment, which can flag a move when the parents are mutually
// unaligned.
func (a *Aligner) ParentChanged(ar *Articulation) bool {
	parent := ar.Dom.Parent()
	coparent := ar.Cod.Parent()
	if parent.IsForest() && coparent.IsForest() {
		return false
	}
	if parent.IsForest() || coparent.IsForest() {
		return true
	}
	m := a.Best(parent)
	if m == nil {
		return true
	}
	return m.Cod != coparent
}
