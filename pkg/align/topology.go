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
	"github.com/Prashantguptanz/cldiff/pkg/checklist"
	"github.com/Prashantguptanz/cldiff/pkg/rcc5"
)

// Topological variants.  Topology bests every name-based variant, and the
// combination of both bests either alone.
var (
	relFringeAndName  = rcc5.Variant(rcc5.Eq, 9, "fringe=+name=", "")
	relFringeEq       = rcc5.Variant(rcc5.Eq, 10, "fringe=", "")
	relFringeLt       = rcc5.Variant(rcc5.Lt, 11, "fringe<", "fringe>")
	relFringeConflict = rcc5.Variant(rcc5.Conflict, 12, "fringe-conflict", "")
	relFringeDisjoint = rcc5.Variant(rcc5.Disjoint, 13, "fringe-disjoint", "")
)

// compareFringes classifies the bridge from n to its cross-MRCA: equal,
// proper part, conflict, or disjoint.  Fringe records bridge directly to
// their fringe match.  Returns nil when n has no cross-MRCA at all.
func (a *Aligner) compareFringes(n checklist.Node, other *checklist.Checklist) *Articulation {
	if m := a.bestFringeMatch(n, other); m != nil {
		return m
	}
	partner := a.crossMRCAs[n]
	if partner.IsZero() {
		return nil
	}
	here := n.In
	back := a.crossMRCAOrFringe(partner, here)
	var re *rcc5.Relation
	switch {
	case back.IsZero(), checklist.AreDisjoint(n, back):
		re = relFringeDisjoint
	default:
		if checklist.MRCA(n, back) == n {
			re = relFringeEq
		} else {
			re = relFringeLt
		}
		// A mixed sub-branch of the partner — one whose evidence
		// reaches outside n yet still overlaps it — means the two
		// classifications cut across each other.
		for _, sub := range partner.Inferiors() {
			b := a.crossMRCAOrFringe(sub, here)
			if b.IsZero() {
				continue
			}
			if checklist.MRCA(n, b) != n && !a.crossDisjoint(n, sub) {
				re = relFringeConflict
				break
			}
		}
	}
	return a.Bridge(n, partner, re, "")
}

// crossDisjoint reports whether every back-image in partner's subtree is
// disjoint from n.  A fringe match is concrete leaf evidence; an internal
// cross-MRCA may blur disjoint images into an overlapping ancestor, so an
// overlapping MRCA forces a look at the branches below it.
func (a *Aligner) crossDisjoint(n, partner checklist.Node) bool {
	if m := a.mutualFringeMatch(partner, n.In); m != nil {
		return checklist.AreDisjoint(n, m.Cod)
	}
	back := a.crossMRCAs[partner]
	if back.IsZero() {
		return true
	}
	if checklist.AreDisjoint(n, back) {
		return true
	}
	for _, inf := range partner.Inferiors() {
		if !a.crossDisjoint(n, inf) {
			return false
		}
	}
	return true
}

// topologicalMatches returns n's topological candidates: the cross-MRCA
// bridge and, when it is an equality, the monotypic chain above it — every
// ancestor of the codomain whose cross-MRCA is still n.  The chain is
// returned topmost first so later tie-breaking prefers the most rootward
// codomain.
func (a *Aligner) topologicalMatches(n checklist.Node, other *checklist.Checklist) []*Articulation {
	match := a.compareFringes(n, other)
	if match == nil {
		return nil
	}
	matches := []*Articulation{match}
	if rcc5.IsVariant(match.Relation, rcc5.Eq) {
		scan := match.Cod
		for {
			scan = scan.Superior()
			if scan.IsZero() || scan.IsForest() {
				break
			}
			if a.crossMRCAs[scan] != n {
				break
			}
			matches = append(matches, a.Bridge(n, scan, relFringeEq, ""))
		}
	}
	for i, j := 0, len(matches)-1; i < j; i, j = i+1, j-1 {
		matches[i], matches[j] = matches[j], matches[i]
	}
	return matches
}
