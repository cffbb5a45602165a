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

import "github.com/Prashantguptanz/cldiff/pkg/checklist"

// The fringe is the mutually-unique name-matched frontier between the two
// checklists.  A record is on its side's fringe when none of its inferiors
// is, and it has exactly one direct match on the other side.  Records with
// several direct matches are excluded deliberately: their ambiguity
// propagates upward rather than down into the fringe.

// analyzeFringe runs the one-sided fringe walk over here against other.
func (a *Aligner) analyzeFringe(here, other *checklist.Checklist) {
	var sub func(n checklist.Node) bool
	sub = func(n checklist.Node) bool {
		found := false
		for _, inf := range n.Inferiors() {
			if sub(inf) {
				found = true
			}
		}
		if found {
			return true
		}
		partners := a.directMatches(n, other)
		if len(partners) != 1 {
			return false
		}
		a.fringe[n] = true
		if n.TaxonID() == partners[0].Cod.TaxonID() {
			a.idMatchCount++
		}
		return true
	}
	for _, root := range here.Roots() {
		sub(root)
	}
}

// IsFringe reports whether n is on its checklist's fringe.
func (a *Aligner) IsFringe(n checklist.Node) bool { return a.fringe[n] }

// directFringeMatches returns n's direct matches whose codomain is itself
// on the fringe; empty unless n is on the fringe.
func (a *Aligner) directFringeMatches(n checklist.Node, other *checklist.Checklist) []*Articulation {
	if !a.fringe[n] {
		return nil
	}
	var out []*Articulation
	for _, m := range a.directMatches(n, other) {
		if a.fringe[m.Cod] {
			out = append(out, m)
		}
	}
	return out
}

// bestFringeMatch returns n's single best fringe-to-fringe match, or nil.
func (a *Aligner) bestFringeMatch(n checklist.Node, other *checklist.Checklist) *Articulation {
	if !a.fringe[n] {
		return nil
	}
	winner, _ := a.chooseLeastBad(a.directFringeMatches(n, other))
	return winner
}

// mutualFringeMatch returns n's fringe match when the codomain's own best
// fringe match points back at n, and nil otherwise.
func (a *Aligner) mutualFringeMatch(n checklist.Node, other *checklist.Checklist) *Articulation {
	m := a.bestFringeMatch(n, other)
	if m == nil {
		return nil
	}
	back := a.bestFringeMatch(m.Cod, n.In)
	if back == nil || back.Cod != n {
		return nil
	}
	return m
}
