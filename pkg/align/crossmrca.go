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

// The cross-MRCA of a record is the MRCA, on the other side, of the fringe
// images of its descendants.  Fringe-matched records map straight to their
// image and are not tabled; internal records above the fringe get an entry
// computed by post-order recursion.  Unmatched subtrees contribute nothing.

// analyzeTopology fills the cross-MRCA table for here's records.
func (a *Aligner) analyzeTopology(here, other *checklist.Checklist) {
	var sub func(n checklist.Node) checklist.Node
	sub = func(n checklist.Node) checklist.Node {
		if m := a.mutualFringeMatch(n, other); m != nil {
			return m.Cod
		}
		var mrca checklist.Node
		for _, inf := range n.Inferiors() {
			if image := sub(inf); !image.IsZero() {
				mrca = checklist.MRCA(mrca, image)
			}
		}
		if mrca.IsForest() {
			// Images straddle the other side's roots: no single
			// counterpart exists.
			return checklist.Node{}
		}
		if !mrca.IsZero() {
			a.crossMRCAs[n] = mrca
		}
		return mrca
	}
	for _, root := range here.Roots() {
		sub(root)
	}
}

// CrossMRCA returns the tabled cross-MRCA of an internal record, or the
// zero Node.
func (a *Aligner) CrossMRCA(n checklist.Node) checklist.Node {
	a.Analyze()
	return a.crossMRCAs[n]
}

// crossMRCAOrFringe returns n's fringe image when n is mutually
// fringe-matched, else its tabled cross-MRCA, else the zero Node.
func (a *Aligner) crossMRCAOrFringe(n checklist.Node, other *checklist.Checklist) checklist.Node {
	if m := a.mutualFringeMatch(n, other); m != nil {
		return m.Cod
	}
	return a.crossMRCAs[n]
}
