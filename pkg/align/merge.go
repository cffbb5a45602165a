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
	"sort"

	"github.com/Prashantguptanz/cldiff/pkg/checklist"
	"github.com/Prashantguptanz/cldiff/pkg/rcc5"
)

// A MergedNode weaves one record from each side into a node of the merged
// forest.  Either side may be absent: X-only nodes were removed by the
// higher-priority checklist, Y-only nodes were added by it.
type MergedNode struct {
	X checklist.Node // record in A, possibly zero
	Y checklist.Node // record in B, possibly zero
}

// SortKey orders merged siblings deterministically: by the sequence number
// of the B constituent when present, else of the A constituent, with
// B-defined nodes after A-only nodes at equal positions.
func (m MergedNode) SortKey() (int, int) {
	if !m.Y.IsZero() {
		return m.Y.Sequence(), 1
	}
	return m.X.Sequence(), 0
}

// Merge weaves the two checklists into one forest of merged nodes.  An A
// record and a B record fuse into one node when each is the other's best
// match under an equality; every other accepted record stands alone.  A
// node's parent comes from the B side when B defines one, else from the A
// side.  Returns the parent map and the roots, roots ordered by SortKey.
func (a *Aligner) Merge() (map[MergedNode]MergedNode, []MergedNode) {
	a.Analyze()

	pairXtoY := map[checklist.Node]checklist.Node{}
	pairYtoX := map[checklist.Node]checklist.Node{}
	for _, x := range a.A.All() {
		if !x.IsAccepted() {
			continue
		}
		ar := a.best[x]
		if ar == nil || !rcc5.IsVariant(ar.Relation, rcc5.Eq) {
			continue
		}
		back := a.best[ar.Cod]
		if back == nil || back.Cod != x || !rcc5.IsVariant(back.Relation, rcc5.Eq) {
			continue
		}
		pairXtoY[x] = ar.Cod
		pairYtoX[ar.Cod] = x
	}

	mergedOfA := func(x checklist.Node) MergedNode {
		return MergedNode{X: x, Y: pairXtoY[x]}
	}
	mergedOfB := func(y checklist.Node) MergedNode {
		return MergedNode{X: pairYtoX[y], Y: y}
	}

	var nodes []MergedNode
	for _, x := range a.A.All() {
		if x.IsAccepted() {
			nodes = append(nodes, mergedOfA(x))
		}
	}
	for _, y := range a.B.All() {
		if y.IsAccepted() && pairYtoX[y].IsZero() {
			nodes = append(nodes, mergedOfB(y))
		}
	}

	parents := map[MergedNode]MergedNode{}
	var roots []MergedNode
	for _, m := range nodes {
		switch {
		case !m.Y.IsZero() && !m.Y.Parent().IsForest():
			parents[m] = mergedOfB(m.Y.Parent())
		case !m.X.IsZero() && !m.X.Parent().IsForest():
			parents[m] = mergedOfA(m.X.Parent())
		default:
			roots = append(roots, m)
		}
	}
	sort.Slice(roots, func(i, j int) bool {
		si, ti := roots[i].SortKey()
		sj, tj := roots[j].SortKey()
		if si != sj {
			return si < sj
		}
		return ti < tj
	})
	return parents, roots
}

// Children inverts a parent map into ordered child lists.
func Children(parents map[MergedNode]MergedNode) map[MergedNode][]MergedNode {
	children := map[MergedNode][]MergedNode{}
	for child, parent := range parents {
		children[parent] = append(children[parent], child)
	}
	for _, kids := range children {
		sort.Slice(kids, func(i, j int) bool {
			si, ti := kids[i].SortKey()
			sj, tj := kids[j].SortKey()
			if si != sj {
				return si < sj
			}
			return ti < tj
		})
	}
	return children
}
