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

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/Prashantguptanz/cldiff/pkg/align"
	"github.com/Prashantguptanz/cldiff/pkg/checklist"
	"github.com/Prashantguptanz/cldiff/pkg/rcc5"
)

func init() {
	register(&formatter{
		name: "ad-hoc",
		f:    doReport,
		help: "hierarchical CSV difference report over the merged forest",
	})
}

func doReport(w io.Writer, a *align.Aligner) error {
	al := a.Alignment()
	parents, roots := a.Merge()
	children := align.Children(parents)
	changed := findChangedSubtrees(a, roots, children)

	cw := csv.NewWriter(w)
	cw.Write([]string{"indent", "operation", "dom", "dom id", "relation",
		"cod id", "cod", "unchanged", "changed_props", "reason"})

	var process func(m align.MergedNode, indent string)
	process = func(m align.MergedNode, indent string) {
		x, y := m.X, m.Y
		kids := children[m]
		var op, re, props, reason string
		switch {
		case !x.IsZero() && !y.IsZero():
			ar := al[x]
			op = keepTag(a, ar, x, y)
			if d := checklist.Differences(x, y, a.SharedColumns()); !d.Same() {
				var names []string
				for _, mask := range []checklist.Mask{d.Dropped, d.Changed, d.Added} {
					for _, p := range mask.Properties() {
						names = append(names, p.Name)
					}
				}
				props = strings.Join(names, "; ")
			}
			if ar != nil {
				reason = ar.Reason
			}
		case !x.IsZero():
			op = "DELETE"
			if ar := al[x]; ar != nil {
				re = ar.Relation.Name
				y = ar.Cod // usually an equivalence, but not always
				reason = ar.Reason
				switch {
				case rcc5.IsVariant(ar.Relation, rcc5.Eq):
					op += " (merge)"
				case rcc5.IsVariant(ar.Relation, rcc5.Conflict):
					op += " (conflict)"
				case rcc5.IsVariant(ar.Relation, rcc5.Lt):
					op += " (loss of resolution)"
				}
			} else if ties := a.Ambiguous()[x]; len(ties) > 0 {
				op = "MULTIPLE"
				re = "?"
				reason = fmt.Sprintf("%d %srecords match", len(ties), a.B.Prefix)
			}
		default:
			op = "ADD"
			if ar := al[y]; ar != nil {
				re = ar.Relation.RevName
				x = ar.Cod
				reason = ar.Reason
				switch {
				case rcc5.IsVariant(ar.Relation, rcc5.Eq):
					op += " (split)"
				case rcc5.IsVariant(ar.Relation, rcc5.Conflict):
					op += " (reorganization)"
				case rcc5.IsVariant(ar.Relation, rcc5.Lt):
					op += " (increased resolution)"
				}
			}
		}

		var unchanged string
		if !changed[m] && len(kids) > 0 {
			unchanged = "subtree="
		}

		var ux, ix, uy, iy string
		if !x.IsZero() {
			ux = x.Unique()
			ix = x.TaxonID()
		}
		if !y.IsZero() {
			uy = y.Unique()
			iy = y.TaxonID()
		}
		cw.Write([]string{indent, op, ux, ix, re, iy, uy, unchanged, props, reason})

		if changed[m] {
			for _, child := range kids {
				process(child, indent+"__")
			}
		}
	}
	for _, root := range roots {
		process(root, "")
	}
	cw.Flush()
	return cw.Error()
}

// keepTag qualifies a KEEP row: moved under a new parent, renamed, or
// carrying a changed identifier in an otherwise id-stable pair of
// checklists.
func keepTag(a *align.Aligner, ar *align.Articulation, x, y checklist.Node) string {
	switch {
	case ar == nil:
		return "KEEP"
	case a.ParentChanged(ar):
		return "KEEP (move)"
	case x.Name() != y.Name():
		return "KEEP (rename)"
	case x.TaxonID() != y.TaxonID() && a.IDMatchCount()*2 >= x.In.Len():
		return "KEEP (change id)"
	}
	return "KEEP"
}

// findChangedSubtrees marks the merged nodes somewhere below which a real
// difference exists.  Subtrees with no change anywhere are reported as a
// single row.
func findChangedSubtrees(a *align.Aligner, roots []align.MergedNode, children map[align.MergedNode][]align.MergedNode) map[align.MergedNode]bool {
	status := map[align.MergedNode]bool{}
	var process func(m align.MergedNode) bool
	process = func(m align.MergedNode) bool {
		nodeChanged := m.X.IsZero() || m.Y.IsZero()
		if !nodeChanged {
			nodeChanged = !checklist.Differences(m.X, m.Y, a.SharedColumns()).Same()
		}
		descendantChanged := false
		for _, child := range children[m] {
			if process(child) {
				descendantChanged = true
			}
		}
		status[m] = descendantChanged
		return descendantChanged || nodeChanged
	}
	for _, root := range roots {
		status[root] = process(root)
	}
	return status
}
