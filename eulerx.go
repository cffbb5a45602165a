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
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Prashantguptanz/cldiff/pkg/align"
	"github.com/Prashantguptanz/cldiff/pkg/checklist"
)

func init() {
	register(&formatter{
		name: "eulerx",
		f:    doEulerX,
		help: "Euler/X taxonomies and articulations",
	})
}

func doEulerX(w io.Writer, a *align.Aligner) error {
	if err := dumpTaxonomy(w, a.A); err != nil {
		return err
	}
	if err := dumpTaxonomy(w, a.B); err != nil {
		return err
	}
	return dumpArticulations(w, a)
}

// dumpTaxonomy writes one checklist as nested (parent child ...) lines.
// Container pseudo-nodes are skipped; their children print under them.
func dumpTaxonomy(w io.Writer, c *checklist.Checklist) error {
	tag := strings.TrimSuffix(c.Prefix, ".")
	if _, err := fmt.Fprintf(w, "taxonomy %s %s\n", tag, strings.ReplaceAll(c.Name, " ", "_")); err != nil {
		return err
	}
	var process func(n checklist.Node) error
	process = func(n checklist.Node) error {
		children := n.Children()
		if len(children) == 0 {
			return nil
		}
		if !n.IsContainer() {
			if _, err := fmt.Fprintf(w, "(%s", n.Spaceless()); err != nil {
				return err
			}
			for _, child := range children {
				if _, err := fmt.Fprintf(w, " %s", child.Spaceless()); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w, ")"); err != nil {
				return err
			}
		}
		for _, child := range children {
			if err := process(child); err != nil {
				return err
			}
		}
		return nil
	}
	for _, root := range c.Roots() {
		if err := process(root); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// dumpArticulations writes one [X.a REL Y.b] line per alignment edge,
// mutual pairs de-duplicated to their A-side edge, ordered by the sequence
// numbers of the endpoints.
func dumpArticulations(w io.Writer, a *align.Aligner) error {
	al := a.Alignment()

	mutual := func(ar *align.Articulation) bool {
		rev := al[ar.Cod]
		return rev != nil && rev.Cod == ar.Dom
	}

	var arts []*align.Articulation
	for _, n := range a.A.All() {
		if ar := al[n]; ar != nil {
			arts = append(arts, ar)
		}
	}
	for _, n := range a.B.All() {
		if ar := al[n]; ar != nil && !mutual(ar) {
			arts = append(arts, ar)
		}
	}

	key := func(ar *align.Articulation) (int, int) {
		if ar.Dom.In == a.A {
			return ar.Dom.Sequence(), ar.Cod.Sequence()
		}
		return ar.Cod.Sequence(), ar.Dom.Sequence()
	}
	sort.SliceStable(arts, func(i, j int) bool {
		pi, si := key(arts[i])
		pj, sj := key(arts[j])
		if pi != pj {
			return pi < pj
		}
		return si < sj
	})

	leftTag := strings.TrimSuffix(a.A.Prefix, ".")
	rightTag := strings.TrimSuffix(a.B.Prefix, ".")
	if _, err := fmt.Fprintf(w, "articulation %s-%s %s-%s\n",
		leftTag, rightTag,
		strings.ReplaceAll(a.A.Name, " ", "_"),
		strings.ReplaceAll(a.B.Name, " ", "_")); err != nil {
		return err
	}
	for _, ar := range arts {
		if _, err := fmt.Fprintf(w, "[%s %s %s]\n",
			ar.Dom.Unique(), ar.Relation.Atom.Symbol(), ar.Cod.Unique()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
