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

// Package align computes the alignment between two taxonomic checklists: a
// best-justified articulation for every record of each, derived from name
// and identifier matches, a mutually-unique name-matched fringe, cross-MRCA
// topology analysis, and badness-ranked pruning.
//
// The entry point is an Aligner holding both checklists and every memo the
// analysis produces.  All state is confined to the Aligner; two aligners
// never share mutable data.
package align

import (
	"io"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Prashantguptanz/cldiff/pkg/checklist"
)

// An Aligner aligns checklist A (lower priority) with checklist B (higher
// priority).  It is single-threaded: the analysis is a set of deterministic
// in-memory tree walks whose memo tables are filled in strict post-order.
type Aligner struct {
	A, B *checklist.Checklist

	// ShareIDs declares that the two checklists draw their local
	// identifiers from the same identifier space, enabling id= matches.
	ShareIDs bool

	warn     io.Writer
	statuses StatusTable
	shared   checklist.Mask

	fringe       map[checklist.Node]bool
	idMatchCount int

	crossMRCAs map[checklist.Node]checklist.Node

	nameBased map[checklist.Node][]*Articulation
	best      map[checklist.Node]*Articulation
	ambiguous map[checklist.Node][]*Articulation

	diffs *lru.Cache[diffKey, checklist.Comparison]

	analyzed bool
}

type diffKey struct {
	dom, cod checklist.Node
}

// diffCacheSize bounds the property-diff cache.  Diffs are pure functions
// of their endpoints, so eviction affects cost only, never results.
const diffCacheSize = 1 << 15

// New returns an aligner over the two checklists with the default
// synonym-status table.  Warnings go to standard error until redirected
// with SetWarnings.
func New(a, b *checklist.Checklist) *Aligner {
	diffs, err := lru.New[diffKey, checklist.Comparison](diffCacheSize)
	if err != nil {
		panic(err)
	}
	return &Aligner{
		A:          a,
		B:          b,
		warn:       os.Stderr,
		statuses:   DefaultStatuses(),
		shared:     checklist.SharedColumns(a, b),
		fringe:     map[checklist.Node]bool{},
		crossMRCAs: map[checklist.Node]checklist.Node{},
		nameBased:  map[checklist.Node][]*Articulation{},
		best:       map[checklist.Node]*Articulation{},
		ambiguous:  map[checklist.Node][]*Articulation{},
		diffs:      diffs,
	}
}

// SetWarnings redirects alignment warnings to w.
func (a *Aligner) SetWarnings(w io.Writer) { a.warn = w }

// SetStatuses replaces the synonym-status table.
func (a *Aligner) SetStatuses(t StatusTable) { a.statuses = t }

// other returns the checklist opposite the one n belongs to.
func (a *Aligner) other(n checklist.Node) *checklist.Checklist {
	if n.In == a.A {
		return a.B
	}
	return a.A
}

// differences computes (or recalls) the property diff between two accepted
// records over the columns the two checklists share.
func (a *Aligner) differences(dom, cod checklist.Node) checklist.Comparison {
	key := diffKey{dom, cod}
	if d, ok := a.diffs.Get(key); ok {
		return d
	}
	d := checklist.Differences(dom, cod, a.shared)
	a.diffs.Add(key, d)
	return d
}

// SharedColumns returns the columns both checklists carry, over which
// records are compared.
func (a *Aligner) SharedColumns() checklist.Mask { return a.shared }

// IDMatchCount returns the number of fringe matches whose two records carry
// the same local identifier.  Both walk directions count, so a fully
// id-stable pair of checklists counts every match twice.
func (a *Aligner) IDMatchCount() int { return a.idMatchCount }

// Analyze runs the full pipeline: fringe analysis on both sides, cross-MRCA
// analysis on both sides, then best-match assignment on both sides.  It is
// idempotent.
func (a *Aligner) Analyze() {
	if a.analyzed {
		return
	}
	a.analyzed = true
	a.analyzeFringe(a.A, a.B)
	a.analyzeFringe(a.B, a.A)
	a.analyzeTopology(a.A, a.B)
	a.analyzeTopology(a.B, a.A)
	a.assignMatches(a.A, a.B)
	a.assignMatches(a.B, a.A)
}

// Alignment returns the one-best articulation for every record that has
// one, on both sides.
func (a *Aligner) Alignment() map[checklist.Node]*Articulation {
	a.Analyze()
	out := make(map[checklist.Node]*Articulation, len(a.best))
	for n, ar := range a.best {
		if ar != nil {
			out[n] = ar
		}
	}
	return out
}

// Ambiguous returns the records whose least-bad candidates tied on every
// criterion, with the tied candidates.  These records get no alignment
// edge; the tie is reported, never broken arbitrarily.
func (a *Aligner) Ambiguous() map[checklist.Node][]*Articulation {
	a.Analyze()
	return a.ambiguous
}
