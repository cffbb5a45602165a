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

// Package checklist holds an in-memory taxonomic checklist: a forest of
// taxon records (TNUs) with parent, child, accepted and synonym links,
// per-column hash indices, deterministic sequence numbers, and integer rank
// levels (mutexes) used by the hierarchy analyzers.
//
// Records are addressed by small numeric ids into a per-checklist arena.
// Id 0 is reserved for the forest sentinel that sits above all roots.
package checklist

import (
	"fmt"
	"io"
	"os"
)

// An ID addresses one record within its checklist.  0 is the forest
// sentinel, valid records start at 1.
type ID int32

// Forest is the sentinel id above all roots of a checklist.
const Forest ID = 0

// A Checklist is one classification: an ordered collection of taxon records
// read from a single source, with indices over every recognized column.
type Checklist struct {
	Prefix string // short display prefix, e.g. "A."
	Name   string // description of the source

	warn io.Writer // destination for structural-anomaly warnings

	columns []*Property
	colPos  map[*Property]int
	rows    [][]string // rows[0] is the forest sentinel and stays nil

	indexes  map[*Property]map[string][]ID
	sequence []int
	mutexes  []int
	roots    []ID
}

// New returns an empty checklist with the given display prefix.  Records are
// added by the readers in this package; warnings go to standard error until
// redirected with SetWarnings.
func New(prefix, name string) *Checklist {
	if prefix == "" {
		panic("checklist: empty prefix")
	}
	return &Checklist{
		Prefix: prefix,
		Name:   name,
		warn:   os.Stderr,
		colPos: map[*Property]int{},
		rows:   [][]string{nil},
	}
}

// SetWarnings redirects structural-anomaly warnings (rank demotions and
// promotions) to w.
func (c *Checklist) SetWarnings(w io.Writer) { c.warn = w }

// setColumns fixes the column layout for subsequently added rows.
func (c *Checklist) setColumns(cols []*Property) {
	c.columns = cols
	for i, p := range cols {
		c.colPos[p] = i
	}
}

// addRow appends one record whose values align with the column layout and
// returns its id.
func (c *Checklist) addRow(values []string) ID {
	id := ID(len(c.rows))
	c.rows = append(c.rows, values)
	return id
}

// finish builds the hash indices, collects roots, assigns sequence numbers,
// and verifies that the accepted records form a forest.  It must be called
// once, after the last row is added.
func (c *Checklist) finish() error {
	c.indexes = map[*Property]map[string][]ID{}
	for _, p := range c.columns {
		c.indexes[p] = map[string][]ID{}
	}
	pos := c.colPos
	for id := ID(1); int(id) < len(c.rows); id++ {
		row := c.rows[id]
		for p, i := range pos {
			if v := row[i]; v != "" {
				c.indexes[p][v] = append(c.indexes[p][v], id)
			}
		}
	}

	c.mutexes = make([]int, len(c.rows))
	for i := range c.mutexes {
		c.mutexes[i] = -1
	}

	for id := ID(1); int(id) < len(c.rows); id++ {
		n := c.node(id)
		if n.ToAccepted() == n && n.Parent().IsForest() {
			c.roots = append(c.roots, id)
		}
	}

	return c.assignSequenceNumbers()
}

// assignSequenceNumbers numbers every record in depth-first pre-order over
// the accepted forest, synonyms before children.  An accepted record the
// walk never reaches sits on a parent cycle, which is fatal.
func (c *Checklist) assignSequenceNumbers() error {
	c.sequence = make([]int, len(c.rows))
	for i := range c.sequence {
		c.sequence[i] = -1
	}
	n := 0
	var process func(Node)
	process = func(x Node) {
		if c.sequence[x.ID] >= 0 {
			return
		}
		c.sequence[x.ID] = n
		n++
		for _, inf := range x.Inferiors() {
			process(inf)
		}
	}
	for _, root := range c.roots {
		process(c.node(root))
	}
	for id := ID(1); int(id) < len(c.rows); id++ {
		if c.sequence[id] >= 0 {
			continue
		}
		x := c.node(id)
		if x.IsAccepted() {
			return fmt.Errorf("checklist %s: cycle in parent pointers at %s", c.Prefix, x.Unique())
		}
		// A synonym whose accepted record is missing from the table.
		// It takes part in name matching but not in the hierarchy.
		c.sequence[id] = n
		n++
	}
	return nil
}

// Len returns the number of records in the checklist.
func (c *Checklist) Len() int { return len(c.rows) - 1 }

// Columns returns the properties recognized in this checklist's source, in
// column order.
func (c *Checklist) Columns() []*Property { return c.columns }

func (c *Checklist) node(id ID) Node { return Node{c, id} }

// ForestNode returns the sentinel node above all of c's roots.
func (c *Checklist) ForestNode() Node { return Node{c, Forest} }

// All returns every record in the checklist in arena order.
func (c *Checklist) All() []Node {
	out := make([]Node, 0, c.Len())
	for id := ID(1); int(id) < len(c.rows); id++ {
		out = append(out, c.node(id))
	}
	return out
}

// Roots returns the accepted, parentless records in arena order.
func (c *Checklist) Roots() []Node {
	out := make([]Node, 0, len(c.roots))
	for _, id := range c.roots {
		out = append(out, c.node(id))
	}
	return out
}

// Value returns the value of the given column for record id, or "" when the
// record has none or the checklist does not carry the column.
func (c *Checklist) Value(id ID, p *Property) string {
	if id == Forest {
		return ""
	}
	i, ok := c.colPos[p]
	if !ok {
		return ""
	}
	return c.rows[id][i]
}

// WithValue returns the records whose value in column p equals v, in arena
// order.  The result is a fresh slice on every call.
func (c *Checklist) WithValue(p *Property, v string) []Node {
	idx := c.indexes[p]
	if idx == nil {
		return nil
	}
	ids := idx[v]
	out := make([]Node, len(ids))
	for i, id := range ids {
		out[i] = c.node(id)
	}
	return out
}

// RecordWithTaxonID returns the record carrying the given local identifier,
// or the zero Node.  When an identifier is duplicated the first record in
// table order wins.
func (c *Checklist) RecordWithTaxonID(taxonID string) Node {
	if taxonID == "" {
		return Node{}
	}
	hits := c.indexes[NodeID][taxonID]
	if len(hits) == 0 {
		return Node{}
	}
	return c.node(hits[0])
}
