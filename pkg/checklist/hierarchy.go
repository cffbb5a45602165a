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

package checklist

// This file computes mutex levels and the hierarchy analyzers built on them:
// find-peers, MRCA, disjointness, and how-related.  Mutexes are memoized per
// checklist and corrected on the fly: for every accepted child c of accepted
// parent p, mutex(c) > mutex(p) after fix-up.

import (
	"fmt"

	"github.com/Prashantguptanz/cldiff/pkg/rcc5"
)

// Mutex returns the record's rank level.  Smaller is more rootward; the
// forest sentinel is level 0.
func (n Node) Mutex() int {
	if n.IsZero() || n.ID == Forest {
		return ForestMutex
	}
	c := n.In
	if m := c.mutexes[n.ID]; m >= 0 {
		return m
	}
	m := c.computeMutex(n)
	if c.mutexes[n.ID] < 0 {
		c.mutexes[n.ID] = m // perhaps amended later by fix-up
	}
	return c.mutexes[n.ID]
}

func (c *Checklist) setMutex(n Node, m int) {
	have := c.mutexes[n.ID]
	if have >= 0 && have != m {
		verb := "Demoting"
		if have > m {
			verb = "Promoting"
		}
		fmt.Fprintf(c.warn, "# ** %s %s, %s -> %s\n",
			verb, n.Unique(), mutexToName(have), mutexToName(m))
	}
	c.mutexes[n.ID] = m
}

// computeMutex assigns the record's level.  A parentless record always
// takes rootMutex.  Below the roots the declared rank, when recognized, is
// normative; otherwise the level is synthesized just rootward of the
// shallowest child.  Children whose level does not end up
// strictly tipward of the parent are demoted.
func (c *Checklist) computeMutex(x Node) int {
	n := x.ToAccepted()
	childrenMutex := atomMutex
	for _, ch := range n.Children() {
		if m := ch.Mutex(); m < childrenMutex {
			childrenMutex = m
		}
	}
	var m int
	if n.Parent().IsForest() {
		m = rootMutex
	} else if nominal := nameToMutex(n.NominalRank()); nominal != 0 {
		m = nominal
	} else {
		m = childrenMutex - 10
	}
	c.setMutex(n, m)
	c.correctChildMutexes(n, m)
	return c.mutexes[n.ID]
}

func (c *Checklist) correctChildMutexes(parent Node, parentMutex int) {
	for _, child := range parent.Children() {
		childMutex := child.Mutex()
		if childMutex > parentMutex {
			continue
		}
		if childMutex == parentMutex {
			fmt.Fprintf(c.warn, "# ** Child %s has same rank as parent %s\n",
				child.Unique(), parent.Unique())
		} else {
			fmt.Fprintf(c.warn, "# ** Child %s is of higher rank than parent %s\n",
				child.Unique(), parent.Unique())
		}
		if child.IsContainer() {
			// Containers squeeze in just below the parent so their
			// own children keep their levels where possible.
			m := parentMutex + 1
			c.setMutex(child, m)
			c.correctChildMutexes(child, m)
		} else {
			c.setMutex(child, parentMutex+10)
		}
	}
}

// FindPeers walks x and y rootward, always advancing the more tipward of
// the two, until both sit at the same mutex level.  When the levels are
// equal but the records differ, x takes one extra parent step to break the
// tie.  The result is the pair of same-level ancestors, or both forest.
func FindPeers(x, y Node) (Node, Node) {
	x = x.ToAccepted()
	y = y.ToAccepted()
	if x.IsForest() || y.IsForest() {
		return x.In.ForestNode(), x.In.ForestNode()
	}
	if x.In != y.In {
		panic("checklist: FindPeers across checklists")
	}

	mx := x.Mutex()
	my := y.Mutex()
	if mx == my && x != y {
		x = x.Parent()
		mx = x.Mutex()
	}
	for mx != my {
		if mx > my {
			if x.IsForest() {
				return x, x
			}
			x = x.Parent()
			mx = x.Mutex()
		} else {
			if y.IsForest() {
				return y, y
			}
			y = y.Parent()
			my = y.Mutex()
		}
	}
	return x, y
}

// MRCA returns the most recent common ancestor of x and y, or the forest
// sentinel when they share none.  The zero Node is the identity: MRCA of it
// and anything is the other argument.
func MRCA(x, y Node) Node {
	if x.IsZero() {
		return y
	}
	if y.IsZero() {
		return x
	}
	for {
		if x.IsForest() || y.IsForest() {
			return x.In.ForestNode()
		}
		if x == y {
			return x
		}
		x, y = FindPeers(x, y)
	}
}

// AreDisjoint reports whether x and y have no records in common.  The
// forest contains everything and is disjoint from nothing.
func AreDisjoint(x, y Node) bool {
	if x.IsForest() || y.IsForest() {
		return false
	}
	if x == y {
		return false
	}
	x, y = FindPeers(x, y)
	return x != y
}

// HowRelated classifies two records of the same checklist as =, >, < or !.
// Conflict cannot arise within one tree.
func HowRelated(x, y Node) *rcc5.Relation {
	if x == y {
		return rcc5.Eq
	}
	px, py := FindPeers(x, y)
	if px == py {
		if px == x {
			return rcc5.Gt
		}
		if py == y {
			return rcc5.Lt
		}
	}
	return rcc5.Disjoint
}
