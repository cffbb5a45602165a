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

import "strings"

// A Node is a handle on one record of one checklist, or on a checklist's
// forest sentinel (ID 0).  The zero Node means "no record".  Nodes are
// values: they compare with == and key maps.
type Node struct {
	In *Checklist
	ID ID
}

// IsZero reports whether n refers to no record at all.
func (n Node) IsZero() bool { return n.In == nil }

// IsForest reports whether n is a checklist's forest sentinel.
func (n Node) IsForest() bool { return n.In != nil && n.ID == Forest }

// Value returns the value of column p for this record, "" when absent.
func (n Node) Value(p *Property) string {
	if n.In == nil {
		return ""
	}
	return n.In.Value(n.ID, p)
}

// TaxonID returns the record's local identifier.
func (n Node) TaxonID() string { return n.Value(NodeID) }

// Name returns the record's display name: the canonical name, falling back
// to the scientific name and then to the local identifier.
func (n Node) Name() string {
	if name := n.Value(CanonicalName); name != "" {
		return name
	}
	if name := n.Value(ScientificName); name != "" {
		return name
	}
	return n.TaxonID()
}

// NominalRank returns the record's declared rank name.  Container
// pseudo-nodes are not ranked normally and report none.
func (n Node) NominalRank() string {
	if n.IsContainer() {
		return ""
	}
	return n.Value(TaxonRank)
}

// IsContainer reports whether the record is a container pseudo-node
// (unclassified, incertae sedis, and the like).  Containers do not anchor
// topology.
func (n Node) IsContainer() bool {
	name := strings.ToLower(n.Name())
	return strings.Contains(name, "unclassified") ||
		strings.Contains(name, "incertae sedis") ||
		strings.Contains(name, "unallocated") ||
		strings.Contains(name, "unassigned")
}

// Accepted returns the record that this record's accepted pointer resolves
// to, or the zero Node when the record is itself accepted or the pointer
// does not resolve.
func (n Node) Accepted() Node {
	id := n.Value(AcceptedNodeID)
	if id == "" {
		return Node{}
	}
	return n.In.RecordWithTaxonID(id)
}

// IsAccepted reports whether the record is accepted (its accepted pointer is
// empty).
func (n Node) IsAccepted() bool { return n.Value(AcceptedNodeID) == "" }

// IsSynonym reports whether the record points at an accepted record.
func (n Node) IsSynonym() bool { return !n.IsAccepted() }

// ToAccepted returns the accepted form of the record: the record its
// accepted pointer resolves to, or the record itself.
func (n Node) ToAccepted() Node {
	if a := n.Accepted(); !a.IsZero() {
		return a
	}
	return n
}

// directParent resolves the record's own parent pointer to an accepted
// record, or returns the zero Node.
func (n Node) directParent() Node {
	id := n.Value(ParentNodeID)
	if id == "" {
		return Node{}
	}
	p := n.In.RecordWithTaxonID(id)
	if p.IsZero() || p.ID == n.ID {
		// A record that lists itself as its own parent is a root.
		return Node{}
	}
	return p.ToAccepted()
}

// Parent returns the accepted parent of the record: the record its parent
// pointer resolves to, else the direct parent of its accepted record, else
// the forest sentinel.
func (n Node) Parent() Node {
	if p := n.directParent(); !p.IsZero() {
		return p
	}
	if a := n.Accepted(); !a.IsZero() {
		if p := a.directParent(); !p.IsZero() {
			return p
		}
	}
	return n.In.ForestNode()
}

// Superior returns the record one step rootward through either kind of
// link: its parent, or for a parentless synonym its accepted record.
func (n Node) Superior() Node {
	if p := n.Parent(); !p.IsForest() {
		return p
	}
	if a := n.Accepted(); !a.IsZero() {
		return a
	}
	return n.In.ForestNode()
}

// Children returns the records whose parent pointer names this record, in
// table order.
func (n Node) Children() []Node {
	if n.In == nil || n.ID == Forest {
		return nil
	}
	id := n.TaxonID()
	if id == "" {
		return nil
	}
	var out []Node
	for _, ch := range n.In.WithValue(ParentNodeID, id) {
		if ch.ID != n.ID {
			out = append(out, ch)
		}
	}
	return out
}

// Synonyms returns the records whose accepted pointer names this record, in
// table order.
func (n Node) Synonyms() []Node {
	if n.In == nil || n.ID == Forest {
		return nil
	}
	id := n.TaxonID()
	if id == "" {
		return nil
	}
	return n.In.WithValue(AcceptedNodeID, id)
}

// Inferiors returns the record's synonyms followed by its children: the
// records one step tipward through either kind of link.
func (n Node) Inferiors() []Node {
	return append(n.Synonyms(), n.Children()...)
}

// Sequence returns the record's depth-first pre-order sequence number, used
// to order siblings in reports.
func (n Node) Sequence() int { return n.In.sequence[n.ID] }

// Spaceless returns the record's name in the underscore form used in dumps:
// homonyms are disambiguated with #id and synonyms marked with a leading ?.
func (n Node) Spaceless() string {
	if n.IsZero() {
		return "none"
	}
	if n.IsForest() {
		return "forest"
	}
	name := n.Name()
	if len(n.In.WithValue(CanonicalName, name)) > 1 {
		name = name + "#" + n.TaxonID()
	}
	if !n.IsAccepted() {
		name = "?" + name
	}
	return strings.ReplaceAll(name, " ", "_")
}

// Unique returns the prefixed display name of the record, unique within the
// pair of checklists under comparison.
func (n Node) Unique() string {
	if n.IsZero() {
		return n.Spaceless()
	}
	return n.In.Prefix + n.Spaceless()
}

func (n Node) String() string { return n.Unique() }
