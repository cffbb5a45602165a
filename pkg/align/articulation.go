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
	"fmt"

	"github.com/Prashantguptanz/cldiff/pkg/checklist"
	"github.com/Prashantguptanz/cldiff/pkg/rcc5"
)

// An Articulation is a directed relational edge between two taxon records,
// possibly in different checklists: dom stands in Relation to cod.  Factors
// records the primitive articulations composed into this one; Reason is a
// short justification ("name", "synonym"); Diff is the property-level diff
// between the endpoints when both are accepted.
type Articulation struct {
	Dom      checklist.Node
	Cod      checklist.Node
	Relation *rcc5.Relation
	Factors  []*Articulation
	Reason   string
	Diff     checklist.Comparison
}

// Express renders the articulation for diagnostics: "A.x fringe= B.y".
func (ar *Articulation) Express() string {
	return fmt.Sprintf("%s %s %s", ar.Dom.Unique(), ar.Relation.Name, ar.Cod.Unique())
}

// IsIdentity reports whether ar is the identity articulation on its domain.
// Variants of = are not identities; only the base relation is.
func (ar *Articulation) IsIdentity() bool {
	return ar.Dom == ar.Cod && ar.Relation == rcc5.Eq
}

// factors returns the primitive factors of ar: itself when primitive.
func (ar *Articulation) factors() []*Articulation {
	if len(ar.Factors) == 0 {
		return []*Articulation{ar}
	}
	return ar.Factors
}

// factorCount is the number of primitive edges behind ar; articulations that
// lean on more steps (synonym hops) are weaker.
func (ar *Articulation) factorCount() int { return len(ar.factors()) }

// newArticulation builds an articulation, computing the property diff when
// both endpoints are accepted records.
func (a *Aligner) newArticulation(dom, cod checklist.Node, re *rcc5.Relation, factors []*Articulation, reason string) *Articulation {
	if dom.IsZero() || cod.IsZero() || re == nil {
		panic("align: malformed articulation")
	}
	diff := checklist.AllDiffs
	if dom.IsAccepted() && cod.IsAccepted() {
		diff = a.differences(dom, cod)
	}
	return &Articulation{Dom: dom, Cod: cod, Relation: re, Factors: factors, Reason: reason, Diff: diff}
}

// Identity returns the identity articulation on n.
func (a *Aligner) Identity(n checklist.Node) *Articulation {
	return a.newArticulation(n, n, rcc5.Eq, nil, "")
}

// Bridge returns a cross-checklist articulation.
func (a *Aligner) Bridge(dom, cod checklist.Node, re *rcc5.Relation, reason string) *Articulation {
	if dom.In == cod.In {
		panic("align: bridge endpoints in the same checklist")
	}
	return a.newArticulation(dom, cod, re, nil, reason)
}

// Synonymy returns the within-checklist articulation from a synonym to its
// accepted record, with the relation determined by the synonym's
// nomenclatural (or failing that taxonomic) status.
func (a *Aligner) Synonymy(syn, accepted checklist.Node) *Articulation {
	return a.newArticulation(syn, accepted, a.statusRelation(synStatus(syn)), nil, "synonym")
}

func synStatus(syn checklist.Node) string {
	if s := syn.Value(checklist.NomenclaturalStatus); s != "" {
		return s
	}
	if s := syn.Value(checklist.TaxonomicStatus); s != "" {
		return s
	}
	return "synonym"
}

// Composable reports whether p then q compose: they must chain through a
// shared record and their relations must compose in RCC-5.
func Composable(p, q *Articulation) bool {
	return p.Cod == q.Dom && rcc5.Composable(p.Relation, q.Relation)
}

// Compose returns the articulation from p.Dom to q.Cod.  Identities are
// absorbed.  Compose panics when the pair is not composable; that is a
// programmer error, not an input condition.
func (a *Aligner) Compose(p, q *Articulation) *Articulation {
	if !Composable(p, q) {
		panic(fmt.Sprintf("align: not composable:\n  %s &\n  %s", p.Express(), q.Express()))
	}
	if p.IsIdentity() {
		return q
	}
	if q.IsIdentity() {
		return p
	}
	reason := p.Reason
	switch {
	case reason == "":
		reason = q.Reason
	case q.Reason != "":
		reason = reason + "+" + q.Reason
	}
	return a.newArticulation(p.Dom, q.Cod,
		rcc5.Compose(p.Relation, q.Relation),
		append(append([]*Articulation{}, p.factors()...), q.factors()...),
		reason)
}

// Conjoinable reports whether p and q can be taken as evidence for the same
// articulation.
func Conjoinable(p, q *Articulation) bool {
	return p.Dom == q.Dom && p.Cod == q.Cod && rcc5.Conjoinable(p.Relation, q.Relation)
}

// Conjoin returns the refinement of two articulations over the same
// endpoints.  It panics when they are not conjoinable.
func (a *Aligner) Conjoin(p, q *Articulation) *Articulation {
	if !Conjoinable(p, q) {
		panic(fmt.Sprintf("align: not conjoinable:\n  %s &\n  %s", p.Express(), q.Express()))
	}
	re := rcc5.Conjoin(p.Relation, q.Relation)
	if re == q.Relation {
		return q
	}
	return p
}

// Reverse returns the articulation from cod back to dom.
func (a *Aligner) Reverse(ar *Articulation) *Articulation {
	var factors []*Articulation
	if len(ar.Factors) > 0 {
		factors = make([]*Articulation, len(ar.Factors))
		for i, f := range ar.Factors {
			factors[len(factors)-1-i] = f
		}
	}
	return a.newArticulation(ar.Cod, ar.Dom, rcc5.Reverse(ar.Relation), factors, ar.Reason)
}

// Inverses reports whether p and q are each other's reversals at the
// relation level.
func Inverses(p, q *Articulation) bool {
	return p.Cod == q.Dom && p.Dom == q.Cod && rcc5.Inverses(p.Relation, q.Relation)
}
