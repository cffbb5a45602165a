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
	"bytes"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Prashantguptanz/cldiff/pkg/checklist"
	"github.com/Prashantguptanz/cldiff/pkg/rcc5"
)

// aligned parses two paren-notation checklists and analyzes them, warnings
// silenced.
func aligned(t *testing.T, aSpec, bSpec string) *Aligner {
	t.Helper()
	A, err := checklist.ParseTree(aSpec, "A.", "left")
	if err != nil {
		t.Fatal(err)
	}
	B, err := checklist.ParseTree(bSpec, "B.", "right")
	if err != nil {
		t.Fatal(err)
	}
	var quiet bytes.Buffer
	A.SetWarnings(&quiet)
	B.SetWarnings(&quiet)
	a := New(A, B)
	a.SetWarnings(&quiet)
	a.Analyze()
	return a
}

// byName returns the unique record named name in c, synonyms included.
func byName(t *testing.T, c *checklist.Checklist, name string) checklist.Node {
	t.Helper()
	hits := c.WithValue(checklist.CanonicalName, name)
	if len(hits) != 1 {
		t.Fatalf("%d records named %q in %s", len(hits), name, c.Prefix)
	}
	return hits[0]
}

// edges renders the alignment as sorted "dom atom cod" strings.
func edges(a *Aligner) []string {
	al := a.Alignment()
	var out []string
	for _, n := range append(a.A.All(), a.B.All()...) {
		if ar := al[n]; ar != nil {
			out = append(out, fmt.Sprintf("%s %s %s",
				ar.Dom.Unique(), ar.Relation.Atom.Symbol(), ar.Cod.Unique()))
		}
	}
	sort.Strings(out)
	return out
}

func TestIdentityAlignment(t *testing.T) {
	a := aligned(t, "(G g1 g2 g3)", "(G g1 g2 g3)")
	want := []string{
		"A.G = B.G",
		"A.g1 = B.g1",
		"A.g2 = B.g2",
		"A.g3 = B.g3",
		"B.G = A.G",
		"B.g1 = A.g1",
		"B.g2 = A.g2",
		"B.g3 = A.g3",
	}
	if diff := cmp.Diff(want, edges(a)); diff != "" {
		t.Errorf("alignment edges (-want +got):\n%s", diff)
	}
	// Name and topology corroborate each other on every record.
	for _, name := range []string{"G", "g1"} {
		ar := a.Best(byName(t, a.A, name))
		if ar == nil || ar.Relation.Name != "fringe=+name=" {
			t.Errorf("best(%s): got %v, want fringe=+name=", name, ar)
		}
	}
}

func TestSplitAlignment(t *testing.T) {
	a := aligned(t, "(M M_murinus)", "(M M_murinus M_griseorufus M_myoxinus)")
	murinusA := byName(t, a.A, "M_murinus")
	murinusB := byName(t, a.B, "M_murinus")

	if ar := a.Best(murinusA); ar == nil || ar.Cod != murinusB {
		t.Fatalf("best(A.M_murinus): got %v", ar)
	}
	// A.M's only fringe evidence is murinus, so the alignment collapses
	// the monotypic genus onto it.
	if ar := a.Best(byName(t, a.A, "M")); ar == nil || ar.Cod != murinusB ||
		!rcc5.IsVariant(ar.Relation, rcc5.Eq) {
		t.Errorf("best(A.M): got %v", ar)
	}
	// B's two extra species have no counterpart at all.
	for _, name := range []string{"M_griseorufus", "M_myoxinus"} {
		if ar := a.Best(byName(t, a.B, name)); ar != nil {
			t.Errorf("best(B.%s): got %v, want none", name, ar)
		}
	}
}

func TestMoveAlignment(t *testing.T) {
	a := aligned(t, "(Fam (GenA sp1))", "(Fam (GenB sp1))")
	sp1A := byName(t, a.A, "sp1")
	sp1B := byName(t, a.B, "sp1")

	ar := a.Best(sp1A)
	if ar == nil || ar.Cod != sp1B || !rcc5.IsVariant(ar.Relation, rcc5.Eq) {
		t.Fatalf("best(A.sp1): got %v", ar)
	}
	back := a.Best(sp1B)
	if back == nil || back.Cod != sp1A {
		t.Fatalf("best(B.sp1): got %v", back)
	}
	if !a.ParentChanged(ar) {
		t.Error("sp1 moved from GenA to GenB but ParentChanged is false")
	}
}

func TestSynonymRename(t *testing.T) {
	a := aligned(t,
		"Mirza_coquereli;Microcebus_coquereli",
		"Microcebus_coquereli")
	mirza := byName(t, a.A, "Mirza_coquereli")
	target := byName(t, a.B, "Microcebus_coquereli")

	ar := a.Best(mirza)
	if ar == nil || ar.Cod != target || !rcc5.IsVariant(ar.Relation, rcc5.Eq) {
		t.Fatalf("best(A.Mirza_coquereli): got %v", ar)
	}
	if !strings.Contains(ar.Reason, "synonym") {
		t.Errorf("reason %q does not mention the synonym bridge", ar.Reason)
	}
	back := a.Best(target)
	if back == nil || back.Cod != mirza {
		t.Errorf("best(B.Microcebus_coquereli): got %v, want A.Mirza_coquereli", back)
	}
}

func TestConflictAlignment(t *testing.T) {
	a := aligned(t, "(r (p x y) (q z))", "(r (p x z) (q y))")

	// The leaves and the roots agree...
	for _, name := range []string{"x", "y", "z", "r"} {
		ar := a.Best(byName(t, a.A, name))
		if ar == nil || !rcc5.IsVariant(ar.Relation, rcc5.Eq) {
			t.Errorf("best(A.%s): got %v, want an equality", name, ar)
		}
	}
	// ...but the two mid-level carvings cut across each other.  Each
	// conflicted node points at its cross-MRCA, the smallest region of
	// the other checklist its evidence spans.
	pA := a.Best(byName(t, a.A, "p"))
	if pA == nil || !rcc5.IsVariant(pA.Relation, rcc5.Conflict) {
		t.Fatalf("best(A.p): got %v, want a conflict", pA)
	}
	if pA.Cod != byName(t, a.B, "r") {
		t.Errorf("best(A.p) codomain: got %v, want B.r", pA.Cod)
	}
	pB := a.Best(byName(t, a.B, "p"))
	if pB == nil || !rcc5.IsVariant(pB.Relation, rcc5.Conflict) {
		t.Errorf("best(B.p): got %v, want a conflict", pB)
	}
}

func TestGraftedSubtree(t *testing.T) {
	a := aligned(t, "(r (p x))", "(r (p x) (new n1 n2))")
	newB := byName(t, a.B, "new")
	if ar := a.Best(newB); ar != nil {
		t.Fatalf("best(B.new): got %v, want none", ar)
	}

	parents, roots := a.Merge()
	graft := MergedNode{Y: newB}
	parent, ok := parents[graft]
	if !ok {
		t.Fatal("grafted subtree has no merged parent")
	}
	if want := (MergedNode{Y: byName(t, a.B, "r")}); parent != want {
		t.Errorf("graft parent: got %v, want %v", parent, want)
	}
	if len(roots) != 2 {
		t.Errorf("roots: got %v, want the A.r and B.r nodes", roots)
	}
	// The graft's children stay below it.
	if got := parents[MergedNode{Y: byName(t, a.B, "n1")}]; got != graft {
		t.Errorf("parent of n1: got %v, want %v", got, graft)
	}
}

func TestAmbiguityIsReported(t *testing.T) {
	A, err := checklist.ParseTree("(r pA)", "A.", "left")
	if err != nil {
		t.Fatal(err)
	}
	B, err := checklist.ParseTree("(r filler pA pA)", "B.", "right")
	if err != nil {
		t.Fatal(err)
	}
	var warnings bytes.Buffer
	a := New(A, B)
	a.SetWarnings(&warnings)
	a.Analyze()

	pA := byName(t, A, "pA")
	if ar := a.Best(pA); ar != nil {
		t.Fatalf("best(A.pA): got %v, want none (ambiguous)", ar)
	}
	if ties := a.Ambiguous()[pA]; len(ties) != 2 {
		t.Errorf("ambiguous candidates: got %d, want 2", len(ties))
	}
	if !strings.Contains(warnings.String(), "Multiple least-bad matches") {
		t.Errorf("missing ambiguity warning, got %q", warnings.String())
	}
}

func TestFringeMutuality(t *testing.T) {
	// Invariant: every fringe pair is each other's unique direct match.
	a := aligned(t, "(G g1 g2 (S s1))", "(G g1 g2 (S s1))")
	for _, n := range a.A.All() {
		if !a.IsFringe(n) {
			continue
		}
		m := a.mutualFringeMatch(n, a.B)
		if m == nil {
			t.Errorf("fringe record %v has no mutual match", n)
			continue
		}
		d := a.directMatches(n, a.B)
		if len(d) != 1 || d[0].Cod != m.Cod {
			t.Errorf("direct matches of %v: got %v", n, d)
		}
		back := a.directMatches(m.Cod, a.A)
		if len(back) != 1 || back[0].Cod != n {
			t.Errorf("direct matches of %v: got %v", m.Cod, back)
		}
	}
}

func TestCrossMRCARoundTrip(t *testing.T) {
	// Invariant: cross-MRCA is idempotent over fringe matches.
	a := aligned(t, "(G (S s1 s2) (T t1))", "(G (S s1 s2) (T t1))")
	for _, n := range a.A.All() {
		if !a.IsFringe(n) {
			continue
		}
		image := a.crossMRCAOrFringe(n, a.B)
		if image.IsZero() {
			t.Fatalf("fringe record %v has no image", n)
		}
		if back := a.crossMRCAOrFringe(image, a.A); back != n {
			t.Errorf("round trip of %v: got %v", n, back)
		}
	}
	// And for internal records the two tables mirror each other.
	sA := byName(t, a.A, "S")
	sB := byName(t, a.B, "S")
	if got := a.CrossMRCA(sA); got != sB {
		t.Errorf("cross-MRCA of A.S: got %v, want %v", got, sB)
	}
	if got := a.CrossMRCA(sB); got != sA {
		t.Errorf("cross-MRCA of B.S: got %v, want %v", got, sA)
	}
}

func TestMonotypicChain(t *testing.T) {
	// Invariant: the chain above a fringe match is all equalities with
	// strictly more rootward codomains, topmost first.
	a := aligned(t, "(X (M s))", "(X (M s))")
	s := byName(t, a.A, "s")
	chain := a.topologicalMatches(s, a.B)
	if len(chain) != 3 {
		t.Fatalf("chain length: got %d, want 3", len(chain))
	}
	for i, ar := range chain {
		if !rcc5.IsVariant(ar.Relation, rcc5.Eq) {
			t.Errorf("chain[%d] relation: got %v, want an equality", i, ar.Relation)
		}
		if i > 0 && chain[i-1].Cod.Mutex() >= ar.Cod.Mutex() {
			t.Errorf("chain[%d] codomain %v not tipward of %v",
				i, ar.Cod, chain[i-1].Cod)
		}
	}
	if got, want := chain[0].Cod, byName(t, a.B, "X"); got != want {
		t.Errorf("chain top: got %v, want %v", got, want)
	}
	// Name evidence still pins the leaf to the leaf.
	if ar := a.Best(s); ar == nil || ar.Cod != byName(t, a.B, "s") {
		t.Errorf("best(A.s): got %v, want B.s", ar)
	}
}

func TestReverseInvolution(t *testing.T) {
	a := aligned(t, "(G g1)", "(G g1)")
	ar := a.Best(byName(t, a.A, "g1"))
	if ar == nil {
		t.Fatal("no best match for A.g1")
	}
	back := a.Reverse(a.Reverse(ar))
	opts := cmp.Comparer(func(x, y checklist.Node) bool { return x == y })
	if diff := cmp.Diff(ar, back, opts); diff != "" {
		t.Errorf("reverse(reverse(ar)) differs (-want +got):\n%s", diff)
	}
}

func TestComposeIdentity(t *testing.T) {
	a := aligned(t, "(G g1)", "(G g1)")
	g1 := byName(t, a.A, "g1")
	ar := a.Best(g1)
	if ar == nil {
		t.Fatal("no best match for A.g1")
	}
	if got := a.Compose(a.Identity(g1), ar); got != ar {
		t.Error("compose(identity, ar) did not return ar")
	}
	if got := a.Compose(ar, a.Identity(ar.Cod)); got != ar {
		t.Error("compose(ar, identity) did not return ar")
	}
}

func TestAlignmentIsCodomainUnique(t *testing.T) {
	a := aligned(t, "(r (p x y) (q z))", "(r (p x z) (q y))")
	for n, ar := range a.Alignment() {
		if ar.Dom != n {
			t.Errorf("alignment entry for %v has domain %v", n, ar.Dom)
		}
	}
	// Each record has at most one winner; ambiguity shows up in
	// Ambiguous, never as a second edge.
	for n := range a.Ambiguous() {
		if a.Alignment()[n] != nil {
			t.Errorf("%v is both aligned and ambiguous", n)
		}
	}
}

func TestSharedIdentifierSpace(t *testing.T) {
	// With --share-ids, a renamed record can still be found through its
	// identifier.
	A, err := checklist.ParseTree("(r oldname leaf)", "A.", "left")
	if err != nil {
		t.Fatal(err)
	}
	B, err := checklist.ParseTree("(r newname leaf)", "B.", "right")
	if err != nil {
		t.Fatal(err)
	}
	var quiet bytes.Buffer
	a := New(A, B)
	a.SetWarnings(&quiet)
	a.ShareIDs = true
	a.Analyze()

	// oldname and newname share the synthesized identifier "2".
	old := byName(t, A, "oldname")
	ar := a.Best(old)
	if ar == nil || ar.Cod != byName(t, B, "newname") {
		t.Fatalf("best(A.oldname): got %v, want B.newname", ar)
	}
	d := a.directMatches(old, B)
	if len(d) != 1 || d[0].Relation.Name != "id=" {
		t.Errorf("direct matches: got %v, want one id= bridge", d)
	}
}
