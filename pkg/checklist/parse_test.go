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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/openconfig/gnmi/errdiff"
)

func names(nodes []Node) []string {
	var out []string
	for _, n := range nodes {
		out = append(out, n.Name())
	}
	return out
}

func TestParseTree(t *testing.T) {
	c, err := ParseTree("(G g1 g2 (S s1 s2))", "A.", "test")
	if err != nil {
		t.Fatal(err)
	}
	roots := c.Roots()
	if got, want := names(roots), []string{"G"}; !cmp.Equal(got, want) {
		t.Fatalf("roots: got %v, want %v", got, want)
	}
	g := roots[0]
	if got, want := names(g.Children()), []string{"g1", "g2", "S"}; !cmp.Equal(got, want) {
		t.Errorf("children of G: got %v, want %v", got, want)
	}
	s := g.Children()[2]
	if got, want := names(s.Children()), []string{"s1", "s2"}; !cmp.Equal(got, want) {
		t.Errorf("children of S: got %v, want %v", got, want)
	}
	if got := s.Children()[0].Parent(); got != s {
		t.Errorf("parent of s1: got %v, want %v", got, s)
	}
	if got := g.Parent(); !got.IsForest() {
		t.Errorf("parent of root: got %v, want forest", got)
	}
}

func TestParseForest(t *testing.T) {
	c, err := ParseTree("(a x) (b y) lone", "A.", "test")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := names(c.Roots()), []string{"a", "b", "lone"}; !cmp.Equal(got, want) {
		t.Errorf("roots: got %v, want %v", got, want)
	}
}

func TestParseSynonyms(t *testing.T) {
	c, err := ParseTree("(M Mirza_coquereli;Microcebus_coquereli%homotypic_synonym)", "A.", "test")
	if err != nil {
		t.Fatal(err)
	}
	mirza := c.Roots()[0].Children()[0]
	syns := mirza.Synonyms()
	if len(syns) != 1 {
		t.Fatalf("got %d synonyms, want 1", len(syns))
	}
	syn := syns[0]
	if got, want := syn.Name(), "Microcebus_coquereli"; got != want {
		t.Errorf("synonym name: got %q, want %q", got, want)
	}
	if syn.IsAccepted() {
		t.Error("synonym reported as accepted")
	}
	if got := syn.ToAccepted(); got != mirza {
		t.Errorf("ToAccepted: got %v, want %v", got, mirza)
	}
	if got, want := syn.Value(NomenclaturalStatus), "homotypic synonym"; got != want {
		t.Errorf("status: got %q, want %q", got, want)
	}
}

func TestParseSequenceNumbers(t *testing.T) {
	// Synonyms come before children in pre-order.
	c, err := ParseTree("(a;s (b c))", "A.", "test")
	if err != nil {
		t.Fatal(err)
	}
	a := c.Roots()[0]
	syn := a.Synonyms()[0]
	b := a.Children()[0]
	if !(a.Sequence() < syn.Sequence() && syn.Sequence() < b.Sequence()) {
		t.Errorf("sequence order: a=%d syn=%d b=%d",
			a.Sequence(), syn.Sequence(), b.Sequence())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"(a", "missing )"},
		{"(a x)) ", "unbalanced )"},
		{"( )", "expected a name"},
	}
	for _, tt := range tests {
		_, err := ParseTree(tt.in, "A.", "test")
		if diff := errdiff.Substring(err, tt.want); diff != "" {
			t.Errorf("ParseTree(%q): %s", tt.in, diff)
		}
	}
}
