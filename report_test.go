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
	"bytes"
	"testing"

	"github.com/kylelemons/godebug/pretty"

	"github.com/Prashantguptanz/cldiff/pkg/align"
	"github.com/Prashantguptanz/cldiff/pkg/checklist"
)

func alignTrees(t *testing.T, aSpec, bSpec string) *align.Aligner {
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
	a := align.New(A, B)
	a.SetWarnings(&quiet)
	a.Analyze()
	return a
}

func TestReportIdentity(t *testing.T) {
	a := alignTrees(t, "(G g1 g2)", "(G g1 g2)")
	var out bytes.Buffer
	if err := doReport(&out, a); err != nil {
		t.Fatal(err)
	}
	want := "indent,operation,dom,dom id,relation,cod id,cod,unchanged,changed_props,reason\n" +
		",KEEP,A.G,1,,1,B.G,subtree=,,name\n"
	if diff := pretty.Compare(out.String(), want); diff != "" {
		t.Errorf("report diff (-got +want):\n%s", diff)
	}
}

func TestReportSplit(t *testing.T) {
	a := alignTrees(t, "(M M_murinus)", "(M M_murinus M_griseorufus M_myoxinus)")
	var out bytes.Buffer
	if err := doReport(&out, a); err != nil {
		t.Fatal(err)
	}
	want := "indent,operation,dom,dom id,relation,cod id,cod,unchanged,changed_props,reason\n" +
		",DELETE (merge),A.M,1,fringe=,2,B.M_murinus,,,\n" +
		",ADD (split),A.M_murinus,2,fringe=,1,B.M,,,\n" +
		"__,KEEP (move),A.M_murinus,2,,2,B.M_murinus,,,name\n" +
		"__,ADD,,,,3,B.M_griseorufus,,,\n" +
		"__,ADD,,,,4,B.M_myoxinus,,,\n"
	if diff := pretty.Compare(out.String(), want); diff != "" {
		t.Errorf("report diff (-got +want):\n%s", diff)
	}
}

func TestEulerXIdentity(t *testing.T) {
	a := alignTrees(t, "(G g1 g2)", "(G g1 g2)")
	var out bytes.Buffer
	if err := doEulerX(&out, a); err != nil {
		t.Fatal(err)
	}
	want := "taxonomy A left\n" +
		"(G g1 g2)\n" +
		"\n" +
		"taxonomy B right\n" +
		"(G g1 g2)\n" +
		"\n" +
		"articulation A-B left-right\n" +
		"[A.G = B.G]\n" +
		"[A.g1 = B.g1]\n" +
		"[A.g2 = B.g2]\n" +
		"\n"
	if diff := pretty.Compare(out.String(), want); diff != "" {
		t.Errorf("eulerx diff (-got +want):\n%s", diff)
	}
}

func TestEulerXConflict(t *testing.T) {
	a := alignTrees(t, "(r (p x y) (q z))", "(r (p x z) (q y))")
	var out bytes.Buffer
	if err := doEulerX(&out, a); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, line := range []string{
		"[A.p >< B.r]",
		"[B.p >< A.r]",
		"[A.x = B.x]",
		"[A.r = B.r]",
	} {
		if !bytes.Contains([]byte(got), []byte(line)) {
			t.Errorf("output missing %q:\n%s", line, got)
		}
	}
}

func TestFormatterRegistry(t *testing.T) {
	for _, name := range []string{"ad-hoc", "eulerx"} {
		if formatters[name] == nil {
			t.Errorf("formatter %q not registered", name)
		}
	}
}
