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
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Prashantguptanz/cldiff/pkg/rcc5"
)

// A StatusTable maps a nomenclatural status string to the relation a
// synonym carrying that status bears to its accepted record.
type StatusTable map[string]*rcc5.Relation

// statusRelation resolves a synonym status against the aligner's table.
// Unknown statuses warn once per occurrence and fall back to =.
func (a *Aligner) statusRelation(status string) *rcc5.Relation {
	if status == "" {
		return rcc5.Eq
	}
	if re := a.statuses[status]; re != nil {
		return re
	}
	fmt.Fprintf(a.warn, "Unrecognized nomenclatural status: %s\n", status)
	return rcc5.Eq
}

// statusRel builds the relation for one status.  The reverse name defaults
// to the status suffixed with -of.
func statusRel(status string, base *rcc5.Relation, revname string) *rcc5.Relation {
	if revname == "" {
		revname = status + "-of"
	}
	return rcc5.Variant(base, 0, status, revname)
}

// DefaultStatuses returns the built-in synonym-status table.  Most statuses
// are nomenclatural equivalences; includes and in-part carry containment
// semantics.
func DefaultStatuses() StatusTable {
	t := StatusTable{}
	eq := func(status string) { t[status] = statusRel(status, rcc5.Eq, "") }

	eq("homotypic synonym") // GBIF
	eq("authority")
	eq("scientific name") // exactly one per record
	eq("equivalent name") // synonym but not nomenclaturally
	eq("misspelling")
	eq("unpublished name") // non-code synonym
	eq("genbank synonym") // at most one per record
	eq("anamorph")
	eq("genbank anamorph")
	eq("teleomorph")
	eq("acronym")
	eq("blast name") // large well-known taxa
	eq("genbank acronym")
	eq("BOLD id")

	// More dubious
	eq("synonym")
	eq("heterotypic synonym") // GBIF
	eq("misnomer")
	eq("type material")
	t["merged id"] = statusRel("merged id", rcc5.Eq, "split id")
	eq("accepted") // EOL
	eq("invalid")  // EOL

	// Really dubious
	eq("genbank common name")
	eq("common name")

	t["includes"] = statusRel("includes", rcc5.Gt, "included-in")
	t["in-part"] = statusRel("in-part", rcc5.Lt, "part-of")
	t["proparte synonym"] = statusRel("proparte synonym", rcc5.Lt, "")
	return t
}

// statusFile is the shape of a YAML status-override file: a mapping from
// status string to one of the atom symbols =, <, >, !, ><.
type statusFile map[string]string

// LoadStatuses reads status overrides from a YAML file and merges them over
// the default table.
func LoadStatuses(path string) (StatusTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseStatuses(data)
}

func parseStatuses(data []byte) (StatusTable, error) {
	var raw statusFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	t := DefaultStatuses()
	for status, symbol := range raw {
		var base *rcc5.Relation
		switch symbol {
		case "=":
			base = rcc5.Eq
		case "<":
			base = rcc5.Lt
		case ">":
			base = rcc5.Gt
		case "!":
			base = rcc5.Disjoint
		case "><":
			base = rcc5.Conflict
		default:
			return nil, fmt.Errorf("status %q: unknown relation %q", status, symbol)
		}
		t[status] = statusRel(status, base, "")
	}
	return t, nil
}
