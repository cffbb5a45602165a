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
	"github.com/Prashantguptanz/cldiff/pkg/checklist"
	"github.com/Prashantguptanz/cldiff/pkg/rcc5"
)

// Direct-match variants.  A record matched both by name and by identifier
// is better evidence than either alone.
var (
	relNameAndID = rcc5.Variant(rcc5.Eq, 30, "name=+id=", "")
	relNameEq    = rcc5.Variant(rcc5.Eq, 31, "name=", "")
	relIDEq      = rcc5.Variant(rcc5.Eq, 32, "id=", "")
)

// directMatches returns every bridge from n into other justified by surface
// identifiers: records sharing n's canonical name, and, when the
// identifier spaces are shared, the record carrying n's identifier.
func (a *Aligner) directMatches(n checklist.Node, other *checklist.Checklist) []*Articulation {
	if n.In == other {
		panic("align: direct match within one checklist")
	}
	hits := other.WithValue(checklist.CanonicalName, n.Name())

	var idHit checklist.Node
	if a.ShareIDs {
		idHit = other.RecordWithTaxonID(n.TaxonID())
	}

	var matches []*Articulation
	if !idHit.IsZero() {
		seen := false
		for _, hit := range hits {
			if hit == idHit {
				seen = true
				break
			}
		}
		if !seen {
			matches = append(matches, a.Bridge(n, idHit, relIDEq, "id"))
		}
	}
	for _, hit := range hits {
		re, reason := relNameEq, "name"
		if hit == idHit {
			re, reason = relNameAndID, "name+id"
		}
		matches = append(matches, a.Bridge(n, hit, re, reason))
	}
	return matches
}
