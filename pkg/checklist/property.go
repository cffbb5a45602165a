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
	"fmt"
	"strings"
)

// A Property identifies one column of a taxon table.  Properties are
// interned: two columns with the same URI share one *Property, so properties
// can be compared and used as map keys by pointer.  Specificity is the
// position in the registry, assigned in registration order from least
// specific to most specific with regard to taxon identity; it is the bit
// position the property occupies in a Mask.
type Property struct {
	URI         string
	Name        string // short name: the last path segment of the URI
	Specificity int
}

func (p *Property) String() string { return p.Name }

// The property registry.  It is append-only: properties are interned for the
// life of the process and never removed, so the specificity index of a
// property is stable.
var (
	propsByURI   = map[string]*Property{}
	propsByName  = map[string]*Property{}
	propsInOrder []*Property
)

// shortName derives the registry short name from a URI.
func shortName(uri string) string {
	parts := strings.Split(uri, "/")
	return parts[len(parts)-1]
}

// Intern returns the property registered for uri, registering it first if
// needed.  The short name of a newly registered property must not collide
// with an existing one.
func Intern(uri string) *Property {
	if p := propsByURI[uri]; p != nil {
		return p
	}
	name := shortName(uri)
	if q := propsByName[name]; q != nil {
		panic(fmt.Sprintf("checklist: short name %q of %s collides with %s", name, uri, q.URI))
	}
	p := &Property{URI: uri, Name: name, Specificity: len(propsInOrder)}
	propsByURI[uri] = p
	propsByName[name] = p
	propsInOrder = append(propsInOrder, p)
	return p
}

// ByURI returns the property registered for uri, or nil.
func ByURI(uri string) *Property { return propsByURI[uri] }

// ByName returns the property with the given short name, or nil.
func ByName(name string) *Property { return propsByName[name] }

// BySpecificity returns the property at the given registry position.
func BySpecificity(i int) *Property { return propsInOrder[i] }

// NumProperties returns the number of registered properties.
func NumProperties() int { return len(propsInOrder) }

// Well-known Darwin Core fields used directly by the model.
var (
	NomenclaturalStatus *Property
	TaxonomicStatus     *Property
	TaxonRank           *Property
	ParentNodeID        *Property
	NodeID              *Property
	AcceptedNodeID      *Property
	CanonicalName       *Property
	ScientificName      *Property
)

func init() {
	// Registered least specific first: the low bits of a Mask are the
	// properties that say the least about taxon identity, so a diff mask
	// compares numerically in increasing order of consequence.
	for _, uri := range []string{
		"data:,property/record",
		"http://purl.org/dc/terms/source",
		"http://rs.tdwg.org/dwc/terms/nomenclaturalStatus",
		"http://rs.tdwg.org/dwc/terms/taxonomicStatus",
		"http://rs.tdwg.org/dwc/terms/verbatimTaxonRank",
		"http://rs.tdwg.org/dwc/terms/taxonRank",
		"http://rs.tdwg.org/dwc/terms/scientificNameAuthorship",
		"http://rs.tdwg.org/dwc/terms/nameAccordingToID",
		"http://rs.tdwg.org/dwc/terms/taxonID",
		"http://rs.tdwg.org/dwc/terms/vernacularName",
		"http://rs.tdwg.org/dwc/terms/parentNameUsageID",
		"http://rs.tdwg.org/dwc/terms/namePublishedInYear",
		"http://rs.tdwg.org/dwc/terms/specificEpithet",
		"http://rs.tdwg.org/dwc/terms/infraspecificEpithet",
		"http://rs.tdwg.org/dwc/terms/acceptedNameUsageID",
		"http://rs.gbif.org/terms/1.0/canonicalName",
		"http://rs.tdwg.org/dwc/terms/scientificName",
		"http://rs.tdwg.org/dwc/terms/taxonConceptID",
	} {
		Intern(uri)
	}
	NomenclaturalStatus = ByName("nomenclaturalStatus")
	TaxonomicStatus = ByName("taxonomicStatus")
	TaxonRank = ByName("taxonRank")
	ParentNodeID = ByName("parentNameUsageID")
	NodeID = ByName("taxonID")
	AcceptedNodeID = ByName("acceptedNameUsageID")
	CanonicalName = ByName("canonicalName")
	ScientificName = ByName("scientificName")
}
