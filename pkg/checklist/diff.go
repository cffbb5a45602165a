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

import "math/bits"

// A Mask is a set of properties packed by specificity index: bit i is the
// property with specificity i.  Because low bits are the least specific
// properties, masks compare numerically in increasing order of consequence.
type Mask uint64

// With returns m with p added.  The registry is bounded well below 64
// entries for any real input; properties interned past that cannot take
// part in diffs.
func (m Mask) With(p *Property) Mask {
	if p.Specificity >= 64 {
		return m
	}
	return m | 1<<uint(p.Specificity)
}

// Has reports whether p is in m.
func (m Mask) Has(p *Property) bool {
	return p.Specificity < 64 && m&(1<<uint(p.Specificity)) != 0
}

// Properties unpacks m into properties, least specific first.
func (m Mask) Properties() []*Property {
	var out []*Property
	for m != 0 {
		i := bits.TrailingZeros64(uint64(m))
		out = append(out, BySpecificity(i))
		m &^= 1 << uint(i)
	}
	return out
}

// A Comparison is the property-level diff between two records: the
// properties the higher-priority side dropped, changed, and added.
type Comparison struct {
	Dropped Mask
	Changed Mask
	Added   Mask
}

// AllDiffs is the pessimal comparison, used where no meaningful diff can be
// computed (a synonym endpoint, say).  It sorts after every real diff.
var AllDiffs = Comparison{^Mask(0), ^Mask(0), ^Mask(0)}

// Same reports whether the comparison found no differences.
func (c Comparison) Same() bool {
	return c.Dropped == 0 && c.Changed == 0 && c.Added == 0
}

// SharedColumns returns the set of properties recognized by both checklists:
// the columns over which records of the two are comparable.
func SharedColumns(a, b *Checklist) Mask {
	var in Mask
	for _, p := range b.columns {
		in = in.With(p)
	}
	var out Mask
	for _, p := range a.columns {
		if in.Has(p) {
			out = out.With(p)
		}
	}
	return out
}

// Differences compares two records property by property over the given
// columns.  A value present on x but not on y is dropped, present on y but
// not x is added, present on both but different is changed.
func Differences(x, y Node, props Mask) Comparison {
	var c Comparison
	for _, p := range props.Properties() {
		vx := x.Value(p)
		vy := y.Value(p)
		switch {
		case vx == vy:
		case vy == "":
			c.Dropped = c.Dropped.With(p)
		case vx == "":
			c.Added = c.Added.With(p)
		default:
			c.Changed = c.Changed.With(p)
		}
	}
	return c
}
