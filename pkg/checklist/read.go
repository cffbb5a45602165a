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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadChecklist loads a checklist from a specifier: an inline paren-notation
// tree (the specifier ends with ')'), a Darwin Core archive directory, or a
// taxon table file.
func ReadChecklist(specifier, prefix, name string) (*Checklist, error) {
	if strings.HasSuffix(specifier, ")") {
		return ParseTree(specifier, prefix, name)
	}
	path := specifier
	if info, err := statFile(path); err == nil && info.IsDir() {
		var err error
		if path, err = FindTaxonFile(path); err != nil {
			return nil, err
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := Read(f, prefix, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Read loads a checklist from a separator-delimited taxon table.  The header
// names columns by URI or by short name; unrecognized columns are interned
// as new properties.  taxonID and canonicalName are required.  The
// separator is tab when the header contains one, comma otherwise.
func Read(r io.Reader, prefix, name string) (*Checklist, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	header := string(data)
	if i := strings.IndexByte(header, '\n'); i >= 0 {
		header = header[:i]
	}
	sep := ','
	if strings.ContainsRune(header, '\t') {
		sep = '\t'
	}

	cr := csv.NewReader(strings.NewReader(string(data)))
	cr.Comma = sep
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty taxon table")
	}

	cols := make([]*Property, len(rows[0]))
	for i, label := range rows[0] {
		label = strings.TrimSpace(label)
		p := ByURI(label)
		if p == nil {
			p = ByName(label)
		}
		if p == nil {
			uri := label
			if !strings.Contains(uri, "/") {
				uri = "data:,property/" + label
			}
			p = Intern(uri)
		}
		cols[i] = p
	}

	c := New(prefix, name)
	c.setColumns(cols)
	if _, ok := c.colPos[NodeID]; !ok {
		return nil, fmt.Errorf("taxon table has no taxonID column")
	}
	if _, ok := c.colPos[CanonicalName]; !ok {
		return nil, fmt.Errorf("taxon table has no canonicalName column")
	}

	for _, row := range rows[1:] {
		values := make([]string, len(cols))
		for i := range cols {
			if i < len(row) {
				values[i] = strings.TrimSpace(row[i])
			}
		}
		c.addRow(values)
	}
	if err := c.finish(); err != nil {
		return nil, err
	}
	return c, nil
}
