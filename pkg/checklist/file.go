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
	"os"
	"path/filepath"
)

// taxonFileNames are the file names a Darwin Core archive directory may use
// for its taxon table, in the order they are tried.
var taxonFileNames = []string{
	"taxon.tsv",
	"Taxon.tsv",
	"taxon.tab",
	"Taxon.tab",
	"taxa.txt",
	"taxon.txt",
	"Taxon.txt",
}

// statFile makes testing of FindTaxonFile easier.
var statFile = os.Stat

// FindTaxonFile returns the path of the taxon table inside dir, or an error
// if none of the recognized file names is present.
func FindTaxonFile(dir string) (string, error) {
	for _, name := range taxonFileNames {
		path := filepath.Join(dir, name)
		if _, err := statFile(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("checklist: no taxon file in %s", dir)
}
