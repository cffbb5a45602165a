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

// Program cldiff aligns and diffs two taxonomic checklists and writes a
// merged report describing, for every record, whether it was kept, renamed,
// moved, split, merged, added or removed between the two.
//
// Usage: cldiff [--left-tag T] [--right-tag T] [--share-ids] [--out PATH]
//               [--format FORMAT] [--statuses FILE] LEFT RIGHT
//
// LEFT is the lower-priority checklist and RIGHT the higher-priority one.
// Each may be a taxon table file, a Darwin Core archive directory holding
// one, or an inline tree in paren notation (an argument ending in ')').
//
// FORMAT, which defaults to "ad-hoc", selects the report format.  Use
// "cldiff --help" for the list of available formats.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pborman/getopt"

	"github.com/Prashantguptanz/cldiff/pkg/align"
	"github.com/Prashantguptanz/cldiff/pkg/checklist"
)

// Each format registers a formatter with register.  The function f is
// called once with the analyzed aligner.
type formatter struct {
	name string
	f    func(io.Writer, *align.Aligner) error
	help string
}

var formatters = map[string]*formatter{}

func register(f *formatter) {
	formatters[f.name] = f
}

// exitIfError writes errs to standard error and exits with an exit status of
// 1.  If errs is empty then exitIfError does nothing and simply returns.
func exitIfError(errs []error) {
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, err)
		}
		stop(1)
	}
}

var stop = os.Exit

func main() {
	formats := make([]string, 0, len(formatters))
	for k := range formatters {
		formats = append(formats, k)
	}
	sort.Strings(formats)

	var (
		leftTag  = "A"
		rightTag = "B"
		shareIDs bool
		out      = "-"
		format   = "ad-hoc"
		statuses string
		help     bool
	)
	getopt.StringVarLong(&leftTag, "left-tag", 0, "display tag for the left (lower priority) checklist", "TAG")
	getopt.StringVarLong(&rightTag, "right-tag", 0, "display tag for the right (higher priority) checklist", "TAG")
	getopt.BoolVarLong(&shareIDs, "share-ids", 0, "the two checklists draw identifiers from one space")
	getopt.StringVarLong(&out, "out", 0, "write the report to PATH instead of standard output", "PATH")
	getopt.StringVarLong(&format, "format", 0, "report format: "+strings.Join(formats, ", "), "FORMAT")
	getopt.StringVarLong(&statuses, "statuses", 0, "YAML synonym-status overrides", "FILE")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("LEFT RIGHT")
	getopt.Parse()

	if help {
		getopt.CommandLine.PrintUsage(os.Stderr)
		fmt.Fprintf(os.Stderr, "\nFormats:\n")
		for _, fn := range formats {
			f := formatters[fn]
			fmt.Fprintf(os.Stderr, "    %s - %s\n", f.name, f.help)
		}
		stop(0)
	}

	f, ok := formatters[format]
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: invalid format.  Choices are %s\n", format, strings.Join(formats, ", "))
		stop(1)
	}

	args := getopt.Args()
	if len(args) != 2 {
		getopt.PrintUsage(os.Stderr)
		stop(1)
	}

	var errs []error
	left, err := checklist.ReadChecklist(args[0], leftTag+".", "left-checklist")
	if err != nil {
		errs = append(errs, err)
	}
	right, err := checklist.ReadChecklist(args[1], rightTag+".", "right-checklist")
	if err != nil {
		errs = append(errs, err)
	}
	exitIfError(errs)

	fmt.Fprintf(os.Stderr, "Node counts: %d %d\n", left.Len(), right.Len())

	aligner := align.New(left, right)
	aligner.ShareIDs = shareIDs
	if statuses != "" {
		table, err := align.LoadStatuses(statuses)
		if err != nil {
			exitIfError([]error{err})
		}
		aligner.SetStatuses(table)
	}
	aligner.Analyze()

	w := io.Writer(os.Stdout)
	if out != "-" {
		file, err := os.Create(out)
		if err != nil {
			exitIfError([]error{err})
		}
		defer file.Close()
		fmt.Fprintln(os.Stderr, "Preparing:", out)
		w = file
	}
	if err := f.f(w, aligner); err != nil {
		exitIfError([]error{err})
	}
}
