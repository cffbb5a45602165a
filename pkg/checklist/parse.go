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

// This file parses inline checklists written in the Euler/X paren notation:
//
//	(Microcebus M_murinus M_griseorufus (M_rufus M_rufus_x))
//
// A specifier is a sequence of trees; each tree is (Name inferior...) where
// an inferior is a name or a nested tree.  A name may carry synonyms with a
// ; affix, each optionally tagged with a nomenclatural status after %:
//
//	Mirza_coquereli;Microcebus_coquereli%homotypic_synonym
//
// Status tags use _ in place of spaces.  Local identifiers are synthesized
// in parse order.

import (
	"fmt"
	"strconv"
	"strings"
)

type treeToken int

const (
	tokEOF treeToken = iota
	tokOpen
	tokClose
	tokName
)

// A treeLexer scans a paren-notation specifier into parens and names.
type treeLexer struct {
	input string
	pos   int
}

func (l *treeLexer) next() (treeToken, string) {
	for l.pos < len(l.input) && (l.input[l.pos] == ' ' || l.input[l.pos] == '\t' || l.input[l.pos] == '\n') {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return tokEOF, ""
	}
	switch l.input[l.pos] {
	case '(':
		l.pos++
		return tokOpen, "("
	case ')':
		l.pos++
		return tokClose, ")"
	}
	start := l.pos
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\n', '(', ')':
			return tokName, l.input[start:l.pos]
		}
		l.pos++
	}
	return tokName, l.input[start:]
}

type treeParser struct {
	lex    *treeLexer
	c      *Checklist
	nextID int
}

// ParseTree parses a paren-notation specifier into a checklist.
func ParseTree(specifier, prefix, name string) (*Checklist, error) {
	c := New(prefix, name)
	c.setColumns([]*Property{
		NodeID,
		CanonicalName,
		ParentNodeID,
		AcceptedNodeID,
		NomenclaturalStatus,
	})
	p := &treeParser{lex: &treeLexer{input: specifier}, c: c, nextID: 1}
	for {
		tok, text := p.lex.next()
		switch tok {
		case tokEOF:
			if err := c.finish(); err != nil {
				return nil, err
			}
			return c, nil
		case tokOpen:
			if err := p.parseTree(""); err != nil {
				return nil, err
			}
		case tokName:
			p.addName(text, "")
		case tokClose:
			return nil, fmt.Errorf("parse %q: unbalanced )", specifier)
		}
	}
}

// parseTree parses the remainder of a ( tree ) whose ( is already consumed.
func (p *treeParser) parseTree(parent string) error {
	tok, text := p.lex.next()
	if tok != tokName {
		return fmt.Errorf("parse: expected a name after (, got %q", text)
	}
	id := p.addName(text, parent)
	for {
		tok, text := p.lex.next()
		switch tok {
		case tokClose:
			return nil
		case tokName:
			p.addName(text, id)
		case tokOpen:
			if err := p.parseTree(id); err != nil {
				return err
			}
		case tokEOF:
			return fmt.Errorf("parse: missing )")
		}
	}
}

// addName adds one accepted record, plus any ;-affixed synonyms, and
// returns the accepted record's synthesized identifier.
func (p *treeParser) addName(text, parent string) string {
	parts := strings.Split(text, ";")
	id := p.fresh()
	p.c.addRow([]string{id, parts[0], parent, "", ""})
	for _, syn := range parts[1:] {
		name := syn
		status := ""
		if i := strings.IndexByte(syn, '%'); i >= 0 {
			name = syn[:i]
			status = strings.ReplaceAll(syn[i+1:], "_", " ")
		}
		p.c.addRow([]string{p.fresh(), name, "", id, status})
	}
	return id
}

func (p *treeParser) fresh() string {
	id := strconv.Itoa(p.nextID)
	p.nextID++
	return id
}
