// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package rules

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Separator joins the tokens of one rule.
const Separator = "|"

// Wildcard is the path segment standing for every array element.
const Wildcard = "*"

// FieldRule is the validation rule for one dotted field path.
type FieldRule struct {
	Path   string
	Tokens []string
}

// Rule returns the tokens joined with Separator.
func (r FieldRule) Rule() string {
	return strings.Join(r.Tokens, Separator)
}

// Segments returns the number of path segments.
func (r FieldRule) Segments() int {
	if r.Path == "" {
		return 0
	}
	return strings.Count(r.Path, ".") + 1
}

// NeedsList reports whether a token contains Separator, in which case the
// rule cannot be written as a single joined string.
func (r FieldRule) NeedsList() bool {
	return slices.ContainsFunc(r.Tokens, func(t string) bool {
		return strings.Contains(t, Separator)
	})
}

// Table is an insertion-ordered set of field rules keyed by path.
type Table struct {
	rows  []FieldRule
	index map[string]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Set stores tokens for path, dropping empty and repeated tokens. Setting an
// existing path replaces its tokens and keeps its position.
func (t *Table) Set(path string, tokens ...string) {
	clean := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok != "" && !slices.Contains(clean, tok) {
			clean = append(clean, tok)
		}
	}

	if i, ok := t.index[path]; ok {
		t.rows[i].Tokens = clean
		return
	}
	t.index[path] = len(t.rows)
	t.rows = append(t.rows, FieldRule{Path: path, Tokens: clean})
}

// Get returns the rule stored for path.
func (t *Table) Get(path string) (FieldRule, bool) {
	i, ok := t.index[path]
	if !ok {
		return FieldRule{}, false
	}
	return t.rows[i], true
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Paths returns the paths in insertion order.
func (t *Table) Paths() []string {
	paths := make([]string, len(t.rows))
	for i, r := range t.rows {
		paths[i] = r.Path
	}
	return paths
}

// Rows returns a copy of the rows in insertion order.
func (t *Table) Rows() []FieldRule {
	rows := make([]FieldRule, len(t.rows))
	for i, r := range t.rows {
		rows[i] = FieldRule{Path: r.Path, Tokens: slices.Clone(r.Tokens)}
	}
	return rows
}

// Map returns the rules as an unordered path to rule string map.
func (t *Table) Map() map[string]string {
	m := make(map[string]string, len(t.rows))
	for _, r := range t.rows {
		m[r.Path] = r.Rule()
	}
	return m
}

// MarshalJSON encodes the table as an object whose keys keep insertion order.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range t.rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(r.Path)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.Rule())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the table as a mapping whose keys keep insertion order.
func (t *Table) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, r := range t.rows {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.Path},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.Rule()},
		)
	}
	return node, nil
}
