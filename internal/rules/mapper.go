// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package rules maps schema trees into ordered tables of dotted-path
// validation rules.
package rules

import (
	"fmt"
	"strconv"

	"github.com/dacolabs/formrequest/internal/schema"
)

// Mapper walks schema trees and produces rule tables for a dialect.
// A Mapper holds no per-call state and is safe for concurrent use.
type Mapper struct {
	dialect Dialect
}

// NewMapper creates a Mapper that spells tokens with dialect.
func NewMapper(dialect Dialect) *Mapper {
	return &Mapper{dialect: dialect}
}

// Dialect returns the mapper's dialect.
func (m *Mapper) Dialect() Dialect {
	return m.dialect
}

// Map produces the rules for a request root. An object root emits one row
// per property (and their descendants); an array root emits "*" rows.
// Scalar roots have no field name and are rejected.
func (m *Mapper) Map(root *schema.Node) (*Table, error) {
	if err := root.Validate(); err != nil {
		return nil, err
	}

	w := &walker{dialect: m.dialect, table: NewTable()}
	switch root.Kind {
	case schema.KindObject:
		w.properties("", root)
	case schema.KindArray:
		w.visit(Wildcard, root.Items, itemRequired(root.Items))
	default:
		return nil, fmt.Errorf("%w: %s root cannot be mapped without a field name", schema.ErrInvalidSchema, root.Kind)
	}
	return w.table, nil
}

// MapField produces the rules for node mapped as a single field called name,
// including the field's own row.
func (m *Mapper) MapField(name string, node *schema.Node, required bool) (*Table, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: field name is empty", schema.ErrInvalidSchema)
	}
	if err := node.Validate(); err != nil {
		return nil, err
	}

	w := &walker{dialect: m.dialect, table: NewTable()}
	w.visit(name, node, required)
	return w.table, nil
}

// walker is the append-only builder for one Map or MapField call.
type walker struct {
	dialect Dialect
	table   *Table
}

func (w *walker) visit(path string, n *schema.Node, required bool) {
	w.table.Set(path, w.tokens(n, required)...)

	switch n.Kind {
	case schema.KindObject:
		w.properties(path, n)
	case schema.KindArray:
		w.visit(join(path, Wildcard), n.Items, itemRequired(n.Items))
	}
}

func (w *walker) properties(path string, n *schema.Node) {
	for _, p := range n.Properties {
		w.visit(join(path, p.Name), p.Schema, n.IsRequired(p.Name))
	}
}

func (w *walker) tokens(n *schema.Node, required bool) []string {
	d := w.dialect
	c := n.Constraints

	tokens := []string{
		d.Presence(required && !n.Nullable),
		d.TypeToken(n.Kind),
	}
	if n.Kind == schema.KindString && n.Format != "" {
		tokens = append(tokens, d.FormatTokens(n.Format)...)
	}

	switch {
	case n.Kind == schema.KindString:
		if c.MinLength != nil {
			tokens = append(tokens, d.LowerBound(strconv.Itoa(*c.MinLength), false))
		}
		if c.MaxLength != nil {
			tokens = append(tokens, d.UpperBound(strconv.Itoa(*c.MaxLength), false))
		}
	case n.Kind.IsNumeric():
		if v, exclusive := c.LowerBound(); v != nil {
			tokens = append(tokens, d.LowerBound(formatNumber(*v), exclusive))
		}
		if v, exclusive := c.UpperBound(); v != nil {
			tokens = append(tokens, d.UpperBound(formatNumber(*v), exclusive))
		}
		if c.MultipleOf != nil {
			tokens = append(tokens, d.MultipleOf(formatNumber(*c.MultipleOf)))
		}
	case n.Kind == schema.KindArray:
		if c.MinItems != nil {
			tokens = append(tokens, d.LowerBound(strconv.Itoa(*c.MinItems), false))
		}
		if c.MaxItems != nil {
			tokens = append(tokens, d.UpperBound(strconv.Itoa(*c.MaxItems), false))
		}
	}

	if c.Pattern != "" {
		tokens = append(tokens, d.Pattern(c.Pattern))
	}
	if len(c.Enum) > 0 {
		values := make([]string, len(c.Enum))
		for i, v := range c.Enum {
			values[i] = formatValue(v)
		}
		tokens = append(tokens, d.OneOf(values))
	}
	if n.Kind == schema.KindArray && c.UniqueItems {
		tokens = append(tokens, d.Distinct())
	}
	return tokens
}

// itemRequired reports whether array elements get a required row: only
// non-nullable objects that declare required fields of their own do.
func itemRequired(items *schema.Node) bool {
	return items.Kind == schema.KindObject && !items.Nullable && len(items.Required) > 0
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return formatNumber(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
