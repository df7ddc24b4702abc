// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidSchema indicates a node that violates the tree invariants,
// such as an array without items.
var ErrInvalidSchema = errors.New("invalid schema")

// Property is one named member of an object node.
type Property struct {
	Name   string
	Schema *Node
}

// Node is one resolved schema. Nodes are built once by the extractor or the
// constructors below and must not be modified afterwards.
type Node struct {
	Kind        Kind
	Nullable    bool
	Format      string
	Properties  []Property // declaration order
	Required    []string
	Items       *Node
	Constraints Constraints

	Title       string
	Description string
	Default     any
}

// Option configures a Node during construction.
type Option func(*Node)

// New builds a node of the given kind.
func New(kind Kind, opts ...Option) *Node {
	n := &Node{Kind: kind}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// String builds a string node.
func String(opts ...Option) *Node { return New(KindString, opts...) }

// Integer builds an integer node.
func Integer(opts ...Option) *Node { return New(KindInteger, opts...) }

// Number builds a number node.
func Number(opts ...Option) *Node { return New(KindNumber, opts...) }

// Boolean builds a boolean node.
func Boolean(opts ...Option) *Node { return New(KindBoolean, opts...) }

// Any builds an untyped node.
func Any(opts ...Option) *Node { return New(KindAny, opts...) }

// Object builds an object node.
func Object(opts ...Option) *Node { return New(KindObject, opts...) }

// Array builds an array node with the given element schema.
func Array(items *Node, opts ...Option) *Node {
	n := New(KindArray, opts...)
	n.Items = items
	return n
}

// WithProperty appends a property. A later property with the same name
// replaces the earlier one in place.
func WithProperty(name string, s *Node) Option {
	return func(n *Node) {
		for i := range n.Properties {
			if n.Properties[i].Name == name {
				n.Properties[i].Schema = s
				return
			}
		}
		n.Properties = append(n.Properties, Property{Name: name, Schema: s})
	}
}

// WithRequired marks property names as required. Duplicates are ignored.
func WithRequired(names ...string) Option {
	return func(n *Node) {
		for _, name := range names {
			if !slices.Contains(n.Required, name) {
				n.Required = append(n.Required, name)
			}
		}
	}
}

// WithFormat sets the string format.
func WithFormat(format string) Option {
	return func(n *Node) { n.Format = format }
}

// WithConstraints sets the validation facets.
func WithConstraints(c Constraints) Option {
	return func(n *Node) { n.Constraints = c }
}

// AsNullable marks the node as accepting null.
func AsNullable() Option {
	return func(n *Node) { n.Nullable = true }
}

// WithDescription sets the description.
func WithDescription(d string) Option {
	return func(n *Node) { n.Description = d }
}

// IsRequired reports whether name is in the node's required set.
func (n *Node) IsRequired(name string) bool {
	return slices.Contains(n.Required, name)
}

// Property returns the named property schema, or nil.
func (n *Node) Property(name string) *Node {
	for _, p := range n.Properties {
		if p.Name == name {
			return p.Schema
		}
	}
	return nil
}

// PropertyNames returns property names in declaration order.
func (n *Node) PropertyNames() []string {
	names := make([]string, len(n.Properties))
	for i, p := range n.Properties {
		names[i] = p.Name
	}
	return names
}

// Validate checks the structural invariants of the tree rooted at n.
func (n *Node) Validate() error {
	return n.validate("#")
}

func (n *Node) validate(path string) error {
	if n == nil {
		return fmt.Errorf("%w: nil node at %s", ErrInvalidSchema, path)
	}
	switch {
	case n.Kind == KindArray && n.Items == nil:
		return fmt.Errorf("%w: array schema at %s requires items", ErrInvalidSchema, path)
	case n.Kind != KindArray && n.Items != nil:
		return fmt.Errorf("%w: %s schema at %s must not declare items", ErrInvalidSchema, n.Kind, path)
	case n.Kind != KindObject && len(n.Properties) > 0:
		return fmt.Errorf("%w: %s schema at %s must not declare properties", ErrInvalidSchema, n.Kind, path)
	}
	for _, p := range n.Properties {
		if err := p.Schema.validate(path + "/" + p.Name); err != nil {
			return err
		}
	}
	if n.Items != nil {
		return n.Items.validate(path + "/items")
	}
	return nil
}

// Depth returns the nesting depth of the tree: 1 for a leaf.
func (n *Node) Depth() int {
	if n == nil {
		return 0
	}
	deepest := 0
	for _, p := range n.Properties {
		deepest = max(deepest, p.Schema.Depth())
	}
	if n.Items != nil {
		deepest = max(deepest, n.Items.Depth())
	}
	return deepest + 1
}
