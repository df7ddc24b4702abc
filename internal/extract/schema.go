// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package extract

import (
	"fmt"

	"github.com/dacolabs/formrequest/internal/oas"
	"github.com/dacolabs/formrequest/internal/schema"
)

// FromSchema converts one raw schema object into a node tree.
// Keywords outside the supported subset are ignored.
func (x *Extractor) FromSchema(raw any) (*schema.Node, error) {
	switch v := raw.(type) {
	case nil, bool:
		// absent or boolean (3.1) schema: accepts anything
		return schema.Any(), nil
	case *oas.Object:
		if ref, ok := oas.IsRef(v); ok {
			return x.fromRef(ref, v)
		}
		return x.fromObject(v)
	default:
		return nil, fmt.Errorf("%w: expected a schema object, got %T", schema.ErrInvalidSchema, raw)
	}
}

// fromRef expands a $ref and folds any sibling keywords over the target.
func (x *Extractor) fromRef(ref string, site *oas.Object) (*schema.Node, error) {
	var own *schema.Node
	if site.Len() > 1 {
		n, err := x.ownNode(site)
		if err != nil {
			return nil, err
		}
		own = n
	}

	if err := x.resolver.Enter(ref); err != nil {
		return nil, err
	}
	defer x.resolver.Leave()

	target, err := x.resolver.Resolve(ref)
	if err != nil {
		return nil, err
	}
	node, err := x.FromSchema(target)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ref, err)
	}
	if own == nil {
		return node, nil
	}

	b := &builder{}
	b.fold(node)
	b.fold(own)
	return b.result(), nil
}

func (x *Extractor) fromObject(obj *oas.Object) (*schema.Node, error) {
	b := &builder{}

	// allOf members are folded first so the schema's own keywords win
	for i, member := range obj.List("allOf") {
		n, err := x.FromSchema(member)
		if err != nil {
			return nil, fmt.Errorf("allOf[%d]: %w", i, err)
		}
		b.fold(n)
	}

	own, err := x.ownNode(obj)
	if err != nil {
		return nil, err
	}

	// oneOf/anyOf: a null member makes the result nullable; otherwise the
	// first member stands in for an untyped schema
	for _, keyword := range []string{"oneOf", "anyOf"} {
		var first *schema.Node
		for i, member := range obj.List(keyword) {
			if m, ok := member.(*oas.Object); ok && isNullSchema(m) {
				own.Nullable = true
				continue
			}
			if first != nil {
				continue
			}
			n, err := x.FromSchema(member)
			if err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", keyword, i, err)
			}
			first = n
		}
		if first != nil && own.Kind == schema.KindAny && b.node == nil {
			b.fold(first)
		}
	}

	b.fold(own)
	return b.result(), nil
}

// ownNode converts the keywords declared directly on obj.
func (x *Extractor) ownNode(obj *oas.Object) (*schema.Node, error) {
	kind, nullable := parseType(obj)
	if kind == schema.KindAny {
		switch {
		case obj.Has("properties"):
			kind = schema.KindObject
		case obj.Has("items"):
			kind = schema.KindArray
		}
	}

	n := &schema.Node{
		Kind:        kind,
		Nullable:    nullable || obj.Bool("nullable"),
		Format:      obj.String("format"),
		Constraints: parseConstraints(obj),
		Title:       obj.String("title"),
		Description: obj.String("description"),
	}
	n.Default, _ = obj.Get("default")
	if enumHasNull(obj) {
		n.Nullable = true
	}

	// required is kept on untyped schemas too, so an allOf member or a $ref
	// sibling can mark properties declared elsewhere
	schema.WithRequired(obj.Strings("required")...)(n)

	switch kind {
	case schema.KindObject:
		for name, raw := range obj.Object("properties").All() {
			prop, err := x.FromSchema(raw)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", name, err)
			}
			schema.WithProperty(name, prop)(n)
		}
	case schema.KindArray:
		items, _ := obj.Get("items")
		if list, ok := items.([]any); ok {
			// tuple form: validate against the first member
			items = nil
			if len(list) > 0 {
				items = list[0]
			}
		}
		elem, err := x.FromSchema(items)
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		n.Items = elem
	}
	return n, nil
}

func parseType(obj *oas.Object) (schema.Kind, bool) {
	v, _ := obj.Get("type")
	switch t := v.(type) {
	case string:
		return schema.NormalizeType([]string{t})
	case []any:
		types := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				types = append(types, s)
			}
		}
		return schema.NormalizeType(types)
	default:
		return schema.KindAny, false
	}
}

// isNullSchema matches {type: null} and {type: [null]}.
func isNullSchema(obj *oas.Object) bool {
	kind, nullable := parseType(obj)
	return nullable && kind == schema.KindAny && !obj.Has("properties") && !obj.Has("items")
}

func enumHasNull(obj *oas.Object) bool {
	if !obj.Has("enum") {
		return false
	}
	for _, v := range obj.List("enum") {
		if v == nil {
			return true
		}
	}
	return false
}

// parseConstraints reads validation facets, normalizing OpenAPI 3.0 boolean
// exclusive flags into numeric exclusive bounds.
func parseConstraints(obj *oas.Object) schema.Constraints {
	var c schema.Constraints

	if v, ok := obj.Int("minLength"); ok {
		c.MinLength = schema.Ptr(v)
	}
	if v, ok := obj.Int("maxLength"); ok {
		c.MaxLength = schema.Ptr(v)
	}
	c.Pattern = obj.String("pattern")
	for _, v := range obj.List("enum") {
		if v != nil {
			c.Enum = append(c.Enum, v)
		}
	}

	if v, ok := obj.Number("minimum"); ok {
		c.Minimum = schema.Ptr(v)
	}
	if v, ok := obj.Number("maximum"); ok {
		c.Maximum = schema.Ptr(v)
	}
	c.Minimum, c.ExclusiveMinimum = exclusiveBound(obj, "exclusiveMinimum", c.Minimum)
	c.Maximum, c.ExclusiveMaximum = exclusiveBound(obj, "exclusiveMaximum", c.Maximum)
	if v, ok := obj.Number("multipleOf"); ok {
		c.MultipleOf = schema.Ptr(v)
	}

	if v, ok := obj.Int("minItems"); ok {
		c.MinItems = schema.Ptr(v)
	}
	if v, ok := obj.Int("maxItems"); ok {
		c.MaxItems = schema.Ptr(v)
	}
	c.UniqueItems = obj.Bool("uniqueItems")
	return c
}

// exclusiveBound returns the inclusive and exclusive bound for one side.
// 3.1 declares the exclusive bound as a number; 3.0 flags the inclusive
// bound as exclusive with a boolean.
func exclusiveBound(obj *oas.Object, key string, inclusive *float64) (*float64, *float64) {
	v, ok := obj.Get(key)
	if !ok {
		return inclusive, nil
	}
	if flag, isBool := v.(bool); isBool {
		if flag && inclusive != nil {
			return nil, inclusive
		}
		return inclusive, nil
	}
	if f, isNum := oas.ToFloat(v); isNum {
		return inclusive, schema.Ptr(f)
	}
	return inclusive, nil
}

// builder folds allOf members and the schema's own keywords into one node.
type builder struct {
	node *schema.Node
}

func (b *builder) fold(n *schema.Node) {
	if b.node == nil {
		clone := *n
		clone.Properties = append([]schema.Property(nil), n.Properties...)
		clone.Required = append([]string(nil), n.Required...)
		b.node = &clone
		return
	}

	acc := b.node
	if acc.Kind == schema.KindAny {
		acc.Kind = n.Kind
	}
	acc.Nullable = acc.Nullable || n.Nullable
	if n.Format != "" {
		acc.Format = n.Format
	}
	for _, p := range n.Properties {
		schema.WithProperty(p.Name, p.Schema)(acc)
	}
	schema.WithRequired(n.Required...)(acc)
	if n.Items != nil {
		acc.Items = n.Items
	}
	acc.Constraints = acc.Constraints.Merge(n.Constraints)
	if n.Title != "" {
		acc.Title = n.Title
	}
	if n.Description != "" {
		acc.Description = n.Description
	}
	if n.Default != nil {
		acc.Default = n.Default
	}
}

// result enforces the node invariants after folding mixed members.
func (b *builder) result() *schema.Node {
	n := b.node
	if n.Kind != schema.KindObject {
		n.Properties = nil
	}
	if n.Kind != schema.KindObject && n.Kind != schema.KindAny {
		n.Required = nil
	}
	switch {
	case n.Kind == schema.KindArray && n.Items == nil:
		n.Items = schema.Any()
	case n.Kind != schema.KindArray:
		n.Items = nil
	}
	if n.Kind != schema.KindString {
		n.Format = ""
	}
	return n
}
