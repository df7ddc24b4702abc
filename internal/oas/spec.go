// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package oas

import (
	"fmt"
	"slices"
	"strings"
)

// Info is the document's info section.
type Info struct {
	Title       string
	Version     string
	Description string
}

// Spec is a parsed OpenAPI document.
type Spec struct {
	OpenAPI   string
	Info      Info
	Servers   []string
	Endpoints []*Endpoint
	// Warnings collects non-fatal findings such as an unsupported version.
	Warnings []string

	doc *Document
}

// Document returns the raw document the spec was parsed from.
func (s *Spec) Document() *Document {
	return s.doc
}

// NewResolver returns a fresh Resolver over the spec's document.
func (s *Spec) NewResolver() *Resolver {
	return NewResolver(s.doc)
}

// Schemas returns the names declared under components/schemas, in order.
func (s *Spec) Schemas() []string {
	return s.doc.Root.Object("components").Object("schemas").Keys()
}

// Endpoint finds an endpoint by operationId or by "METHOD /path".
func (s *Spec) Endpoint(id string) (*Endpoint, bool) {
	for _, ep := range s.Endpoints {
		if ep.OperationID == id || strings.EqualFold(ep.Method+" "+ep.Path, id) {
			return ep, true
		}
	}
	return nil, false
}

// Duplicates groups endpoints that share a normalized signature.
// Only groups with more than one member are returned, in document order.
func (s *Spec) Duplicates() [][]*Endpoint {
	groups := make(map[string][]*Endpoint)
	var order []string
	for _, ep := range s.Endpoints {
		sig := ep.Signature()
		if _, ok := groups[sig]; !ok {
			order = append(order, sig)
		}
		groups[sig] = append(groups[sig], ep)
	}

	var out [][]*Endpoint
	for _, sig := range order {
		if len(groups[sig]) > 1 {
			out = append(out, groups[sig])
		}
	}
	return out
}

// Parse builds a Spec from a decoded document. Missing info or paths
// sections fail with ErrMissingSection; an unsupported version is recorded
// as a warning.
func Parse(doc *Document) (*Spec, error) {
	root := doc.Root
	for _, section := range []string{"info", "paths"} {
		if root.Object(section) == nil {
			return nil, fmt.Errorf("%w: %q", ErrMissingSection, section)
		}
	}

	info := root.Object("info")
	spec := &Spec{
		OpenAPI: root.String("openapi"),
		Info: Info{
			Title:       info.String("title"),
			Version:     versionString(info, "version"),
			Description: info.String("description"),
		},
		doc: doc,
	}
	spec.Warnings = append(spec.Warnings, checkVersion(root)...)

	for _, server := range root.List("servers") {
		if obj, ok := server.(*Object); ok && obj.String("url") != "" {
			spec.Servers = append(spec.Servers, obj.String("url"))
		}
	}

	resolver := NewResolver(doc)
	for path, rawItem := range root.Object("paths").All() {
		resolved, err := resolver.Deref(rawItem)
		if err != nil {
			return nil, fmt.Errorf("path %s: %w", path, err)
		}
		item, ok := resolved.(*Object)
		if !ok {
			spec.Warnings = append(spec.Warnings, fmt.Sprintf("path %s: path item is not an object, skipped", path))
			continue
		}

		shared, err := parseParameters(resolver, item.List("parameters"))
		if err != nil {
			return nil, fmt.Errorf("path %s: %w", path, err)
		}

		for key, rawOp := range item.All() {
			method := strings.ToUpper(key)
			if !isMethod(method) {
				continue
			}
			op, ok := rawOp.(*Object)
			if !ok {
				continue
			}
			ep, err := parseOperation(resolver, path, method, op, shared)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", method, path, err)
			}
			spec.Endpoints = append(spec.Endpoints, ep)
		}
	}

	return spec, nil
}

func parseOperation(resolver *Resolver, path, method string, op *Object, shared []Parameter) (*Endpoint, error) {
	own, err := parseParameters(resolver, op.List("parameters"))
	if err != nil {
		return nil, err
	}

	ep := &Endpoint{
		Path:        path,
		Method:      method,
		OperationID: op.String("operationId"),
		Summary:     op.String("summary"),
		Description: op.String("description"),
		Tags:        op.Strings("tags"),
		Deprecated:  op.Bool("deprecated"),
		Parameters:  mergeParameters(shared, own),
	}
	if body, ok := op.Get("requestBody"); ok && body != nil {
		ep.RequestBody = body
	}
	return ep, nil
}

func parseParameters(resolver *Resolver, raw []any) ([]Parameter, error) {
	params := make([]Parameter, 0, len(raw))
	for i, item := range raw {
		resolved, err := resolver.Deref(item)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i, err)
		}
		obj, ok := resolved.(*Object)
		if !ok || obj.String("name") == "" {
			continue
		}
		schema, _ := obj.Get("schema")
		if schema == nil {
			schema = firstMediaSchema(obj.Object("content"))
		}
		params = append(params, Parameter{
			Name:        obj.String("name"),
			In:          obj.String("in"),
			Required:    obj.Bool("required"),
			Description: obj.String("description"),
			Schema:      schema,
		})
	}
	return params, nil
}

// firstMediaSchema returns the schema of the first media type of a
// parameter declared with content instead of schema.
func firstMediaSchema(content *Object) any {
	for _, media := range content.All() {
		if obj, ok := media.(*Object); ok {
			if s, ok := obj.Get("schema"); ok {
				return s
			}
		}
	}
	return nil
}

// mergeParameters overlays operation parameters on path-level ones; a
// parameter is identified by name and location.
func mergeParameters(shared, own []Parameter) []Parameter {
	out := make([]Parameter, 0, len(shared)+len(own))
	for _, p := range shared {
		overridden := false
		for _, o := range own {
			if o.Name == p.Name && o.In == p.In {
				overridden = true
				break
			}
		}
		if !overridden {
			out = append(out, p)
		}
	}
	return append(out, own...)
}

func isMethod(m string) bool {
	return slices.Contains(Methods, m)
}

func checkVersion(root *Object) []string {
	version := versionString(root, "openapi")
	if version == "" {
		if swagger := versionString(root, "swagger"); swagger != "" {
			return []string{fmt.Sprintf("unsupported OpenAPI version %q (swagger documents are not supported)", swagger)}
		}
		return []string{"missing openapi version field"}
	}
	if version == "3.0" || version == "3.1" || strings.HasPrefix(version, "3.0.") || strings.HasPrefix(version, "3.1.") {
		return nil
	}
	return []string{fmt.Sprintf("unsupported OpenAPI version %q (supported: 3.0.x, 3.1.x)", version)}
}

// versionString reads a version field that YAML may have decoded as a number.
func versionString(o *Object, key string) string {
	v, _ := o.Get(key)
	switch t := v.(type) {
	case string:
		return t
	case int64:
		return fmt.Sprintf("%d", t)
	case float64:
		return fmt.Sprintf("%g", t)
	default:
		return ""
	}
}
