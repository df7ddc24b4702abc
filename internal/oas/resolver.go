// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package oas

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// DefaultMaxDepth bounds the number of nested $ref expansions.
const DefaultMaxDepth = 64

// Resolver dereferences local JSON pointers ("#/a/b/c") against a document.
// It tracks the refs currently being expanded so that a ref re-entered
// while still open fails with ErrCircularReference instead of recursing
// forever. A Resolver is not safe for concurrent use; create one per
// extraction.
type Resolver struct {
	root     *Object
	stack    []string
	MaxDepth int
}

// NewResolver creates a Resolver for doc.
func NewResolver(doc *Document) *Resolver {
	var root *Object
	if doc != nil {
		root = doc.Root
	}
	return &Resolver{root: root, MaxDepth: DefaultMaxDepth}
}

// IsRef returns the $ref string of v when v is a reference object.
func IsRef(v any) (string, bool) {
	obj, ok := v.(*Object)
	if !ok {
		return "", false
	}
	ref, ok := obj.Get("$ref")
	if !ok {
		return "", false
	}
	s, ok := ref.(string)
	return s, ok
}

// Resolve looks up pointer in the document. It does not follow a $ref found
// at the target.
func (r *Resolver) Resolve(pointer string) (any, error) {
	if pointer != "#" && !strings.HasPrefix(pointer, "#/") {
		return nil, fmt.Errorf("%w: %q (only local #/ pointers are supported)", ErrUnsupportedReference, pointer)
	}

	var current any = r.root
	if pointer == "#" {
		return current, nil
	}

	for _, raw := range strings.Split(strings.TrimPrefix(pointer, "#/"), "/") {
		segment := unescapePointer(raw)
		switch node := current.(type) {
		case *Object:
			next, ok := node.Get(segment)
			if !ok {
				return nil, fmt.Errorf("%w: %s (segment %q)", ErrReferenceNotFound, pointer, segment)
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, fmt.Errorf("%w: %s (index %q)", ErrReferenceNotFound, pointer, segment)
			}
			current = node[idx]
		default:
			return nil, fmt.Errorf("%w: %s (segment %q)", ErrReferenceNotFound, pointer, segment)
		}
	}
	return current, nil
}

func unescapePointer(s string) string {
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}

// Enter marks ref as being expanded. It fails with ErrCircularReference when
// ref is already open or the nesting exceeds MaxDepth. Every successful Enter
// must be paired with Leave.
func (r *Resolver) Enter(ref string) error {
	if slices.Contains(r.stack, ref) {
		chain := append(slices.Clone(r.stack[slices.Index(r.stack, ref):]), ref)
		return fmt.Errorf("%w: %s", ErrCircularReference, strings.Join(chain, " -> "))
	}
	limit := r.MaxDepth
	if limit <= 0 {
		limit = DefaultMaxDepth
	}
	if len(r.stack) >= limit {
		return fmt.Errorf("%w: %s exceeds maximum reference depth %d", ErrCircularReference, ref, limit)
	}
	r.stack = append(r.stack, ref)
	return nil
}

// Leave closes the most recently entered ref.
func (r *Resolver) Leave() {
	if len(r.stack) > 0 {
		r.stack = r.stack[:len(r.stack)-1]
	}
}

// Depth returns the number of refs currently open.
func (r *Resolver) Depth() int {
	return len(r.stack)
}

// Deref follows v while it is a reference object and returns the first
// non-reference target. Sibling keywords next to a $ref are dropped; schema
// extraction handles those itself.
func (r *Resolver) Deref(v any) (any, error) {
	var seen []string
	for {
		ref, ok := IsRef(v)
		if !ok {
			return v, nil
		}
		if slices.Contains(seen, ref) {
			return nil, fmt.Errorf("%w: %s", ErrCircularReference, strings.Join(append(seen, ref), " -> "))
		}
		seen = append(seen, ref)
		target, err := r.Resolve(ref)
		if err != nil {
			return nil, err
		}
		v = target
	}
}
