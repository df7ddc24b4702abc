// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package oas

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// decodeJSON decodes JSON into an ordered tree by walking the token stream.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("offset %d: %w", dec.InputOffset(), err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("offset %d: unexpected data after top-level value", dec.InputOffset())
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	token, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	switch t := token.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyToken, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyToken.(string)
				if !ok {
					return nil, fmt.Errorf("object key %v is not a string", keyToken)
				}
				value, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			list := []any{}
			for dec.More() {
				value, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return list, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		return t.Float64()
	default:
		// string, bool, nil
		return t, nil
	}
}

// decodeYAML decodes YAML into an ordered tree via yaml.Node.
func decodeYAML(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, errors.New("empty document")
	}
	return convertYAMLNode(root.Content[0], 0)
}

// maxYAMLDepth bounds alias expansion so self-referencing anchors cannot loop.
const maxYAMLDepth = 512

func convertYAMLNode(n *yaml.Node, depth int) (any, error) {
	if depth > maxYAMLDepth {
		return nil, fmt.Errorf("line %d: document nested too deeply", n.Line)
	}

	switch n.Kind {
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valueNode := n.Content[i], n.Content[i+1]
			if keyNode.Value == "<<" && keyNode.Tag == "!!merge" {
				if err := mergeYAML(obj, valueNode, depth); err != nil {
					return nil, err
				}
				continue
			}
			value, err := convertYAMLNode(valueNode, depth+1)
			if err != nil {
				return nil, err
			}
			obj.Set(keyNode.Value, value)
		}
		return obj, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			value, err := convertYAMLNode(item, depth+1)
			if err != nil {
				return nil, err
			}
			list = append(list, value)
		}
		return list, nil
	case yaml.AliasNode:
		return convertYAMLNode(n.Alias, depth+1)
	case yaml.ScalarNode:
		return convertYAMLScalar(n)
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
	}
}

func mergeYAML(obj *Object, n *yaml.Node, depth int) error {
	sources := []*yaml.Node{n}
	if n.Kind == yaml.SequenceNode {
		sources = n.Content
	}
	for _, src := range sources {
		value, err := convertYAMLNode(src, depth+1)
		if err != nil {
			return err
		}
		merged, ok := value.(*Object)
		if !ok {
			return fmt.Errorf("line %d: merge value is not a mapping", src.Line)
		}
		for k, v := range merged.All() {
			if !obj.Has(k) {
				obj.Set(k, v)
			}
		}
	}
	return nil
}

func convertYAMLScalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return i, nil
		}
		return strconv.ParseFloat(n.Value, 64)
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return f, nil
	default:
		return n.Value, nil
	}
}
