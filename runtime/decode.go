// Copyright 2021 The Scriggo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runtime

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Decode decodes a JSON or YAML document and returns its value.
//
// Mappings are decoded as *Map with the keys in document order, sequences as
// []any, integers as int (int64 or uint64 if they do not fit), floats as
// float64, booleans as bool, strings as string and null as nil. An empty
// document is nil.
func Decode(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	v, err := decodeNode(&doc)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return v, nil
}

// decodeNode returns the value of node.
func decodeNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return decodeNode(node.Content[0])
	case yaml.AliasNode:
		return decodeNode(node.Alias)
	case yaml.SequenceNode:
		s := make([]any, len(node.Content))
		for i, n := range node.Content {
			v, err := decodeNode(n)
			if err != nil {
				return nil, err
			}
			s[i] = v
		}
		return s, nil
	case yaml.MappingNode:
		m := &Map{}
		if err := decodeMapping(m, node); err != nil {
			return nil, err
		}
		return m, nil
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!null":
			return nil, nil
		case "!!bool", "!!int", "!!float":
			var v any
			if err := node.Decode(&v); err != nil {
				return nil, err
			}
			return v, nil
		}
		return node.Value, nil
	}
	return nil, fmt.Errorf("line %d: unexpected node kind %d", node.Line, node.Kind)
}

// decodeMapping stores in m the pairs of the mapping node.
func decodeMapping(m *Map, node *yaml.Node) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind == yaml.ScalarNode && key.ShortTag() == "!!merge" {
			if err := decodeMerge(m, value); err != nil {
				return err
			}
			continue
		}
		if key.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: mapping key is not a scalar", key.Line)
		}
		v, err := decodeNode(value)
		if err != nil {
			return err
		}
		m.Store(key.Value, v)
	}
	return nil
}

// decodeMerge stores in m the pairs of the mappings merged by a "<<" key.
func decodeMerge(m *Map, node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	switch node.Kind {
	case yaml.MappingNode:
		return decodeMapping(m, node)
	case yaml.SequenceNode:
		for _, n := range node.Content {
			if err := decodeMerge(m, n); err != nil {
				return err
			}
		}
		return nil
	}
	return errors.New("merge value is not a mapping")
}
