// Package catalog models the hierarchical grouping of survey variables
// under topical category labels and flattens it into the per-category
// variable lists served by the API.
//
// Category documents are JSON objects whose values are either arrays of
// variable names or nested objects of named sub-groups, to arbitrary
// depth. Object key order is meaningful to API consumers, so decoding
// goes through the token stream rather than map[string]interface{},
// which would scramble it.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NodeKind discriminates the three shapes a tree position can take.
type NodeKind int

const (
	// KindScalar is any value that is neither an array nor an object
	// (string, number, bool, null). Scalars contribute no variables.
	KindScalar NodeKind = iota
	// KindLeaf is an array of variable names.
	KindLeaf
	// KindGroup is an object of named child nodes.
	KindGroup
)

// Node is one position in a category tree: a leaf list of variable
// names, a group of named children, or a scalar. The zero value is a
// scalar node.
type Node struct {
	kind     NodeKind
	vars     []string
	children []Child
}

// Child is a named node inside a group, in document order.
type Child struct {
	Name string
	Node Node
}

// Tree is the top-level category document: an ordered mapping from
// category name to node.
type Tree struct {
	entries []Entry
}

// Entry is a top-level category and its node, in document order.
type Entry struct {
	Category string
	Node     Node
}

// Kind returns the node's shape.
func (n Node) Kind() NodeKind { return n.kind }

// Children returns the node's named children in document order. Only
// group nodes have children.
func (n Node) Children() []Child { return n.children }

// Leaf constructs a leaf node from variable names.
func Leaf(vars ...string) Node {
	return Node{kind: KindLeaf, vars: vars}
}

// Group constructs a group node from named children.
func Group(children ...Child) Node {
	return Node{kind: KindGroup, children: children}
}

// Entries returns the top-level categories in document order.
func (t Tree) Entries() []Entry { return t.entries }

// Len returns the number of top-level categories.
func (t Tree) Len() int { return len(t.entries) }

// UnmarshalJSON decodes a category document, preserving the order of
// every object's keys. The document itself must be a JSON object;
// anything else is a malformed category document.
func (t *Tree) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("invalid category document: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("category document must be a JSON object, got %v", tok)
	}

	entries := make([]Entry, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("invalid category document: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("invalid category document: unexpected key %v", tok)
		}

		node, err := decodeNode(dec)
		if err != nil {
			return fmt.Errorf("invalid category document: category %q: %w", name, err)
		}
		entries = append(entries, Entry{Category: name, Node: node})
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("invalid category document: %w", err)
	}

	t.entries = entries
	return nil
}

// decodeNode decodes a single value from the token stream into a node.
// Arrays keep their string elements and drop everything else; objects
// recurse; scalars decode to a scalar node.
func decodeNode(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return Node{}, err
	}

	d, ok := tok.(json.Delim)
	if !ok {
		// string, number, bool or null
		return Node{}, nil
	}

	switch d {
	case '[':
		return decodeLeaf(dec)
	case '{':
		return decodeGroup(dec)
	default:
		return Node{}, fmt.Errorf("unexpected token %v", d)
	}
}

// decodeLeaf reads array elements up to the closing bracket. Non-string
// elements are skipped rather than rejected.
func decodeLeaf(dec *json.Decoder) (Node, error) {
	vars := make([]string, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Node{}, err
		}
		switch v := tok.(type) {
		case string:
			vars = append(vars, v)
		case json.Delim:
			// Nested array or object inside a leaf carries no
			// variable names; consume and move on.
			if err := skipValue(dec); err != nil {
				return Node{}, err
			}
		}
	}
	if _, err := dec.Token(); err != nil {
		return Node{}, err
	}
	return Node{kind: KindLeaf, vars: vars}, nil
}

// decodeGroup reads object members up to the closing brace.
func decodeGroup(dec *json.Decoder) (Node, error) {
	children := make([]Child, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Node{}, err
		}
		name, ok := tok.(string)
		if !ok {
			return Node{}, fmt.Errorf("unexpected key %v", tok)
		}
		child, err := decodeNode(dec)
		if err != nil {
			return Node{}, err
		}
		children = append(children, Child{Name: name, Node: child})
	}
	if _, err := dec.Token(); err != nil {
		return Node{}, err
	}
	return Node{kind: KindGroup, children: children}, nil
}

// skipValue consumes the remainder of a composite value whose opening
// delimiter has already been read.
func skipValue(dec *json.Decoder) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '[', '{':
				depth++
			case ']', '}':
				depth--
			}
		}
	}
	return nil
}
