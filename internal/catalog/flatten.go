package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Categories is a flat, ordered mapping from category name to the
// variable names grouped under it. Marshaling preserves insertion
// order, matching the order of the source document.
type Categories struct {
	names []string
	vars  map[string][]string
}

// Flatten collapses a category tree into one variable list per
// top-level category. Leaves keep their order; groups concatenate
// their children depth-first in document order, discarding the names
// of intermediate groups. Duplicate variable names are kept: a
// variable listed under two sibling sub-groups appears twice.
func Flatten(t Tree) Categories {
	var flat Categories
	for _, e := range t.entries {
		vars := e.Node.Variables()
		if vars == nil {
			vars = []string{}
		}
		flat.Set(e.Category, vars)
	}
	return flat
}

// Variables returns every variable name reachable beneath the node,
// depth-first in document order. Scalar nodes carry none.
func (n Node) Variables() []string {
	switch n.kind {
	case KindLeaf:
		return n.vars
	case KindGroup:
		vars := make([]string, 0)
		for _, c := range n.children {
			vars = append(vars, c.Node.Variables()...)
		}
		return vars
	default:
		return nil
	}
}

// Set adds or replaces a category's variable list, keeping first-set
// order for existing names.
func (c *Categories) Set(name string, vars []string) {
	if c.vars == nil {
		c.vars = make(map[string][]string)
	}
	if _, exists := c.vars[name]; !exists {
		c.names = append(c.names, name)
	}
	c.vars[name] = vars
}

// Get returns the variable list for a category.
func (c Categories) Get(name string) ([]string, bool) {
	vars, ok := c.vars[name]
	return vars, ok
}

// Names returns the category names in order.
func (c Categories) Names() []string { return c.names }

// Len returns the number of categories.
func (c Categories) Len() int { return len(c.names) }

// MarshalJSON writes the mapping with categories in insertion order.
func (c Categories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		vars := c.vars[name]
		if vars == nil {
			vars = []string{}
		}
		val, err := json.Marshal(vars)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a flat mapping, preserving key order. Values
// must be arrays of strings.
func (c *Categories) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("categories must be a JSON object, got %v", tok)
	}

	c.names = nil
	c.vars = make(map[string][]string)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key %v", tok)
		}

		var vars []string
		if err := dec.Decode(&vars); err != nil {
			return fmt.Errorf("category %q: %w", name, err)
		}
		if vars == nil {
			vars = []string{}
		}
		c.Set(name, vars)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
