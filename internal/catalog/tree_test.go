package catalog

import (
	"encoding/json"
	"testing"
)

// TestTreeDecodePreservesOrder tests that top-level and nested keys
// keep their document order through decoding.
func TestTreeDecodePreservesOrder(t *testing.T) {
	doc := `{"zeta": ["z1"], "alpha": ["a1"], "mid": {"m2": ["x"], "m1": ["y"]}}`

	var tree Tree
	if err := json.Unmarshal([]byte(doc), &tree); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	entries := tree.Entries()
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	wantOrder := []string{"zeta", "alpha", "mid"}
	for i, want := range wantOrder {
		if entries[i].Category != want {
			t.Errorf("Entry %d: expected %q, got %q", i, want, entries[i].Category)
		}
	}

	children := entries[2].Node.Children()
	if len(children) != 2 {
		t.Fatalf("Expected 2 children, got %d", len(children))
	}
	if children[0].Name != "m2" || children[1].Name != "m1" {
		t.Errorf("Child order not preserved: %q, %q", children[0].Name, children[1].Name)
	}
}

// TestTreeDecodeKinds tests the leaf/group/scalar classification.
func TestTreeDecodeKinds(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		kind NodeKind
	}{
		{"leaf", `{"c": ["a", "b"]}`, KindLeaf},
		{"empty leaf", `{"c": []}`, KindLeaf},
		{"group", `{"c": {"g": ["a"]}}`, KindGroup},
		{"empty group", `{"c": {}}`, KindGroup},
		{"string scalar", `{"c": "oops"}`, KindScalar},
		{"number scalar", `{"c": 42}`, KindScalar},
		{"bool scalar", `{"c": true}`, KindScalar},
		{"null scalar", `{"c": null}`, KindScalar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tree Tree
			if err := json.Unmarshal([]byte(tt.doc), &tree); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if tree.Len() != 1 {
				t.Fatalf("Expected 1 entry, got %d", tree.Len())
			}
			if got := tree.Entries()[0].Node.Kind(); got != tt.kind {
				t.Errorf("Expected kind %v, got %v", tt.kind, got)
			}
		})
	}
}

// TestTreeDecodeSkipsNonStringLeafElements tests that malformed leaf
// content is dropped rather than rejected.
func TestTreeDecodeSkipsNonStringLeafElements(t *testing.T) {
	doc := `{"c": ["a", 1, true, null, ["nested"], {"deep": ["x"]}, "b"]}`

	var tree Tree
	if err := json.Unmarshal([]byte(doc), &tree); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	vars := tree.Entries()[0].Node.Variables()
	if len(vars) != 2 || vars[0] != "a" || vars[1] != "b" {
		t.Errorf("Expected [a b], got %v", vars)
	}
}

func TestTreeDecodeRejectsNonObjectDocument(t *testing.T) {
	for _, doc := range []string{`["a", "b"]`, `"text"`, `42`, `null`} {
		var tree Tree
		if err := json.Unmarshal([]byte(doc), &tree); err == nil {
			t.Errorf("Expected error for document %s", doc)
		}
	}
}

func TestTreeDecodeDeepNesting(t *testing.T) {
	doc := `{"top": {"l1": {"l2": {"l3": {"l4": ["deep_var"]}}}}}`

	var tree Tree
	if err := json.Unmarshal([]byte(doc), &tree); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	vars := tree.Entries()[0].Node.Variables()
	if len(vars) != 1 || vars[0] != "deep_var" {
		t.Errorf("Expected [deep_var], got %v", vars)
	}
}
