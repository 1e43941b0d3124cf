package rules

import (
	"testing"

	"jsexpr/jsexpr"
)

func TestContextFromJSON(t *testing.T) {
	payload := []byte(`{
		"user": {"name": "ada", "age": 30, "tags": ["admin", "ops"]},
		"active": true,
		"score": 9.5
	}`)

	vars, err := ContextFromJSON(payload)
	if err != nil {
		t.Fatal(err)
	}

	ev := jsexpr.New(vars, nil)
	tests := []struct {
		src  string
		want any
	}{
		{"active", true},
		{"score", 9.5},
		{"user.name", "ada"},
		{"user.age", 30.0},
		{"user.tags.length", 2.0},
		{"user.tags.includes('admin')", true},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := ev.Evaluate(tt.src)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestContextFromJSONRejectsNonObject(t *testing.T) {
	for _, payload := range []string{`[1, 2]`, `"str"`, `42`, `not json`} {
		if _, err := ContextFromJSON([]byte(payload)); err == nil {
			t.Errorf("ContextFromJSON(%s) should fail", payload)
		}
	}
}

func TestMergeContext(t *testing.T) {
	base := map[string]any{"a": 1.0, "b": 2.0}
	extra := map[string]any{"b": 3.0, "c": 4.0}
	merged := MergeContext(base, extra)

	if merged["a"] != 1.0 || merged["b"] != 3.0 || merged["c"] != 4.0 {
		t.Errorf("merged = %v", merged)
	}
	if base["b"] != 2.0 {
		t.Error("base map was modified")
	}
}
