package jsexpr

import (
	"math"
	"testing"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"null", nil, 0},
		{"true", true, 1},
		{"false", false, 0},
		{"number", 42.5, 42.5},
		{"empty string", "", 0},
		{"blank string", "   ", 0},
		{"decimal string", "12.5", 12.5},
		{"padded string", "  7 ", 7},
		{"exponent string", "1e3", 1000},
		{"leading dot", ".5", 0.5},
		{"signed", "-3", -3},
		{"infinity word", "Infinity", math.Inf(1)},
		{"negative infinity word", "-Infinity", math.Inf(-1)},
		{"empty array", []any{}, 0},
		{"singleton array", []any{"8"}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToNumber(tt.in)
			if got != tt.want {
				t.Errorf("ToNumber(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	nans := []struct {
		name string
		in   any
	}{
		{"word string", "abc"},
		{"trailing junk", "12px"},
		{"hex string", "0x10"},
		{"bare inf", "inf"},
		{"bare nan", "nan"},
		{"multi array", []any{1.0, 2.0}},
		{"object", map[string]any{}},
	}
	for _, tt := range nans {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToNumber(tt.in); !math.IsNaN(got) {
				t.Errorf("ToNumber(%v) = %v, want NaN", tt.in, got)
			}
		})
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"null", nil, "null"},
		{"true", true, "true"},
		{"false", false, "false"},
		{"integer", 3.0, "3"},
		{"fraction", 3.25, "3.25"},
		{"negative zero", math.Copysign(0, -1), "0"},
		{"nan", math.NaN(), "NaN"},
		{"infinity", math.Inf(1), "Infinity"},
		{"negative infinity", math.Inf(-1), "-Infinity"},
		{"string", "hi", "hi"},
		{"empty array", []any{}, ""},
		{"array join", []any{1.0, "a", true}, "1,a,true"},
		{"array with null", []any{1.0, nil, 2.0}, "1,,2"},
		{"nested array", []any{[]any{1.0, 2.0}, 3.0}, "1,2,3"},
		{"object", map[string]any{"a": 1.0}, "[object Object]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToString(tt.in); got != tt.want {
				t.Errorf("ToString(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToBool(t *testing.T) {
	truthy := []any{true, 1.0, -1.0, "0", "false", []any{}, map[string]any{}}
	for _, v := range truthy {
		if !ToBool(v) {
			t.Errorf("ToBool(%v) = false, want true", v)
		}
	}
	falsy := []any{nil, false, 0.0, math.NaN(), ""}
	for _, v := range falsy {
		if ToBool(v) {
			t.Errorf("ToBool(%v) = true, want false", v)
		}
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize(map[string]any{
		"n":    int(3),
		"u":    uint8(7),
		"f":    float32(1.5),
		"list": []any{int64(2), "s"},
	})
	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("Normalize returned %T, want map[string]any", got)
	}
	if m["n"] != 3.0 || m["u"] != 7.0 || m["f"] != 1.5 {
		t.Errorf("numeric normalization wrong: %v", m)
	}
	list, ok := m["list"].([]any)
	if !ok || list[0] != 2.0 || list[1] != "s" {
		t.Errorf("slice normalization wrong: %v", m["list"])
	}
}

func TestStrictEquals(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"null null", nil, nil, true},
		{"null zero", nil, 0.0, false},
		{"numbers", 1.0, 1.0, true},
		{"nan", math.NaN(), math.NaN(), false},
		{"zero signs", 0.0, math.Copysign(0, -1), true},
		{"number string", 1.0, "1", false},
		{"equal arrays", []any{1.0, []any{2.0}}, []any{1.0, []any{2.0}}, true},
		{"unequal arrays", []any{1.0}, []any{2.0}, false},
		{"length mismatch", []any{1.0}, []any{1.0, 2.0}, false},
		{"equal objects", map[string]any{"a": 1.0}, map[string]any{"a": 1.0}, true},
		{"unequal objects", map[string]any{"a": 1.0}, map[string]any{"a": 2.0}, false},
		{"key mismatch", map[string]any{"a": 1.0}, map[string]any{"b": 1.0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := strictEquals(tt.a, tt.b); got != tt.want {
				t.Errorf("strictEquals(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSameValueZero(t *testing.T) {
	if !sameValueZero(math.NaN(), math.NaN()) {
		t.Error("NaN should match NaN")
	}
	if !sameValueZero(0.0, math.Copysign(0, -1)) {
		t.Error("+0 should match -0")
	}
	if sameValueZero(1.0, "1") {
		t.Error("number should not match string")
	}
}

func TestAbstractEquals(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"null null", nil, nil, true},
		{"null number", nil, 0.0, false},
		{"null string", nil, "", false},
		{"null false", nil, false, false},
		{"number string", 1.0, "1", true},
		{"string number", "2.5", 2.5, true},
		{"bool number", true, 1.0, true},
		{"bool string", false, "0", true},
		{"nan string", math.NaN(), "NaN", false},
		{"array string", []any{1.0, 2.0}, "1,2", true},
		{"array number", []any{5.0}, 5.0, true},
		{"empty array zero", []any{}, 0.0, true},
		{"object string", map[string]any{}, "[object Object]", true},
		{"same kind falls to strict", []any{1.0}, []any{1.0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := abstractEquals(tt.a, tt.b); got != tt.want {
				t.Errorf("abstractEquals(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestStringLength(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"héllo", 5},
		{"日本", 2},
		{"𝒳", 2},
	}
	for _, tt := range tests {
		if got := stringLength(tt.in); got != tt.want {
			t.Errorf("stringLength(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-1.5, "-1.5"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{0.1, "0.1"},
	}
	for _, tt := range tests {
		if got := formatNumber(tt.in); got != tt.want {
			t.Errorf("formatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
