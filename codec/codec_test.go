package codec

import (
	"math"
	"reflect"
	"testing"
)

func TestParseNumbers(t *testing.T) {
	for _, raw := range []interface{}{3.5, float32(3.5), 7, int64(7), uint32(7)} {
		v, ok := Parse(raw)
		if !ok {
			t.Fatalf("Parse(%v) reported static", raw)
		}
		if len(v.Numbers) != 1 || v.Template != nil {
			t.Errorf("Parse(%v) = %+v, expected a bare scalar", raw, v)
		}
	}

	v, _ := Parse(2.25)
	if got := v.Recombine(v.Numbers); got != 2.25 {
		t.Errorf("Expected scalar round trip, got %v", got)
	}
}

func TestParseString(t *testing.T) {
	tests := []struct {
		raw      string
		numbers  []float64
		template []string
	}{
		{
			raw:      "10px solid #ff0000",
			numbers:  []float64{10, 255, 0, 0},
			template: []string{"", "px solid rgb(", ",", ",", ")"},
		},
		{
			raw:      "translate(-4.5px, +.25em)",
			numbers:  []float64{-4.5, 0.25},
			template: []string{"translate(", "px, ", "em)"},
		},
		{
			raw:      "#abc",
			numbers:  []float64{170, 187, 204},
			template: []string{"rgb(", ",", ",", ")"},
		},
		{
			raw:      "#ff000080",
			numbers:  []float64{255, 0, 0, 128.0 / 255},
			template: []string{"rgba(", ",", ",", ",", ")"},
		},
		{
			raw:      "0.5",
			numbers:  []float64{0.5},
			template: []string{"", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v, ok := Parse(tt.raw)
			if !ok {
				t.Fatalf("Parse(%q) reported static", tt.raw)
			}
			if !reflect.DeepEqual(v.Numbers, tt.numbers) {
				t.Errorf("Numbers: expected %v, got %v", tt.numbers, v.Numbers)
			}
			if !reflect.DeepEqual(v.Template, tt.template) {
				t.Errorf("Template: expected %q, got %q", tt.template, v.Template)
			}
		})
	}
}

func TestParseStatic(t *testing.T) {
	for _, raw := range []interface{}{"solid", "", nil, true, []int{1}} {
		if _, ok := Parse(raw); ok {
			t.Errorf("Parse(%v) should be static", raw)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"10px solid #ff0000", "10px solid rgb(255,0,0)"},
		{"rgba(10, 20, 30, 0.5)", "rgba(10,20,30,0.5)"},
		{"1px 2px 3px rgb(0,0,0)", "1px 2px 3px rgb(0,0,0)"},
		{"scale(1.5) rotate(90deg)", "scale(1.5) rotate(90deg)"},
		{"#f008", "rgba(255,0,0,0.5333333333333333)"},
	}

	for _, tt := range tests {
		v, ok := Parse(tt.raw)
		if !ok {
			t.Fatalf("Parse(%q) reported static", tt.raw)
		}
		if got := Recombine(v.Numbers, v.Template); got != tt.expected {
			t.Errorf("Recombine(Parse(%q)) = %q, expected %q", tt.raw, got, tt.expected)
		}
	}
}

func TestRecombineRoundsChannels(t *testing.T) {
	template := []string{"rgba(", ",", ",", ",", ")"}
	got := Recombine([]float64{127.5, 0.4, 254.49, 0.25}, template)
	if got != "rgba(128,0,254,0.25)" {
		t.Errorf("Expected rounded channels, got %q", got)
	}

	// Numbers outside color functions keep their precision.
	got = Recombine([]float64{1.25, 127.5, 0, 0}, []string{"", "px solid rgb(", ",", ",", ")"})
	if got != "1.25px solid rgb(128,0,0)" {
		t.Errorf("Expected only channels rounded, got %q", got)
	}
}

func TestNamedColors(t *testing.T) {
	c := Codec{NamedColors: true}
	v, ok := c.Parse("1px solid red")
	if !ok {
		t.Fatal("Expected named color to parse")
	}
	if !reflect.DeepEqual(v.Numbers, []float64{1, 255, 0, 0}) {
		t.Errorf("Expected red channels, got %v", v.Numbers)
	}

	// The default codec leaves keywords alone.
	v, _ = Parse("1px solid red")
	if len(v.Numbers) != 1 {
		t.Errorf("Expected keyword untouched by default codec, got %v", v.Numbers)
	}
}

func TestExpandHexColorsIgnoresOddLengths(t *testing.T) {
	if got := ExpandHexColors("#12345"); got != "#12345" {
		t.Errorf("Expected 5-digit hex untouched, got %q", got)
	}
	if got := ExpandHexColors("#ff0000ff00"); got != "#ff0000ff00" {
		t.Errorf("Expected 10-digit hex untouched, got %q", got)
	}
	if got := ExpandHexColors("#ff0000ff"); got != "rgba(255,0,0,1)" {
		t.Errorf("Expected 8-digit hex expanded, got %q", got)
	}
	if got := ExpandHexColors("#FFFFFF"); got != "rgb(255,255,255)" {
		t.Errorf("Expected uppercase hex expanded, got %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(math.Copysign(0, -1)); got != "0" {
		t.Errorf("Expected negative zero to print as 0, got %q", got)
	}
	a, b := 0.1, 0.2
	if got := FormatNumber(a + b); got != "0.30000000000000004" {
		t.Errorf("Unexpected format %q", got)
	}
}
