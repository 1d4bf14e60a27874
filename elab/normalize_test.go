package elab

import (
	"reflect"
	"testing"
)

func TestNormalizeCode_Variants(t *testing.T) {
	cases := []struct {
		in       string
		expected []string
	}{
		{"007", []string{"007", "7"}},
		{"7", []string{"7"}},
		{"  7  ", []string{"7"}},
		{"0", []string{"0"}},
		{"000", []string{"000", "0"}},
		{"12.0", []string{"12.0", "12"}},
		{"012.0", []string{"012.0", "12.0", "12"}},
		{"ABC", []string{"ABC"}},
		{"0A1", []string{"0A1", "A1"}},
	}
	for _, tc := range cases {
		got := NormalizeCode(tc.in)
		if !reflect.DeepEqual(got, tc.expected) {
			t.Fatalf("NormalizeCode(%q) expected %v, got %v", tc.in, tc.expected, got)
		}
	}
}

func TestNormalizeCode_Empty(t *testing.T) {
	if got := NormalizeCode(""); len(got) != 0 {
		t.Fatalf("NormalizeCode(\"\") expected no variants, got %v", got)
	}
	if got := NormalizeCode("   "); len(got) != 0 {
		t.Fatalf("NormalizeCode(blank) expected no variants, got %v", got)
	}
}
