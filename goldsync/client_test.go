package goldsync

import (
	"testing"
	"time"
)

func TestJsonSafe(t *testing.T) {
	cases := []struct {
		name     string
		in       any
		expected any
	}{
		{"nil", nil, nil},
		{"bool", true, true},
		{"int64", int64(42), int64(42)},
		{"int widened", 42, int64(42)},
		{"float", 1.5, 1.5},
		{"string", "abc", "abc"},
		{"decimal bytes kept as string", []byte("10.5000"), "10.5000"},
		{"negative decimal bytes", []byte("-0.25"), "-0.25"},
		{"binary bytes to base64", []byte{0xde, 0xad, 0xbe, 0xef}, "3q2+7w=="},
	}
	for _, tc := range cases {
		if got := jsonSafe(tc.in); got != tc.expected {
			t.Fatalf("%s: jsonSafe(%v) = %v, expected %v", tc.name, tc.in, got, tc.expected)
		}
	}
}

func TestJsonSafe_Time(t *testing.T) {
	ts := time.Date(2025, 1, 31, 8, 30, 0, 0, time.UTC)
	if got := jsonSafe(ts); got != "2025-01-31T08:30:00Z" {
		t.Fatalf("expected RFC 3339 string, got %v", got)
	}
}
