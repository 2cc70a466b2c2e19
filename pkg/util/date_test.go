package util

import (
	"testing"
	"time"
)

func TestParseTime(t *testing.T) {
	if _, ok := ParseTime(""); ok {
		t.Fatalf("empty string parsed")
	}
	got, ok := ParseTime("2024-01-15T09:30:00Z")
	if !ok {
		t.Fatalf("RFC3339 not parsed")
	}
	want := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	got, ok = ParseTime("1705310400")
	if !ok {
		t.Fatalf("unix seconds not parsed")
	}
	if got.Unix() != 1705310400 {
		t.Fatalf("unix parse mismatch: %d", got.Unix())
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := ParseTimeDefault("not-a-time", def); !got.Equal(def) {
		t.Fatalf("invalid input did not fall back to default")
	}
}
