package main

import (
	"reflect"
	"testing"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"coach@studio.example", []string{"coach@studio.example"}},
		{" a@x.example , ,b@x.example,", []string{"a@x.example", "b@x.example"}},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("STUDIO_ADDR", "")
	if got := envOrDefault("STUDIO_ADDR", ":8080"); got != ":8080" {
		t.Errorf("got %q, want fallback", got)
	}
	t.Setenv("STUDIO_ADDR", ":9000")
	if got := envOrDefault("STUDIO_ADDR", ":8080"); got != ":9000" {
		t.Errorf("got %q, want :9000", got)
	}
}
