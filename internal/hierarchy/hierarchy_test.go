package hierarchy

import (
	"reflect"
	"testing"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		want   bool
	}{
		{"a", "a", true},
		{"a::b", "a", true},
		{"a::c::d", "a", true},
		{"ab", "a", false},
		{"a:b", "a", false},
		{"b::a", "a", false},
		{"a", "a::b", false},
		{"A::b", "a", false},
		{"anything", "", true},
		{"a::b::c", "a::b", true},
		{"a::bc", "a::b", false},
	}

	for _, tt := range tests {
		if got := Matches(tt.name, tt.filter); got != tt.want {
			t.Errorf("Matches(%q, %q) = %v, want %v", tt.name, tt.filter, got, tt.want)
		}
	}
}

func TestParent(t *testing.T) {
	if p, ok := Parent("a::b::c"); !ok || p != "a::b" {
		t.Errorf("Parent(a::b::c) = %q, %v", p, ok)
	}
	if _, ok := Parent("a"); ok {
		t.Error("Parent(a) should have no parent")
	}
}

func TestSegments(t *testing.T) {
	got := Segments("work::ops::deploy")
	want := []string{"work", "ops", "deploy"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Segments = %v, want %v", got, want)
	}
}
