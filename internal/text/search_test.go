package text

import (
	"reflect"
	"testing"
)

func TestContainsFold(t *testing.T) {
	tests := []struct {
		s, substr string
		want      bool
	}{
		{"Pancakes", "pan", true},
		{"Pancakes", "PAN", true},
		{"Pancakes", "", true},
		{"Soup", "pan", false},
		{"", "x", false},
	}
	for _, tt := range tests {
		if got := ContainsFold(tt.s, tt.substr); got != tt.want {
			t.Errorf("ContainsFold(%q, %q) = %v, want %v", tt.s, tt.substr, got, tt.want)
		}
	}
}

func TestFilterFold(t *testing.T) {
	items := []string{"Flour", "Sugar", "Brown Sugar"}

	got := FilterFold(items, "sugar")
	want := []string{"Sugar", "Brown Sugar"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FilterFold = %v, want %v", got, want)
	}

	// Empty filter returns everything in order.
	if got := FilterFold(items, ""); !reflect.DeepEqual(got, items) {
		t.Fatalf("FilterFold(\"\") = %v", got)
	}
}
