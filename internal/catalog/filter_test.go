package catalog

import (
	"reflect"
	"testing"

	"github.com/hammamikhairi/krakaran/internal/domain"
)

func sampleCatalog() []domain.Recipe {
	return []domain.Recipe{
		{ID: "1", Title: "Pancakes", Category: "Breakfast"},
		{ID: "2", Title: "Soup", Category: "Dinner"},
		{ID: "3", Title: "Pan-Seared Trout", Category: "Dinner"},
	}
}

func titles(recipes []domain.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Title
	}
	return out
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name     string
		search   string
		category string
		want     []string
	}{
		{"no filters", "", "", []string{"Pancakes", "Soup", "Pan-Seared Trout"}},
		{"text match", "pan", "", []string{"Pancakes", "Pan-Seared Trout"}},
		{"text match case insensitive", "PAN", "", []string{"Pancakes", "Pan-Seared Trout"}},
		{"category match", "", "Dinner", []string{"Soup", "Pan-Seared Trout"}},
		{"both predicates", "pan", "Dinner", []string{"Pan-Seared Trout"}},
		{"no matches", "pizza", "", []string{}},
		{"category is exact, not substring", "", "Din", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := titles(Derive(sampleCatalog(), tt.search, tt.category))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Derive(%q, %q) = %v, want %v", tt.search, tt.category, got, tt.want)
			}
		})
	}
}

func TestDeriveIdempotent(t *testing.T) {
	catalog := sampleCatalog()
	once := Derive(catalog, "pan", "Dinner")
	twice := Derive(once, "pan", "Dinner")
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("derive not idempotent: %v vs %v", once, twice)
	}
}

func TestDerivePreservesOrderAndInput(t *testing.T) {
	catalog := sampleCatalog()
	got := Derive(catalog, "", "Dinner")
	if len(got) != 2 || got[0].ID != "2" || got[1].ID != "3" {
		t.Fatalf("insertion order not preserved: %v", titles(got))
	}
	if len(catalog) != 3 {
		t.Fatal("input catalog was mutated")
	}
}
