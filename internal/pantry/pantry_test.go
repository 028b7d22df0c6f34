package pantry

import (
	"context"
	"reflect"
	"testing"

	"github.com/hammamikhairi/krakaran/internal/domain"
	"github.com/hammamikhairi/krakaran/internal/logger"
)

type fakeIngredients struct {
	names []string
	calls int
	err   error
}

func (f *fakeIngredients) Ingredients(ctx context.Context) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.names, nil
}

func setupSelector(t *testing.T) (*Selector, *fakeIngredients) {
	t.Helper()
	src := &fakeIngredients{names: []string{"Flour", "Sugar", "Brown Sugar", "Eggs"}}
	sel := New(src, logger.New(logger.LevelOff, nil))
	if err := sel.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return sel, src
}

func TestToggleIsInvolutive(t *testing.T) {
	sel, _ := setupSelector(t)

	sel.Toggle("Flour")
	if !sel.IsSelected("Flour") {
		t.Fatal("Flour should be selected")
	}
	sel.Toggle("Flour")
	if sel.IsSelected("Flour") {
		t.Fatal("second toggle should unselect Flour")
	}
	if sel.Count() != 0 {
		t.Fatalf("expected empty selection, got %d", sel.Count())
	}
}

func TestTogglePreservesOrder(t *testing.T) {
	sel, _ := setupSelector(t)

	sel.Toggle("Eggs")
	sel.Toggle("Flour")
	sel.Toggle("Sugar")
	sel.Toggle("Flour") // remove the middle one

	got, err := sel.FindMatches()
	if err != nil {
		t.Fatalf("find matches: %v", err)
	}
	want := []string{"Eggs", "Sugar"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("selection order = %v, want %v", got, want)
	}
}

func TestFindMatchesEmptySelection(t *testing.T) {
	sel, _ := setupSelector(t)

	names, err := sel.FindMatches()
	if names != nil {
		t.Fatalf("expected no handoff, got %v", names)
	}
	if domain.KindOf(err) != domain.FailValidation {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestSearchFiltersMasterList(t *testing.T) {
	sel, _ := setupSelector(t)

	tests := []struct {
		term string
		want []string
	}{
		{"", []string{"Flour", "Sugar", "Brown Sugar", "Eggs"}},
		{"sugar", []string{"Sugar", "Brown Sugar"}},
		{"SUGAR", []string{"Sugar", "Brown Sugar"}},
		{"xyz", []string{}},
	}
	for _, tt := range tests {
		sel.SetSearch(tt.term)
		if got := sel.Visible(); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("Visible(%q) = %v, want %v", tt.term, got, tt.want)
		}
	}
}

func TestResetClearsSelection(t *testing.T) {
	sel, _ := setupSelector(t)

	sel.Toggle("Eggs")
	sel.SetSearch("egg")
	sel.Reset()
	if sel.Count() != 0 {
		t.Fatal("reset should clear the selection")
	}
	if got := len(sel.Visible()); got != 4 {
		t.Fatalf("reset should clear the search, got %d visible", got)
	}
}
