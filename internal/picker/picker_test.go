package picker

import (
	"context"
	"reflect"
	"testing"

	"github.com/hammamikhairi/krakaran/internal/domain"
	"github.com/hammamikhairi/krakaran/internal/logger"
)

type fakeIngredients struct {
	names []string
}

func (f *fakeIngredients) Ingredients(ctx context.Context) ([]string, error) {
	return f.names, nil
}

func setupPicker(t *testing.T) *Picker {
	t.Helper()
	p := New(&fakeIngredients{names: []string{"Flour", "Sugar"}}, logger.New(logger.LevelOff, nil))
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return p
}

func TestVisibleFiltersBySubstring(t *testing.T) {
	p := setupPicker(t)

	p.SetSearch("lou")
	if got := p.Visible(); !reflect.DeepEqual(got, []string{"Flour"}) {
		t.Fatalf("Visible() = %v", got)
	}
}

func TestCanCreate(t *testing.T) {
	p := setupPicker(t)

	tests := []struct {
		name   string
		search string
		want   bool
	}{
		{"empty search", "", false},
		{"whitespace only", "   ", false},
		{"case-insensitive existing match", "flour", false},
		{"existing match with padding", "  Flour  ", false},
		{"genuinely new name", "Cinnamon", true},
		{"prefix of existing is still new", "Sug", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.SetSearch(tt.search)
			if got := p.CanCreate(); got != tt.want {
				t.Fatalf("CanCreate(%q) = %v, want %v", tt.search, got, tt.want)
			}
		})
	}
}

func TestSelectExisting(t *testing.T) {
	p := setupPicker(t)

	p.SetSearch("flour")
	if got := p.SelectExisting("Flour"); got != "Flour" {
		t.Fatalf("SelectExisting returned %q", got)
	}
	if p.Search() != "" {
		t.Fatal("search text should reset after selection")
	}
}

func TestCreateAndSelect(t *testing.T) {
	p := setupPicker(t)

	// Case-insensitive duplicate must be refused.
	p.SetSearch("flour")
	if _, err := p.CreateAndSelect(); domain.KindOf(err) != domain.FailValidation {
		t.Fatalf("expected validation failure for duplicate, got %v", err)
	}

	p.SetSearch("  Cinnamon ")
	name, err := p.CreateAndSelect()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if name != "Cinnamon" {
		t.Fatalf("expected trimmed name, got %q", name)
	}
	if p.Search() != "" {
		t.Fatal("search text should reset after creation")
	}

	// The new name joins the in-memory view.
	p.SetSearch("cinna")
	if got := p.Visible(); !reflect.DeepEqual(got, []string{"Cinnamon"}) {
		t.Fatalf("new ingredient not in view: %v", got)
	}

	// Creating it again is now a duplicate.
	p.SetSearch("cinnamon")
	if p.CanCreate() {
		t.Fatal("created name should block re-creation")
	}
}
