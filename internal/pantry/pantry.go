// Package pantry tracks the user's on-hand ingredient selection and
// turns it into a catalog match request.
package pantry

import (
	"context"
	"sync"

	"github.com/hammamikhairi/krakaran/internal/domain"
	"github.com/hammamikhairi/krakaran/internal/logger"
	"github.com/hammamikhairi/krakaran/internal/text"
)

// Selector holds the pantry selection for one screen context. The
// selection is an ordered set: toggling preserves first-selection
// order and toggling the same name twice is a no-op pair.
type Selector struct {
	mu sync.Mutex

	master     []string
	selected   []string
	searchTerm string

	src domain.IngredientSource
	log *logger.Logger
}

// New creates an empty selector.
func New(src domain.IngredientSource, log *logger.Logger) *Selector {
	return &Selector{src: src, log: log}
}

// Load fetches the master ingredient list. Called on each screen
// activation; the previous selection is kept.
func (p *Selector) Load(ctx context.Context) error {
	names, err := p.src.Ingredients(ctx)
	if err != nil {
		p.log.Error("loading master ingredients: %v", err)
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.master = names
	p.log.Debug("loaded %d master ingredients", len(names))
	return nil
}

// SetSearch updates the ingredient search filter.
func (p *Selector) SetSearch(term string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.searchTerm = term
}

// Visible returns the master list filtered by the search term.
func (p *Selector) Visible() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return text.FilterFold(p.master, p.searchTerm)
}

// Toggle adds name to the selection, or removes it if already
// selected. Relative order of the remaining names is preserved.
func (p *Selector) Toggle(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, sel := range p.selected {
		if sel == name {
			p.selected = append(p.selected[:i], p.selected[i+1:]...)
			return
		}
	}
	p.selected = append(p.selected, name)
}

// IsSelected reports whether name is in the selection.
func (p *Selector) IsSelected(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, sel := range p.selected {
		if sel == name {
			return true
		}
	}
	return false
}

// Count returns the number of selected ingredients.
func (p *Selector) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.selected)
}

// FindMatches returns a copy of the selection for handoff to the
// catalog store. With an empty selection it performs nothing and
// returns a validation failure; no request is ever issued from here.
// The selection itself is kept so the user can adjust and retry; the
// handoff copy is consumed by the catalog on success.
func (p *Selector) FindMatches() ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.selected) == 0 {
		return nil, domain.Validation("select at least one ingredient")
	}
	out := make([]string, len(p.selected))
	copy(out, p.selected)
	p.log.Info("pantry match requested with %d ingredients", len(out))
	return out, nil
}

// Reset clears the selection and the search term.
func (p *Selector) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selected = nil
	p.searchTerm = ""
}
