// Package picker implements the ingredient autocomplete used by the
// recipe form: search the master vocabulary, select an existing name,
// or create a new one ad hoc.
package picker

import (
	"context"
	"strings"
	"sync"

	"github.com/hammamikhairi/krakaran/internal/domain"
	"github.com/hammamikhairi/krakaran/internal/logger"
	"github.com/hammamikhairi/krakaran/internal/text"
)

// Picker is the master-list autocomplete state for one activation.
type Picker struct {
	mu sync.Mutex

	master     []string
	searchTerm string

	src domain.IngredientSource
	log *logger.Logger
}

// New creates a picker.
func New(src domain.IngredientSource, log *logger.Logger) *Picker {
	return &Picker{src: src, log: log}
}

// Load fetches the master ingredient list. Called each time the
// picker is opened.
func (p *Picker) Load(ctx context.Context) error {
	names, err := p.src.Ingredients(ctx)
	if err != nil {
		p.log.Error("loading master ingredients: %v", err)
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.master = names
	return nil
}

// SetSearch updates the search text.
func (p *Picker) SetSearch(term string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.searchTerm = term
}

// Search returns the current search text.
func (p *Picker) Search() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.searchTerm
}

// Visible returns the master list filtered by the search text,
// case-insensitive substring.
func (p *Picker) Visible() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return text.FilterFold(p.master, p.searchTerm)
}

// CanCreate reports whether the "create new ingredient" affordance
// should be offered: the search text is non-blank after trimming and
// no master entry case-insensitively equals it. When an exact match
// exists, SelectExisting is the only path.
func (p *Picker) CanCreate() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.canCreateLocked()
}

func (p *Picker) canCreateLocked() bool {
	trimmed := strings.TrimSpace(p.searchTerm)
	if trimmed == "" {
		return false
	}
	for _, name := range p.master {
		if text.EqualFold(name, trimmed) {
			return false
		}
	}
	return true
}

// SelectExisting returns name to the caller and resets the search
// text for the next activation.
func (p *Picker) SelectExisting(name string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.searchTerm = ""
	p.log.Debug("selected existing ingredient %q", name)
	return name
}

// CreateAndSelect appends the trimmed search text to the in-memory
// master view and returns it. It does not persist the new name: the
// caller embeds it in the recipe payload and the collaborator's master
// list is the source of truth for later sessions.
func (p *Picker) CreateAndSelect() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.canCreateLocked() {
		return "", domain.Validation("ingredient already exists or name is blank")
	}
	name := strings.TrimSpace(p.searchTerm)
	p.master = append(p.master, name)
	p.searchTerm = ""
	p.log.Info("created ad-hoc ingredient %q", name)
	return name, nil
}
