// Package catalog holds the working set of recipes shown to the user,
// either the full listing or a pantry-match subset, together with the
// active search/category filters and the two-phase delete flow.
//
// A Store is owned by exactly one screen context. The mutex exists
// because Bubble Tea commands resolve on their own goroutines, not
// because multiple screens ever share a store.
package catalog

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hammamikhairi/krakaran/internal/domain"
	"github.com/hammamikhairi/krakaran/internal/logger"
)

// Store is the catalog state for one screen context.
type Store struct {
	mu sync.Mutex

	recipes    []domain.Recipe
	categories []string

	searchTerm       string
	selectedCategory string

	// pendingMatch is the one-shot pantry handoff. Consumed (cleared)
	// by the first Refresh that successfully resolves it, so a later
	// benign re-activation does not replay a stale match.
	pendingMatch []string

	// pendingDelete is the recipe awaiting delete confirmation.
	pendingDelete string

	// gen guards against stale population results. Every populating
	// operation snapshots the generation at start; a commit whose
	// generation is no longer current is discarded. Last writer wins.
	gen uint64

	svc  domain.RecipeService
	cats domain.CategorySource
	log  *logger.Logger
}

// New creates an empty catalog store.
func New(svc domain.RecipeService, cats domain.CategorySource, log *logger.Logger) *Store {
	return &Store{svc: svc, cats: cats, log: log}
}

// ── Filters ──────────────────────────────────────────────────────

// SetSearch updates the free-text filter.
func (s *Store) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchTerm = term
}

// Search returns the current free-text filter.
func (s *Store) Search() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchTerm
}

// ToggleCategory selects a category, or clears the selection when the
// currently selected category is toggled again. At most one category
// is active at a time.
func (s *Store) ToggleCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedCategory == category {
		s.selectedCategory = ""
	} else {
		s.selectedCategory = category
	}
}

// ClearCategory unselects any active category.
func (s *Store) ClearCategory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedCategory = ""
}

// SelectedCategory returns the active category, or "" for none.
func (s *Store) SelectedCategory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedCategory
}

// Categories returns the category vocabulary.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out
}

// Visible derives the filtered recipe list from the current state.
func (s *Store) Visible() []domain.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Derive(s.recipes, s.searchTerm, s.selectedCategory)
}

// Find returns the catalog entry with the given id, if present.
func (s *Store) Find(id string) (domain.Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.recipes {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Recipe{}, false
}

// ── Population ───────────────────────────────────────────────────

// SetMatchRequest arms the one-shot pantry handoff. The next Refresh
// resolves it instead of the normal listing.
func (s *Store) SetMatchRequest(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingMatch = make([]string, len(names))
	copy(s.pendingMatch, names)
	s.log.Debug("match request armed (%d ingredients)", len(names))
}

// Refresh populates the store. With a pending match request it runs
// the ingredient-overlap query and replaces the recipe set only,
// leaving the category vocabulary untouched; otherwise it fetches the
// full listing and the categories concurrently and replaces both.
//
// On failure the prior state is left untouched and the match request,
// if any, stays armed. A result arriving after a newer population
// started (or after Invalidate) is discarded.
func (s *Store) Refresh(ctx context.Context) error {
	gen, pending := s.begin()

	if pending != nil {
		matches, err := s.svc.FindByIngredients(ctx, pending)
		if err != nil {
			s.log.Error("pantry match failed: %v", err)
			return err
		}
		s.commitMatches(gen, matches)
		return nil
	}

	var (
		recipes    []domain.Recipe
		categories []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recipes, err = s.svc.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.cats.Categories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error("catalog refresh failed: %v", err)
		return err
	}
	s.commitAll(gen, recipes, categories)
	return nil
}

// Invalidate discards any in-flight population result. Called on
// screen teardown so a late response never writes to a dead context.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
}

// begin starts a population operation, superseding any in-flight one,
// and snapshots the pending match request without consuming it.
func (s *Store) begin() (uint64, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.pendingMatch == nil {
		return s.gen, nil
	}
	pending := make([]string, len(s.pendingMatch))
	copy(pending, s.pendingMatch)
	return s.gen, pending
}

func (s *Store) commitMatches(gen uint64, matches []domain.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		s.log.Debug("discarding superseded match result (gen %d != %d)", gen, s.gen)
		return
	}
	s.recipes = matches
	s.pendingMatch = nil // consumed
	s.log.Info("catalog now showing %d pantry matches", len(matches))
}

func (s *Store) commitAll(gen uint64, recipes []domain.Recipe, categories []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		s.log.Debug("discarding superseded refresh result (gen %d != %d)", gen, s.gen)
		return
	}
	s.recipes = recipes
	s.categories = categories
	s.log.Debug("catalog refreshed: %d recipes, %d categories", len(recipes), len(categories))
}

// ── Deletion ─────────────────────────────────────────────────────

// RequestDelete records the intent to delete a recipe. Nothing is
// issued until ConfirmDelete.
func (s *Store) RequestDelete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDelete = id
}

// PendingDelete returns the recipe id awaiting confirmation, or "".
func (s *Store) PendingDelete() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingDelete
}

// CancelDelete withdraws a pending delete request.
func (s *Store) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDelete = ""
}

// ConfirmDelete issues the remote delete for the pending request. The
// local entry is removed only after the service acknowledges, so a
// failed delete never hides a recipe that still exists.
func (s *Store) ConfirmDelete(ctx context.Context) error {
	s.mu.Lock()
	id := s.pendingDelete
	s.mu.Unlock()
	if id == "" {
		return domain.Validation("no delete pending")
	}

	if err := s.svc.Delete(ctx, id); err != nil {
		s.log.Error("delete failed for id=%s: %v", id, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.recipes[:0:0]
	for _, r := range s.recipes {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.recipes = kept
	s.pendingDelete = ""
	s.log.Info("removed recipe id=%s from catalog", id)
	return nil
}
