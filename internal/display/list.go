package display

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/krakaran/internal/catalog"
)

// listScreen shows the catalog: search bar, category pills, and the
// filtered recipe list. Each instance owns a fresh catalog store,
// refreshed on activation (re-entering the screen re-fetches).
type listScreen struct {
	deps  Deps
	store *catalog.Store

	search  textinput.Model
	spin    spinner.Model
	loading bool
	cursor  int
}

type listRefreshedMsg struct{}
type deleteDoneMsg struct{}

func newListScreen(deps Deps, match []string) *listScreen {
	store := catalog.New(deps.Recipes, deps.Categories, deps.Log.Named("catalog"))
	if match != nil {
		store.SetMatchRequest(match)
	}

	search := textinput.New()
	search.Placeholder = "search recipes"
	search.Prompt = "/ "
	search.CharLimit = 100

	return &listScreen{
		deps:   deps,
		store:  store,
		search: search,
		spin:   spinner.New(),
	}
}

func (s *listScreen) Init() tea.Cmd {
	s.loading = true
	return tea.Batch(s.spin.Tick, s.refreshCmd())
}

func (s *listScreen) teardown() {
	s.store.Invalidate()
}

func (s *listScreen) refreshCmd() tea.Cmd {
	store := s.store
	return func() tea.Msg {
		if err := store.Refresh(context.Background()); err != nil {
			return failureMsg{err: err}
		}
		return listRefreshedMsg{}
	}
}

func (s *listScreen) confirmDeleteCmd() tea.Cmd {
	store := s.store
	return func() tea.Msg {
		if err := store.ConfirmDelete(context.Background()); err != nil {
			return failureMsg{err: err}
		}
		return deleteDoneMsg{}
	}
}

func (s *listScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case listRefreshedMsg:
		s.loading = false
		s.clampCursor()
		return s, nil

	case deleteDoneMsg:
		s.clampCursor()
		return s, func() tea.Msg { return noticeMsg{text: "recipe deleted"} }

	case failureMsg:
		s.loading = false
		return s, nil

	case spinner.TickMsg:
		if !s.loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		// Delete confirmation has its own tiny mode.
		if s.store.PendingDelete() != "" {
			switch msg.String() {
			case "y":
				return s, s.confirmDeleteCmd()
			default:
				s.store.CancelDelete()
			}
			return s, nil
		}

		if s.search.Focused() {
			switch msg.String() {
			case "enter", "esc":
				s.search.Blur()
				return s, nil
			default:
				var cmd tea.Cmd
				s.search, cmd = s.search.Update(msg)
				s.store.SetSearch(s.search.Value())
				s.clampCursor()
				return s, cmd
			}
		}

		switch msg.String() {
		case "/":
			return s, s.search.Focus()
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.store.Visible())-1 {
				s.cursor++
			}
		case "enter":
			if visible := s.store.Visible(); s.cursor < len(visible) {
				id := visible[s.cursor].ID
				return s, func() tea.Msg { return showViewMsg{recipeID: id} }
			}
		case "n":
			return s, func() tea.Msg { return showFormMsg{} }
		case "e":
			if visible := s.store.Visible(); s.cursor < len(visible) {
				id := visible[s.cursor].ID
				return s, func() tea.Msg { return showFormMsg{recipeID: id} }
			}
		case "d":
			if visible := s.store.Visible(); s.cursor < len(visible) {
				s.store.RequestDelete(visible[s.cursor].ID)
			}
		case "r":
			s.loading = true
			return s, tea.Batch(s.spin.Tick, s.refreshCmd())
		case "p":
			return s, func() tea.Msg { return showPantryMsg{} }
		case "0":
			s.store.ClearCategory()
			s.clampCursor()
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			cats := s.store.Categories()
			idx := int(msg.String()[0] - '1')
			if idx < len(cats) {
				s.store.ToggleCategory(cats[idx])
				s.clampCursor()
			}
		}
	}
	return s, nil
}

func (s *listScreen) clampCursor() {
	if n := len(s.store.Visible()); s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *listScreen) View(width int) string {
	if s.loading {
		return "\n  " + s.spin.View() + secondaryStyle.Render(" loading recipes...")
	}

	out := "\n  " + s.search.View() + "\n\n"

	// Category pills: "all" plus the vocabulary, numbered for toggling.
	selected := s.store.SelectedCategory()
	pills := pillStyle.Render("0:all")
	if selected == "" {
		pills = pillSelectedStyle.Render("0:all")
	}
	for i, cat := range s.store.Categories() {
		label := fmt.Sprintf("%d:%s", i+1, cat)
		if cat == selected {
			pills += " " + pillSelectedStyle.Render(label)
		} else {
			pills += " " + pillStyle.Render(label)
		}
	}
	out += "  " + pills + "\n\n"

	visible := s.store.Visible()
	if len(visible) == 0 {
		out += secondaryStyle.Render("  No recipes found.") + "\n"
	}
	for i, r := range visible {
		line := r.Title
		if r.Category != "" {
			line += secondaryStyle.Render("  · " + r.Category)
		}
		if i == s.cursor {
			out += cursorStyle.Render("  > ") + primaryStyle.Render(line) + "\n"
		} else {
			out += "    " + primaryStyle.Render(line) + "\n"
		}
	}

	if id := s.store.PendingDelete(); id != "" {
		title := id
		if r, ok := s.store.Find(id); ok {
			title = r.Title
		}
		out += "\n" + noticeStyle.Render(fmt.Sprintf("  delete %q permanently? (y/n)", title)) + "\n"
	}

	out += helpStyle.Render("\n  enter view · e edit · n new · d delete · / search · 1-9 category · p pantry · r refresh · ctrl+c quit")
	return out
}
