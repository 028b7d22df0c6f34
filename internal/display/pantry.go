package display

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/krakaran/internal/pantry"
)

// pantryScreen lets the user tick off on-hand ingredients and ask for
// makeable recipes. The selector itself lives on the App so the
// selection survives switching tabs.
type pantryScreen struct {
	deps Deps
	sel  *pantry.Selector

	search  textinput.Model
	spin    spinner.Model
	loading bool
	cursor  int
}

type pantryLoadedMsg struct{}

func newPantryScreen(deps Deps, sel *pantry.Selector) *pantryScreen {
	search := textinput.New()
	search.Placeholder = "search for an ingredient"
	search.Prompt = "/ "

	return &pantryScreen{
		deps:   deps,
		sel:    sel,
		search: search,
		spin:   spinner.New(),
	}
}

func (s *pantryScreen) Init() tea.Cmd {
	s.loading = true
	sel := s.sel
	return tea.Batch(s.spin.Tick, func() tea.Msg {
		if err := sel.Load(context.Background()); err != nil {
			return failureMsg{err: err}
		}
		return pantryLoadedMsg{}
	})
}

func (s *pantryScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case pantryLoadedMsg:
		s.loading = false
		return s, nil

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
		if s.search.Focused() {
			switch msg.String() {
			case "enter", "esc":
				s.search.Blur()
				return s, nil
			default:
				var cmd tea.Cmd
				s.search, cmd = s.search.Update(msg)
				s.sel.SetSearch(s.search.Value())
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
			if s.cursor < len(s.sel.Visible())-1 {
				s.cursor++
			}
		case " ", "space":
			if visible := s.sel.Visible(); s.cursor < len(visible) {
				s.sel.Toggle(visible[s.cursor])
			}
		case "f", "enter":
			// Hand the selection off to a fresh catalog as a one-shot
			// match request.
			names, err := s.sel.FindMatches()
			if err != nil {
				return s, fail(err)
			}
			return s, func() tea.Msg { return showListMsg{match: names} }
		case "c":
			s.sel.Reset()
			s.search.SetValue("")
		case "b", "q":
			return s, func() tea.Msg { return showListMsg{} }
		}
	}
	return s, nil
}

func (s *pantryScreen) clampCursor() {
	if n := len(s.sel.Visible()); s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *pantryScreen) View(width int) string {
	if s.loading {
		return "\n  " + s.spin.View() + secondaryStyle.Render(" loading ingredients...")
	}

	out := "\n  " + titleStyle.Render("What's in your Pantry?") + "\n"
	out += secondaryStyle.Render("  Select ingredients to get recipe suggestions.") + "\n\n"
	out += "  " + s.search.View() + "\n\n"

	visible := s.sel.Visible()
	if len(visible) == 0 {
		out += secondaryStyle.Render("  No ingredients match your search.") + "\n"
	}
	for i, name := range visible {
		box := "[ ]"
		style := primaryStyle
		if s.sel.IsSelected(name) {
			box = "[x]"
			style = selectedStyle
		}
		if i == s.cursor {
			out += cursorStyle.Render("  > ") + style.Render(box+" "+name) + "\n"
		} else {
			out += "    " + style.Render(box+" "+name) + "\n"
		}
	}

	out += helpStyle.Render(fmt.Sprintf(
		"\n  space toggle · f find recipes (%d) · c clear · / search · b back · ctrl+c quit",
		s.sel.Count()))
	return out
}
