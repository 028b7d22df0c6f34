package display

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/krakaran/internal/domain"
)

// viewScreen shows one recipe read-only, with per-ingredient and
// per-step checklists the cook ticks off while working. Checklist
// state is session-local and index-keyed, never persisted.
type viewScreen struct {
	deps     Deps
	recipeID string

	recipe  *domain.Recipe
	missing bool

	spin    spinner.Model
	loading bool

	cursor       int
	checkedIngr  map[int]bool
	checkedSteps map[int]bool
}

type recipeLoadedMsg struct{ recipe *domain.Recipe }
type recipeMissingMsg struct{}

func newViewScreen(deps Deps, recipeID string) *viewScreen {
	return &viewScreen{
		deps:         deps,
		recipeID:     recipeID,
		spin:         spinner.New(),
		checkedIngr:  make(map[int]bool),
		checkedSteps: make(map[int]bool),
	}
}

func (s *viewScreen) Init() tea.Cmd {
	s.loading = true
	deps, id := s.deps, s.recipeID
	return tea.Batch(s.spin.Tick, func() tea.Msg {
		recipe, err := deps.Recipes.Get(context.Background(), id)
		if err != nil {
			if domain.KindOf(err) == domain.FailNotFound {
				return recipeMissingMsg{}
			}
			return failureMsg{err: err}
		}
		return recipeLoadedMsg{recipe: recipe}
	})
}

// rows counts the navigable checklist rows.
func (s *viewScreen) rows() int {
	if s.recipe == nil {
		return 0
	}
	return len(s.recipe.Ingredients) + len(s.recipe.Steps)
}

// toggle flips the checklist entry under the cursor. Toggling twice
// restores the original state.
func (s *viewScreen) toggle() {
	if s.recipe == nil {
		return
	}
	if s.cursor < len(s.recipe.Ingredients) {
		s.checkedIngr[s.cursor] = !s.checkedIngr[s.cursor]
	} else {
		idx := s.cursor - len(s.recipe.Ingredients)
		s.checkedSteps[idx] = !s.checkedSteps[idx]
	}
}

func (s *viewScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recipeLoadedMsg:
		s.loading = false
		s.recipe = msg.recipe
		return s, nil

	case recipeMissingMsg:
		s.loading = false
		s.missing = true
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
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < s.rows()-1 {
				s.cursor++
			}
		case " ", "space":
			s.toggle()
		case "e":
			if s.recipe != nil {
				id := s.recipe.ID
				return s, func() tea.Msg { return showFormMsg{recipeID: id} }
			}
		case "q", "b":
			return s, func() tea.Msg { return showListMsg{} }
		}
	}
	return s, nil
}

func (s *viewScreen) View(width int) string {
	if s.loading {
		return "\n  " + s.spin.View() + secondaryStyle.Render(" loading recipe...")
	}
	if s.missing {
		return "\n" + noticeStyle.Render("  Recipe not found.") +
			helpStyle.Render("\n\n  b back")
	}
	if s.recipe == nil {
		return ""
	}

	out := "\n  " + titleStyle.Render(s.recipe.Title)
	if s.recipe.Category != "" {
		out += "  " + pillSelectedStyle.Render(s.recipe.Category)
	}
	if s.recipe.CoverImageURL != "" {
		out += "\n  " + secondaryStyle.Render(s.recipe.CoverImageURL)
	}
	out += "\n\n" + headerStyle.Render("  Ingredients") + "\n"

	row := 0
	for i, ing := range s.recipe.Ingredients {
		out += s.checkRow(row, s.checkedIngr[i],
			fmt.Sprintf("%s %s", ing.Amount, ing.Name))
		row++
	}
	if len(s.recipe.Ingredients) == 0 {
		out += secondaryStyle.Render("    (none)") + "\n"
	}

	out += "\n" + headerStyle.Render("  Steps") + "\n"
	for i, step := range s.recipe.Steps {
		label := step.Header
		if label == "" {
			label = fmt.Sprintf("Step %d", i+1)
		}
		text := label
		if step.Description != "" {
			text += secondaryStyle.Render(": " + step.Description)
		}
		out += s.checkRow(row, s.checkedSteps[i], text)
		row++
	}
	if len(s.recipe.Steps) == 0 {
		out += secondaryStyle.Render("    (none)") + "\n"
	}

	out += helpStyle.Render("\n  space toggle · e edit · b back · ctrl+c quit")
	return out
}

func (s *viewScreen) checkRow(row int, checked bool, text string) string {
	box := "[ ]"
	style := primaryStyle
	if checked {
		box = "[x]"
		style = checkedStyle
	}
	prefix := "    "
	if row == s.cursor {
		prefix = cursorStyle.Render("  > ")
	}
	return prefix + style.Render(box+" "+text) + "\n"
}
