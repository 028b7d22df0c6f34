// Package display renders the application as a Bubble Tea program:
// the catalog list, the recipe view, the edit form, and the pantry
// screen. All decision logic lives in the engine packages; this layer
// only renders their state and relays user input and remote results.
package display

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/krakaran/internal/domain"
	"github.com/hammamikhairi/krakaran/internal/logger"
	"github.com/hammamikhairi/krakaran/internal/pantry"
)

// Deps bundles the remote collaborator ports the screens need.
type Deps struct {
	Recipes     domain.RecipeService
	Categories  domain.CategorySource
	Ingredients domain.IngredientSource
	Uploader    domain.ImageUploader
	Log         *logger.Logger
}

// screen is one full-window view. Update returns the screen to show
// next (usually itself).
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screen, tea.Cmd)
	View(width int) string
}

// ── Navigation and shared messages ───────────────────────────────

// showListMsg switches to the catalog list. A non-nil match arms the
// one-shot pantry handoff on the fresh store.
type showListMsg struct{ match []string }

// showViewMsg opens one recipe read-only.
type showViewMsg struct{ recipeID string }

// showFormMsg opens the editor; an empty recipeID means create mode.
type showFormMsg struct{ recipeID string }

// showPantryMsg switches to the pantry tab.
type showPantryMsg struct{}

// failureMsg surfaces an operation failure as a dismissible notice.
type failureMsg struct{ err error }

// noticeMsg surfaces an informational line.
type noticeMsg struct{ text string }

func fail(err error) tea.Cmd {
	return func() tea.Msg { return failureMsg{err: err} }
}

// failureText renders kind + reason for the notice line.
func failureText(err error) string {
	var f *domain.Failure
	if errors.As(err, &f) {
		return fmt.Sprintf("%s failure: %s", f.Kind, f.Reason)
	}
	return err.Error()
}

// ── App ──────────────────────────────────────────────────────────

// App is the root model. It owns the active screen, the pantry
// selection (which survives tab switches), and the notice line.
type App struct {
	deps Deps

	current screen
	pantry  *pantry.Selector

	width  int
	height int

	notice    string
	noticeErr bool
}

// NewApp creates the root model showing the catalog list.
func NewApp(deps Deps) *App {
	return &App{
		deps:    deps,
		current: newListScreen(deps, nil),
		pantry:  pantry.New(deps.Ingredients, deps.Log.Named("pantry")),
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.current.Init()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case failureMsg:
		a.notice = failureText(msg.err)
		a.noticeErr = true
		// Screens also see the failure so they can stop spinners.
		next, cmd := a.current.Update(msg)
		a.current = next
		return a, cmd

	case noticeMsg:
		a.notice = msg.text
		a.noticeErr = false
		return a, nil

	case showListMsg:
		a.teardown()
		a.current = newListScreen(a.deps, msg.match)
		return a, a.current.Init()

	case showViewMsg:
		a.teardown()
		a.current = newViewScreen(a.deps, msg.recipeID)
		return a, a.current.Init()

	case showFormMsg:
		a.teardown()
		a.current = newFormScreen(a.deps, msg.recipeID)
		return a, a.current.Init()

	case showPantryMsg:
		a.teardown()
		a.current = newPantryScreen(a.deps, a.pantry)
		return a, a.current.Init()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "esc":
			if a.notice != "" {
				a.notice = ""
				return a, nil
			}
		}
	}

	next, cmd := a.current.Update(msg)
	a.current = next
	return a, cmd
}

// teardown lets the outgoing screen discard in-flight results.
func (a *App) teardown() {
	if t, ok := a.current.(interface{ teardown() }); ok {
		t.teardown()
	}
}

// View implements tea.Model.
func (a *App) View() string {
	body := a.current.View(a.width)
	if a.notice != "" {
		style := infoNoticeStyle
		if a.noticeErr {
			style = noticeStyle
		}
		body += "\n" + style.Render("  "+a.notice) +
			helpStyle.Render("  (esc to dismiss)")
	}
	return body
}
