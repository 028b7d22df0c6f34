package display

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/krakaran/internal/picker"
)

// pickerOverlay is the "add ingredient" modal: search the master
// vocabulary, pick an entry, or create a new name when no exact match
// exists.
type pickerOverlay struct {
	picker *picker.Picker
	search textinput.Model
	cursor int
	loaded bool
}

type pickerLoadedMsg struct{}

func newPickerOverlay(deps Deps) *pickerOverlay {
	search := textinput.New()
	search.Placeholder = "search for an ingredient"
	search.Prompt = "/ "
	search.Focus()

	return &pickerOverlay{
		picker: picker.New(deps.Ingredients, deps.Log.Named("picker")),
		search: search,
	}
}

func (o *pickerOverlay) init() tea.Cmd {
	p := o.picker
	return tea.Batch(textinput.Blink, func() tea.Msg {
		if err := p.Load(context.Background()); err != nil {
			return failureMsg{err: err}
		}
		return pickerLoadedMsg{}
	})
}

// update consumes a message. done reports the overlay is finished;
// name is the chosen ingredient, or "" when cancelled.
func (o *pickerOverlay) update(msg tea.Msg) (done bool, name string, cmd tea.Cmd) {
	switch msg := msg.(type) {
	case pickerLoadedMsg:
		o.loaded = true
		return false, "", nil

	case failureMsg:
		// Load failed; the app shows the notice, close the modal.
		return true, "", nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return true, "", nil
		case "up":
			if o.cursor > 0 {
				o.cursor--
			}
			return false, "", nil
		case "down":
			if o.cursor < o.rowCount()-1 {
				o.cursor++
			}
			return false, "", nil
		case "enter":
			visible := o.picker.Visible()
			if o.cursor < len(visible) {
				return true, o.picker.SelectExisting(visible[o.cursor]), nil
			}
			if o.picker.CanCreate() {
				created, err := o.picker.CreateAndSelect()
				if err != nil {
					return true, "", fail(err)
				}
				return true, created, nil
			}
			return false, "", nil
		}

		var c tea.Cmd
		o.search, c = o.search.Update(msg)
		o.picker.SetSearch(o.search.Value())
		if n := o.rowCount(); o.cursor >= n && n > 0 {
			o.cursor = n - 1
		}
		return false, "", c
	}
	return false, "", nil
}

// rowCount is the visible entries plus the create row when offered.
func (o *pickerOverlay) rowCount() int {
	n := len(o.picker.Visible())
	if o.picker.CanCreate() {
		n++
	}
	return n
}

func (o *pickerOverlay) view() string {
	out := "\n  " + titleStyle.Render("Add Ingredient") + "\n\n"
	out += "  " + o.search.View() + "\n\n"

	if !o.loaded {
		return out + secondaryStyle.Render("  loading ingredients...")
	}

	visible := o.picker.Visible()
	for i, name := range visible {
		if i == o.cursor {
			out += cursorStyle.Render("  > ") + primaryStyle.Render(name) + "\n"
		} else {
			out += "    " + primaryStyle.Render(name) + "\n"
		}
	}
	if len(visible) == 0 && !o.picker.CanCreate() {
		out += secondaryStyle.Render("  No ingredients match your search.") + "\n"
	}

	// The create affordance only appears without an exact match.
	if o.picker.CanCreate() {
		label := "+ add \"" + o.picker.Search() + "\" as a new ingredient"
		if o.cursor == len(visible) {
			out += cursorStyle.Render("  > ") + selectedStyle.Render(label) + "\n"
		} else {
			out += "    " + selectedStyle.Render(label) + "\n"
		}
	}

	out += helpStyle.Render("\n  enter select · esc cancel")
	return out
}
