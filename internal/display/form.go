package display

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/krakaran/internal/domain"
	"github.com/hammamikhairi/krakaran/internal/draft"
)

// row kinds for the form's flat focus list.
const (
	rowTitle = iota
	rowCategory
	rowImage
	rowIngredient
	rowAddIngredient
	rowStepHeader
	rowStepDesc
	rowAddStep
	rowSave
)

type formRow struct {
	kind  int
	index int // ingredient or step index
}

// formScreen edits a draft recipe. All mutations go through the draft
// editor; this screen only decides which field the edit buffer writes
// to.
type formScreen struct {
	deps   Deps
	editor *draft.Editor

	recipeID string
	loading  bool
	saving   bool
	spin     spinner.Model

	cursor  int
	editing bool
	buffer  textinput.Model

	picker *pickerOverlay
}

type formLoadedMsg struct{}
type savedMsg struct{ recipe *domain.Recipe }
type imagePickedMsg struct {
	localRef string
	payload  string
}

func newFormScreen(deps Deps, recipeID string) *formScreen {
	buffer := textinput.New()
	buffer.CharLimit = 500

	return &formScreen{
		deps:     deps,
		editor:   draft.New(deps.Recipes, deps.Uploader, deps.Log.Named("draft")),
		recipeID: recipeID,
		spin:     spinner.New(),
		buffer:   buffer,
	}
}

func (s *formScreen) Init() tea.Cmd {
	if s.recipeID == "" {
		return nil
	}
	s.loading = true
	editor, id := s.editor, s.recipeID
	return tea.Batch(s.spin.Tick, func() tea.Msg {
		if err := editor.Load(context.Background(), id); err != nil {
			return failureMsg{err: err}
		}
		return formLoadedMsg{}
	})
}

// rows builds the current focus list from the editor state.
func (s *formScreen) rows() []formRow {
	rows := []formRow{{kind: rowTitle}, {kind: rowCategory}, {kind: rowImage}}
	for i := range s.editor.Ingredients() {
		rows = append(rows, formRow{kind: rowIngredient, index: i})
	}
	rows = append(rows, formRow{kind: rowAddIngredient})
	for i := range s.editor.Steps() {
		rows = append(rows,
			formRow{kind: rowStepHeader, index: i},
			formRow{kind: rowStepDesc, index: i})
	}
	rows = append(rows, formRow{kind: rowAddStep}, formRow{kind: rowSave})
	return rows
}

func (s *formScreen) saveCmd() tea.Cmd {
	editor := s.editor
	return func() tea.Msg {
		saved, err := editor.Save(context.Background())
		if err != nil {
			return failureMsg{err: err}
		}
		return savedMsg{recipe: saved}
	}
}

// pickImageCmd reads the image file and stages it as a base64 data
// URI, the encoding the upload endpoint expects. A read failure (bad
// path, no permission) leaves the upload state unchanged.
func pickImageCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return failureMsg{err: domain.NewFailure(domain.FailValidation,
				fmt.Sprintf("cannot read image %s", path), err)}
		}
		payload := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data)
		return imagePickedMsg{localRef: path, payload: payload}
	}
}

func (s *formScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	// The ingredient picker overlay captures everything while open.
	if s.picker != nil {
		done, name, cmd := s.picker.update(msg)
		if done {
			s.picker = nil
			if name != "" {
				s.editor.AddIngredient(name)
			}
		}
		return s, cmd
	}

	switch msg := msg.(type) {
	case formLoadedMsg:
		s.loading = false
		return s, nil

	case savedMsg:
		s.saving = false
		id := msg.recipe.ID
		return s, func() tea.Msg { return showViewMsg{recipeID: id} }

	case imagePickedMsg:
		s.editor.PickImage(msg.localRef, msg.payload)
		return s, nil

	case failureMsg:
		s.loading = false
		s.saving = false
		return s, nil

	case spinner.TickMsg:
		if !s.loading && !s.saving {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		if s.saving {
			return s, nil
		}
		if s.editing {
			return s.updateEditing(msg)
		}
		return s.updateBrowsing(msg)
	}
	return s, nil
}

// updateEditing routes keys into the edit buffer and commits on enter.
func (s *formScreen) updateEditing(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.editing = false
		s.buffer.Blur()
		return s, nil
	case "enter":
		rows := s.rows()
		if s.cursor < len(rows) && rows[s.cursor].kind == rowImage {
			path := strings.TrimSpace(s.buffer.Value())
			s.editing = false
			s.buffer.Blur()
			if path == "" {
				return s, nil
			}
			return s, pickImageCmd(path)
		}
		s.commitBuffer()
		s.editing = false
		s.buffer.Blur()
		return s, nil
	}
	var cmd tea.Cmd
	s.buffer, cmd = s.buffer.Update(msg)
	return s, cmd
}

// commitBuffer writes the edit buffer into the focused field.
func (s *formScreen) commitBuffer() {
	rows := s.rows()
	if s.cursor >= len(rows) {
		return
	}
	value := s.buffer.Value()
	switch row := rows[s.cursor]; row.kind {
	case rowTitle:
		s.editor.SetTitle(value)
	case rowCategory:
		s.editor.SetCategory(value)
	case rowIngredient:
		s.editor.SetIngredientAmount(row.index, value)
	case rowStepHeader:
		s.editor.SetStepHeader(row.index, value)
	case rowStepDesc:
		s.editor.SetStepDescription(row.index, value)
	}
}

func (s *formScreen) updateBrowsing(msg tea.KeyMsg) (screen, tea.Cmd) {
	rows := s.rows()
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(rows)-1 {
			s.cursor++
		}
	case "enter":
		switch row := rows[s.cursor]; row.kind {
		case rowTitle:
			return s, s.startEditing(s.editor.Title())
		case rowCategory:
			return s, s.startEditing(s.editor.Category())
		case rowImage:
			return s, s.startImagePick()
		case rowIngredient:
			return s, s.startEditing(s.editor.Ingredients()[row.index].Amount)
		case rowAddIngredient:
			return s.openPicker()
		case rowStepHeader:
			return s, s.startEditing(s.editor.Steps()[row.index].Header)
		case rowStepDesc:
			return s, s.startEditing(s.editor.Steps()[row.index].Description)
		case rowAddStep:
			s.editor.AddStep()
		case rowSave:
			s.saving = true
			return s, tea.Batch(s.spin.Tick, s.saveCmd())
		}
	case "x":
		switch row := rows[s.cursor]; row.kind {
		case rowIngredient:
			s.editor.RemoveIngredient(row.index)
			s.clampCursor()
		case rowStepHeader, rowStepDesc:
			s.editor.RemoveStep(row.index)
			s.clampCursor()
		}
	case "ctrl+s":
		s.saving = true
		return s, tea.Batch(s.spin.Tick, s.saveCmd())
	case "q", "b":
		return s, func() tea.Msg { return showListMsg{} }
	}
	return s, nil
}

func (s *formScreen) startEditing(current string) tea.Cmd {
	s.editing = true
	s.buffer.SetValue(current)
	s.buffer.CursorEnd()
	return s.buffer.Focus()
}

// startImagePick edits the image row: the buffer takes a file path
// and enter stages the pick.
func (s *formScreen) startImagePick() tea.Cmd {
	s.editing = true
	s.buffer.SetValue("")
	return s.buffer.Focus()
}

func (s *formScreen) openPicker() (screen, tea.Cmd) {
	s.picker = newPickerOverlay(s.deps)
	return s, s.picker.init()
}

func (s *formScreen) clampCursor() {
	if n := len(s.rows()); s.cursor >= n {
		s.cursor = n - 1
	}
}

func (s *formScreen) View(width int) string {
	if s.loading {
		return "\n  " + s.spin.View() + secondaryStyle.Render(" loading recipe...")
	}
	if s.picker != nil {
		return s.picker.view()
	}

	mode := "New Recipe"
	if s.editor.IsEditing() {
		mode = "Edit Recipe"
	}
	out := "\n  " + titleStyle.Render(mode) + "\n\n"

	rows := s.rows()
	for i, row := range rows {
		out += s.renderRow(i, row)
	}

	if s.saving {
		label := " saving..."
		if s.editor.Upload().Phase == draft.UploadUploading {
			label = " uploading image..."
		}
		out += "\n  " + s.spin.View() + secondaryStyle.Render(label)
	}

	out += helpStyle.Render("\n  enter edit/apply · x remove · ctrl+s save · b back · ctrl+c quit")
	return out
}

func (s *formScreen) renderRow(i int, row formRow) string {
	focused := i == s.cursor
	prefix := "    "
	if focused {
		prefix = cursorStyle.Render("  > ")
	}

	// The focused row being edited shows the buffer instead of its value.
	if focused && s.editing {
		return prefix + s.buffer.View() + "\n"
	}

	switch row.kind {
	case rowTitle:
		return prefix + headerStyle.Render("Title: ") + primaryStyle.Render(s.editor.Title()) + "\n"
	case rowCategory:
		return prefix + headerStyle.Render("Category: ") + primaryStyle.Render(s.editor.Category()) + "\n"
	case rowImage:
		return prefix + headerStyle.Render("Cover: ") + primaryStyle.Render(s.imageLabel()) + "\n"
	case rowIngredient:
		ing := s.editor.Ingredients()[row.index]
		amount := ing.Amount
		if amount == "" {
			amount = secondaryStyle.Render("(amount)")
		}
		return prefix + primaryStyle.Render(ing.Name) + "  " + amount + "\n"
	case rowAddIngredient:
		return prefix + secondaryStyle.Render("+ add ingredient") + "\n"
	case rowStepHeader:
		return prefix + headerStyle.Render(fmt.Sprintf("Step %d: ", row.index+1)) +
			primaryStyle.Render(s.editor.Steps()[row.index].Header) + "\n"
	case rowStepDesc:
		desc := s.editor.Steps()[row.index].Description
		if desc == "" {
			desc = secondaryStyle.Render("(describe the step)")
		}
		return prefix + "  " + primaryStyle.Render(desc) + "\n"
	case rowAddStep:
		return prefix + secondaryStyle.Render("+ add step") + "\n"
	case rowSave:
		label := "Save Recipe"
		if s.editor.IsEditing() {
			label = "Update Recipe"
		}
		return "\n" + prefix + selectedStyle.Render(label) + "\n"
	}
	return ""
}

// imageLabel summarizes the upload state for the cover row.
func (s *formScreen) imageLabel() string {
	up := s.editor.Upload()
	switch up.Phase {
	case draft.UploadPicked:
		return up.LocalRef + secondaryStyle.Render(" (staged)")
	case draft.UploadUploading:
		return up.LocalRef + secondaryStyle.Render(" (uploading)")
	case draft.UploadUploaded:
		return up.RemoteURL
	case draft.UploadFailed:
		return noticeStyle.Render("upload failed: " + up.Reason)
	}
	if url := s.editor.ImageURL(); url != "" {
		return url
	}
	return secondaryStyle.Render("(enter a file path to add a cover photo)")
}
