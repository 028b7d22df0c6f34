// Package draft implements the recipe editor: an in-memory working
// copy of a new or existing recipe, the image upload state machine,
// and the two-phase save that uploads before persisting.
package draft

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/hammamikhairi/krakaran/internal/domain"
	"github.com/hammamikhairi/krakaran/internal/logger"
)

// Editor holds one edit session. The working copy is independent of
// the persisted recipe until Save succeeds; a failed save leaves it
// intact for correction and resubmission.
type Editor struct {
	mu sync.Mutex

	id          string // "" selects create semantics, otherwise update
	title       string
	category    string
	imageURL    string // remote URL from a prior load or upload
	ingredients []domain.Ingredient
	steps       []domain.Step

	upload UploadState

	svc      domain.RecipeService
	uploader domain.ImageUploader
	log      *logger.Logger
}

// New creates a blank editor in create mode. Like the form it backs,
// a new draft starts with a single empty step.
func New(svc domain.RecipeService, uploader domain.ImageUploader, log *logger.Logger) *Editor {
	return &Editor{
		ingredients: []domain.Ingredient{},
		steps:       []domain.Step{{}},
		svc:         svc,
		uploader:    uploader,
		log:         log,
	}
}

// Load fetches an existing recipe and switches the editor to update
// mode. The existing cover image URL, if any, is kept and reused on
// save unless a new image is picked.
func (e *Editor) Load(ctx context.Context, id string) error {
	recipe, err := e.svc.Get(ctx, id)
	if err != nil {
		e.log.Error("loading recipe %s for edit: %v", id, err)
		return err
	}
	recipe.Normalize()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.id = recipe.ID
	e.title = recipe.Title
	e.category = recipe.Category
	e.imageURL = recipe.CoverImageURL
	e.ingredients = append([]domain.Ingredient{}, recipe.Ingredients...)
	e.steps = append([]domain.Step{}, recipe.Steps...)
	if len(e.steps) == 0 {
		e.steps = []domain.Step{{}}
	}
	e.upload = UploadState{}
	e.log.Debug("editing recipe %q (id=%s)", e.title, e.id)
	return nil
}

// IsEditing reports whether Save will update an existing recipe.
func (e *Editor) IsEditing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.id != ""
}

// ── Field access ─────────────────────────────────────────────────

// SetTitle updates the draft title.
func (e *Editor) SetTitle(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.title = s
}

// Title returns the draft title.
func (e *Editor) Title() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.title
}

// SetCategory updates the draft category.
func (e *Editor) SetCategory(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.category = s
}

// Category returns the draft category.
func (e *Editor) Category() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.category
}

// ImageURL returns the current remote cover image URL, if any.
func (e *Editor) ImageURL() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.imageURL
}

// ── Ingredient list ──────────────────────────────────────────────

// Ingredients returns a copy of the working ingredient list.
func (e *Editor) Ingredients() []domain.Ingredient {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.Ingredient{}, e.ingredients...)
}

// AddIngredient appends an ingredient with an empty amount.
func (e *Editor) AddIngredient(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ingredients = append(e.ingredients, domain.Ingredient{Name: name})
}

// RemoveIngredient deletes the entry at index i. Positions compact
// immediately; the relative order of the rest is preserved.
func (e *Editor) RemoveIngredient(i int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i < 0 || i >= len(e.ingredients) {
		return domain.Validation("ingredient index out of range")
	}
	e.ingredients = append(e.ingredients[:i], e.ingredients[i+1:]...)
	return nil
}

// SetIngredientName updates one ingredient's name in place.
func (e *Editor) SetIngredientName(i int, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i < 0 || i >= len(e.ingredients) {
		return domain.Validation("ingredient index out of range")
	}
	e.ingredients[i].Name = name
	return nil
}

// SetIngredientAmount updates one ingredient's amount in place.
func (e *Editor) SetIngredientAmount(i int, amount string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i < 0 || i >= len(e.ingredients) {
		return domain.Validation("ingredient index out of range")
	}
	e.ingredients[i].Amount = amount
	return nil
}

// ── Step list ────────────────────────────────────────────────────

// Steps returns a copy of the working step list.
func (e *Editor) Steps() []domain.Step {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.Step{}, e.steps...)
}

// AddStep appends an empty step.
func (e *Editor) AddStep() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.steps = append(e.steps, domain.Step{})
}

// RemoveStep deletes the step at index i, compacting positions while
// preserving the cooking order of the remaining steps.
func (e *Editor) RemoveStep(i int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i < 0 || i >= len(e.steps) {
		return domain.Validation("step index out of range")
	}
	e.steps = append(e.steps[:i], e.steps[i+1:]...)
	return nil
}

// SetStepHeader updates one step's header in place.
func (e *Editor) SetStepHeader(i int, header string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i < 0 || i >= len(e.steps) {
		return domain.Validation("step index out of range")
	}
	e.steps[i].Header = header
	return nil
}

// SetStepDescription updates one step's description in place.
func (e *Editor) SetStepDescription(i int, desc string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i < 0 || i >= len(e.steps) {
		return domain.Validation("step index out of range")
	}
	e.steps[i].Description = desc
	return nil
}

// ── Image sub-flow ───────────────────────────────────────────────

// PickImage stages a newly picked local image. payload is the encoded
// data-URI body that will be uploaded on save. Re-picking replaces
// any previously staged image, including after a failed upload.
func (e *Editor) PickImage(localRef, payload string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.upload.pick(localRef, payload)
	e.log.Debug("staged image %s (%d bytes)", localRef, len(payload))
}

// Upload returns a snapshot of the image sub-flow state.
func (e *Editor) Upload() UploadState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.upload
}

// ── Save ─────────────────────────────────────────────────────────

// Save validates the draft, runs the image upload if one is staged,
// and then creates or updates the recipe. The persist request is
// never issued before the upload has resolved; an upload failure
// aborts the save entirely.
//
// On success the persisted recipe is returned and the session is
// complete. On any failure the working copy is left untouched.
func (e *Editor) Save(ctx context.Context) (*domain.Recipe, error) {
	e.mu.Lock()
	if strings.TrimSpace(e.title) == "" {
		e.mu.Unlock()
		return nil, domain.Validation("title is required")
	}

	switch e.upload.Phase {
	case UploadUploading:
		e.mu.Unlock()
		return nil, domain.Validation("image upload already in progress")
	case UploadFailed:
		e.mu.Unlock()
		return nil, domain.NewFailure(domain.FailUpload,
			"previous image upload failed; pick the image again to retry", nil)
	}

	needsUpload := e.upload.Phase == UploadPicked
	payload := e.upload.Payload
	if needsUpload {
		e.upload.beginUpload()
	}
	e.mu.Unlock()

	if needsUpload {
		filename := uuid.NewString() + ".jpg"
		remoteURL, err := e.uploader.Upload(ctx, filename, payload)
		if err != nil {
			e.mu.Lock()
			e.upload.fail(err.Error())
			e.mu.Unlock()
			e.log.Error("image upload failed, save aborted: %v", err)
			var f *domain.Failure
			if errors.As(err, &f) && f.Kind == domain.FailUpload {
				return nil, err
			}
			return nil, domain.NewFailure(domain.FailUpload, "image upload failed", err)
		}
		e.mu.Lock()
		e.upload.succeed(remoteURL)
		e.imageURL = remoteURL
		e.mu.Unlock()
	}

	e.mu.Lock()
	id := e.id
	recipe := domain.Recipe{
		Title:         e.title,
		Category:      e.category,
		CoverImageURL: e.imageURL,
		Ingredients:   append([]domain.Ingredient{}, e.ingredients...),
		Steps:         append([]domain.Step{}, e.steps...),
	}
	e.mu.Unlock()

	var (
		saved *domain.Recipe
		err   error
	)
	if id != "" {
		saved, err = e.svc.Update(ctx, id, recipe)
	} else {
		saved, err = e.svc.Create(ctx, recipe)
	}
	if err != nil {
		e.log.Error("saving recipe %q: %v", recipe.Title, err)
		return nil, err
	}

	e.log.Info("saved recipe %q (id=%s)", saved.Title, saved.ID)
	return saved, nil
}
