package draft

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/hammamikhairi/krakaran/internal/domain"
	"github.com/hammamikhairi/krakaran/internal/logger"
)

// fakeService records the order of remote calls so tests can assert
// the upload-then-persist sequencing.
type fakeService struct {
	calls []string

	existing  *domain.Recipe
	createErr error
	updateErr error

	lastSaved domain.Recipe
}

func (f *fakeService) List(ctx context.Context) ([]domain.Recipe, error) { return nil, nil }

func (f *fakeService) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	f.calls = append(f.calls, "get")
	if f.existing == nil || f.existing.ID != id {
		return nil, domain.NewFailure(domain.FailNotFound, "recipe "+id, domain.ErrNotFound)
	}
	return f.existing.Clone(), nil
}

func (f *fakeService) Create(ctx context.Context, r domain.Recipe) (*domain.Recipe, error) {
	f.calls = append(f.calls, "create")
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.lastSaved = r
	r.ID = "new-id"
	return &r, nil
}

func (f *fakeService) Update(ctx context.Context, id string, r domain.Recipe) (*domain.Recipe, error) {
	f.calls = append(f.calls, "update")
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.lastSaved = r
	r.ID = id
	return &r, nil
}

func (f *fakeService) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeService) FindByIngredients(ctx context.Context, names []string) ([]domain.Recipe, error) {
	return nil, nil
}

type fakeUploader struct {
	svc *fakeService
	url string
	err error

	// phaseSeen captures the editor's upload phase at the moment the
	// upload request runs.
	editor    *Editor
	phaseSeen UploadPhase
}

func (f *fakeUploader) Upload(ctx context.Context, filename, payload string) (string, error) {
	f.svc.calls = append(f.svc.calls, "upload")
	if f.editor != nil {
		f.phaseSeen = f.editor.Upload().Phase
	}
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func setupEditor(t *testing.T) (*Editor, *fakeService, *fakeUploader, context.Context) {
	t.Helper()
	svc := &fakeService{}
	up := &fakeUploader{svc: svc, url: "https://img.example.com/x.jpg"}
	ed := New(svc, up, logger.New(logger.LevelOff, nil))
	up.editor = ed
	return ed, svc, up, context.Background()
}

func TestNewDraftStartsWithOneEmptyStep(t *testing.T) {
	ed, _, _, _ := setupEditor(t)
	steps := ed.Steps()
	if len(steps) != 1 || steps[0] != (domain.Step{}) {
		t.Fatalf("expected a single empty step, got %v", steps)
	}
}

func TestSaveBlankTitle(t *testing.T) {
	ed, svc, _, ctx := setupEditor(t)

	ed.SetTitle("   ")
	if _, err := ed.Save(ctx); domain.KindOf(err) != domain.FailValidation {
		t.Fatalf("expected validation failure, got %v", err)
	}
	if len(svc.calls) != 0 {
		t.Fatalf("blank title must make zero remote calls, got %v", svc.calls)
	}
}

func TestSaveCreateMode(t *testing.T) {
	ed, svc, _, ctx := setupEditor(t)

	ed.SetTitle("Pancakes")
	ed.SetCategory("Breakfast")
	ed.AddIngredient("Flour")

	saved, err := ed.Save(ctx)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID != "new-id" {
		t.Fatalf("expected assigned id, got %q", saved.ID)
	}
	if !reflect.DeepEqual(svc.calls, []string{"create"}) {
		t.Fatalf("expected a single create call, got %v", svc.calls)
	}
}

func TestSaveUpdateMode(t *testing.T) {
	ed, svc, _, ctx := setupEditor(t)
	svc.existing = &domain.Recipe{
		ID:            "42",
		Title:         "Soup",
		CoverImageURL: "https://img.example.com/soup.jpg",
		Ingredients:   []domain.Ingredient{{Name: "Water", Amount: "1l"}},
	}

	if err := ed.Load(ctx, "42"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ed.IsEditing() {
		t.Fatal("expected update mode after load")
	}
	// Recipe with no steps is edited as a single empty step.
	if got := len(ed.Steps()); got != 1 {
		t.Fatalf("expected 1 default step, got %d", got)
	}

	ed.SetTitle("Tomato Soup")
	saved, err := ed.Save(ctx)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID != "42" {
		t.Fatalf("expected id preserved, got %q", saved.ID)
	}
	if !reflect.DeepEqual(svc.calls, []string{"get", "update"}) {
		t.Fatalf("unexpected calls %v", svc.calls)
	}
	// Pre-existing image URL rides along untouched; no upload happened.
	if svc.lastSaved.CoverImageURL != "https://img.example.com/soup.jpg" {
		t.Fatalf("existing image URL not reused: %q", svc.lastSaved.CoverImageURL)
	}
}

func TestSaveUploadsBeforePersist(t *testing.T) {
	ed, svc, up, ctx := setupEditor(t)

	ed.SetTitle("Pancakes")
	ed.PickImage("local://photo.jpg", "data:image/jpeg;base64,xxxx")

	saved, err := ed.Save(ctx)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !reflect.DeepEqual(svc.calls, []string{"upload", "create"}) {
		t.Fatalf("upload must strictly precede persist, got %v", svc.calls)
	}
	if up.phaseSeen != UploadUploading {
		t.Fatalf("expected Uploading observed during upload, got %s", up.phaseSeen)
	}
	if ed.Upload().Phase != UploadUploaded {
		t.Fatalf("expected Uploaded after save, got %s", ed.Upload().Phase)
	}
	if saved.CoverImageURL != up.url {
		t.Fatalf("recipe payload should carry the uploaded URL, got %q", saved.CoverImageURL)
	}
}

func TestUploadFailureAbortsSave(t *testing.T) {
	ed, svc, up, ctx := setupEditor(t)
	up.err = errors.New("disk full")

	ed.SetTitle("Pancakes")
	ed.PickImage("local://photo.jpg", "data:image/jpeg;base64,xxxx")

	_, err := ed.Save(ctx)
	if domain.KindOf(err) != domain.FailUpload {
		t.Fatalf("expected upload failure, got %v", err)
	}
	if !reflect.DeepEqual(svc.calls, []string{"upload"}) {
		t.Fatalf("no persist call may follow a failed upload, got %v", svc.calls)
	}
	if ed.Upload().Phase != UploadFailed {
		t.Fatalf("expected Failed phase, got %s", ed.Upload().Phase)
	}

	// Saving again without re-picking is refused, still without a
	// persist call.
	_, err = ed.Save(ctx)
	if domain.KindOf(err) != domain.FailUpload {
		t.Fatalf("expected upload failure on resave, got %v", err)
	}
	if !reflect.DeepEqual(svc.calls, []string{"upload"}) {
		t.Fatalf("unexpected calls %v", svc.calls)
	}

	// Re-picking returns the machine to Picked and the save succeeds.
	up.err = nil
	ed.PickImage("local://photo2.jpg", "data:image/jpeg;base64,yyyy")
	if ed.Upload().Phase != UploadPicked {
		t.Fatalf("expected Picked after re-pick, got %s", ed.Upload().Phase)
	}
	if _, err := ed.Save(ctx); err != nil {
		t.Fatalf("save after re-pick: %v", err)
	}
	if !reflect.DeepEqual(svc.calls, []string{"upload", "upload", "create"}) {
		t.Fatalf("unexpected calls %v", svc.calls)
	}
}

func TestPersistFailureKeepsWorkingCopy(t *testing.T) {
	ed, svc, _, ctx := setupEditor(t)
	svc.createErr = domain.NewFailure(domain.FailNetwork, "create failed", errors.New("boom"))

	ed.SetTitle("Pancakes")
	ed.AddIngredient("Flour")

	if _, err := ed.Save(ctx); domain.KindOf(err) != domain.FailNetwork {
		t.Fatalf("expected network failure, got %v", err)
	}
	if ed.Title() != "Pancakes" || len(ed.Ingredients()) != 1 {
		t.Fatal("failed save must leave the working copy intact")
	}

	// Resubmission works once the service recovers.
	svc.createErr = nil
	if _, err := ed.Save(ctx); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
}

func TestRemoveIngredientCompacts(t *testing.T) {
	ed, _, _, _ := setupEditor(t)

	ed.AddIngredient("A")
	ed.AddIngredient("B")
	ed.AddIngredient("C")
	if err := ed.RemoveIngredient(1); err != nil {
		t.Fatalf("remove: %v", err)
	}

	got := ed.Ingredients()
	if len(got) != 2 || got[0].Name != "A" || got[1].Name != "C" {
		t.Fatalf("expected [A C], got %v", got)
	}

	if err := ed.RemoveIngredient(5); domain.KindOf(err) != domain.FailValidation {
		t.Fatalf("expected validation failure for bad index, got %v", err)
	}
}

func TestStepEditsPreserveOrder(t *testing.T) {
	ed, _, _, _ := setupEditor(t)

	// The initial empty step plus two more.
	ed.AddStep()
	ed.AddStep()
	for i, h := range []string{"first", "second", "third"} {
		if err := ed.SetStepHeader(i, h); err != nil {
			t.Fatalf("set header %d: %v", i, err)
		}
	}

	if err := ed.RemoveStep(0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	steps := ed.Steps()
	if len(steps) != 2 || steps[0].Header != "second" || steps[1].Header != "third" {
		t.Fatalf("cooking order disturbed: %v", steps)
	}
}
