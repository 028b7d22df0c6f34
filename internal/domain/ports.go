package domain

import "context"

// RecipeService is the remote collaborator's recipe surface.
// Implementations can be HTTP-backed or in-memory for tests.
type RecipeService interface {
	List(ctx context.Context) ([]Recipe, error)
	Get(ctx context.Context, id string) (*Recipe, error)
	Create(ctx context.Context, r Recipe) (*Recipe, error)
	Update(ctx context.Context, id string, r Recipe) (*Recipe, error)
	Delete(ctx context.Context, id string) error

	// FindByIngredients returns recipes whose ingredients overlap the
	// given pantry names. Overlap semantics are owned by the service.
	FindByIngredients(ctx context.Context, names []string) ([]Recipe, error)
}

// CategorySource lists the category vocabulary. A recipe's category is
// free text that usually matches one of these values; the relationship
// is not enforced.
type CategorySource interface {
	Categories(ctx context.Context) ([]string, error)
}

// IngredientSource lists the master ingredient vocabulary, independent
// of any single recipe.
type IngredientSource interface {
	Ingredients(ctx context.Context) ([]string, error)
}

// ImageUploader stores an encoded image payload and returns its remote
// URL. The payload is a data-URI string as produced by the picker.
type ImageUploader interface {
	Upload(ctx context.Context, filename, payload string) (string, error)
}
