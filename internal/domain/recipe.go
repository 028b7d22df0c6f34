// Package domain defines the core types and interfaces for the recipe
// catalog client. All other packages depend on domain; domain depends
// on nothing.
package domain

// Recipe is a single catalog entry. The JSON field names match the
// remote service's wire format.
type Recipe struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Category      string       `json:"category,omitempty"`
	CoverImageURL string       `json:"cover_image_url,omitempty"`
	Ingredients   []Ingredient `json:"ingredients"`
	Steps         []Step       `json:"steps"`
}

// Ingredient is one line of a recipe's ingredient list. Amount is a
// free-text, unit-less string ("2 cups", "a pinch"). Names are not
// required to be unique within a recipe.
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// Step is one cooking step. Order within Recipe.Steps is the cooking
// sequence and must be preserved on every mutation.
type Step struct {
	Header      string `json:"header"`
	Description string `json:"description"`
}

// Normalize replaces nil ingredient/step slices with empty ones. A
// recipe always carries at least an empty sequence of each; the remote
// service sometimes omits the fields entirely.
func (r *Recipe) Normalize() {
	if r.Ingredients == nil {
		r.Ingredients = []Ingredient{}
	}
	if r.Steps == nil {
		r.Steps = []Step{}
	}
}

// Clone returns a deep copy. Editors work on clones so a failed save
// never leaks partial mutations into the catalog.
func (r *Recipe) Clone() *Recipe {
	out := *r
	out.Ingredients = make([]Ingredient, len(r.Ingredients))
	copy(out.Ingredients, r.Ingredients)
	out.Steps = make([]Step, len(r.Steps))
	copy(out.Steps, r.Steps)
	return &out
}
