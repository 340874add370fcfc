// Package validation is the single source of truth for recipe submission
// rules. The form wizard applies these rules per step on the client side of
// the boundary; the POST /recipes handler re-applies them on the server
// side, so the two can never drift apart.
package validation

import (
	"regexp"
	"strings"

	"github.com/plateup/backend/internal/models"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{10,}$`)
)

// IngredientPayload is one ingredient row as it crosses the wire.
type IngredientPayload struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// Empty reports whether the row carries no data at all.
func (p IngredientPayload) Empty() bool {
	return strings.TrimSpace(p.Name) == "" && strings.TrimSpace(p.Amount) == ""
}

// Valid reports whether the row is complete enough to keep: both name and
// amount must be present.
func (p IngredientPayload) Valid() bool {
	return strings.TrimSpace(p.Name) != "" && strings.TrimSpace(p.Amount) != ""
}

// InstructionPayload is one instruction row as it crosses the wire. Step is
// assigned by position at submission time, never by the author.
type InstructionPayload struct {
	Instruction string `json:"instruction"`
	Duration    int    `json:"duration"`
}

// RecipePayload is the submission body shared by the wizard and the API.
// Author identity travels with the recipe; the server finds or creates the
// user by email.
type RecipePayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	Bio       string `json:"bio"`

	Title              string               `json:"title"`
	Description        string               `json:"description"`
	Image              string               `json:"image"`
	PrepTime           int                  `json:"prepTime"`
	CookingTime        int                  `json:"cookingTime"`
	Servings           int                  `json:"servings"`
	Difficulty         string               `json:"difficulty"`
	Cuisine            string               `json:"cuisine"`
	DietaryPreferences []string             `json:"dietaryPreferences"`
	Tags               []string             `json:"tags"`
	Ingredients        []IngredientPayload  `json:"ingredients"`
	Instructions       []InstructionPayload `json:"instructions"`
}

// ValidEmail reports whether the address has the local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPhone reports whether the number is 10+ digits with an optional
// leading +.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidDifficulty reports membership in the difficulty vocabulary.
func ValidDifficulty(d string) bool {
	return contains(models.DifficultyLevels, d)
}

// ValidCuisine reports membership in the cuisine vocabulary.
func ValidCuisine(c string) bool {
	return contains(models.CuisineTypes, c)
}

// ValidDietaryPreference reports membership in the dietary vocabulary.
func ValidDietaryPreference(d string) bool {
	return contains(models.DietaryPreferences, d)
}

// CleanIngredients drops rows that are not complete enough to keep.
func CleanIngredients(rows []IngredientPayload) []IngredientPayload {
	out := make([]IngredientPayload, 0, len(rows))
	for _, r := range rows {
		if r.Valid() {
			out = append(out, r)
		}
	}
	return out
}

// CleanInstructions drops blank rows and trims the survivors. Step numbers
// are implicit in the final positions.
func CleanInstructions(rows []InstructionPayload) []InstructionPayload {
	out := make([]InstructionPayload, 0, len(rows))
	for _, r := range rows {
		text := strings.TrimSpace(r.Instruction)
		if text == "" {
			continue
		}
		out = append(out, InstructionPayload{Instruction: text, Duration: r.Duration})
	}
	return out
}

// RequiredForPublish checks the fixed required-field set for a non-draft
// submission and returns a field-keyed error map. An empty map means the
// payload is publishable. Cleaning is applied before counting rows, so a
// list of half-filled ingredient rows does not count as "has ingredients".
func RequiredForPublish(p RecipePayload) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(p.Title) == "" {
		errs["title"] = "Title is required"
	}
	if strings.TrimSpace(p.Description) == "" {
		errs["description"] = "Description is required"
	}
	if strings.TrimSpace(p.Image) == "" {
		errs["image"] = "Recipe image is required"
	}
	if len(CleanIngredients(p.Ingredients)) == 0 {
		errs["ingredients"] = "At least one ingredient is required"
	}
	if len(CleanInstructions(p.Instructions)) == 0 {
		errs["instructions"] = "At least one instruction is required"
	}
	if len(p.Tags) == 0 {
		errs["tags"] = "At least one tag is required"
	}

	return errs
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
