package wizard

import (
	"strings"

	"github.com/plateup/backend/internal/validation"
)

// validateStep runs the rules for one step and returns a field-keyed error
// map; multiple errors may coexist. An empty map means the step passes.
func (f *Form) validateStep(step Step) map[string]string {
	errs := make(map[string]string)

	switch step {
	case StepUserInfo:
		if strings.TrimSpace(f.draft.FirstName) == "" {
			errs["firstName"] = "First name is required"
		}
		if strings.TrimSpace(f.draft.LastName) == "" {
			errs["lastName"] = "Last name is required"
		}
		email := strings.TrimSpace(f.draft.Email)
		if email == "" {
			errs["email"] = "Email is required"
		} else if !validation.ValidEmail(email) {
			errs["email"] = "Please enter a valid email"
		}
		if phone := strings.TrimSpace(f.draft.Phone); phone != "" && !validation.ValidPhone(phone) {
			errs["phone"] = "Please enter a valid phone number"
		}

	case StepBasicInfo:
		if strings.TrimSpace(f.draft.Title) == "" {
			errs["title"] = "Title is required"
		}
		if strings.TrimSpace(f.draft.Description) == "" {
			errs["description"] = "Description is required"
		}
		if strings.TrimSpace(f.draft.Image) == "" {
			errs["image"] = "Recipe image is required"
		}

	case StepDetails:
		if f.draft.PrepTime <= 0 {
			errs["prepTime"] = "Prep time must be greater than 0"
		}
		if f.draft.CookingTime <= 0 {
			errs["cookingTime"] = "Cooking time must be greater than 0"
		}
		if f.draft.Servings <= 0 {
			errs["servings"] = "Servings must be greater than 0"
		}
		if !validation.ValidDifficulty(f.draft.Difficulty) {
			errs["difficulty"] = "Difficulty is required"
		}
		if !validation.ValidCuisine(f.draft.Cuisine) {
			errs["cuisine"] = "Cuisine is required"
		}

	case StepIngredients:
		valid, partial := 0, 0
		for _, row := range f.draft.Ingredients {
			name := strings.TrimSpace(row.Name)
			amount := strings.TrimSpace(row.Amount)
			switch {
			case name != "" && amount != "":
				valid++
			case name != "" || amount != "" || strings.TrimSpace(row.Unit) != "":
				partial++
			}
		}
		if valid == 0 {
			errs["ingredients"] = "At least one ingredient is required"
		} else if partial > 0 {
			errs["ingredients"] = "Please fill in all ingredient details"
		}

	case StepInstructions:
		filled, blank := 0, 0
		for _, row := range f.draft.Instructions {
			if strings.TrimSpace(row.Text) == "" {
				blank++
			} else {
				filled++
			}
		}
		if filled == 0 {
			errs["instructions"] = "At least one instruction is required"
		} else if blank > 0 {
			errs["instructions"] = "Please fill in all instruction steps"
		}

	case StepTags:
		if len(f.draft.Tags) == 0 {
			errs["tags"] = "At least one tag is required"
		}
	}

	return errs
}
