// Package wizard implements the multi-step recipe authoring flow: six named
// steps, per-step validation with field-keyed errors, and submission payload
// construction. The actual network call and image upload are hooks supplied
// by the caller, so the state machine itself has no side effects.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/plateup/backend/internal/models"
	"github.com/plateup/backend/internal/validation"
)

// Step identifies a wizard step. Steps are 1-based.
type Step int

const (
	StepUserInfo Step = iota + 1
	StepBasicInfo
	StepDetails
	StepIngredients
	StepInstructions
	StepTags
)

// StepCount is the number of steps in the flow.
const StepCount = 6

var stepNames = map[Step]string{
	StepUserInfo:     "User Information",
	StepBasicInfo:    "Basic Info",
	StepDetails:      "Details",
	StepIngredients:  "Ingredients",
	StepInstructions: "Instructions",
	StepTags:         "Tags & Preview",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// ErrValidation is returned by Submit when the draft fails the publish
// checks; the field details are available from Errors.
var ErrValidation = errors.New("recipe validation failed")

// IngredientRow is one editable ingredient entry.
type IngredientRow struct {
	Name   string
	Amount string
	Unit   string
}

// InstructionRow is one editable instruction entry. Step numbers are not
// edited here; they are assigned by position at submission time.
type InstructionRow struct {
	Text     string
	Duration int
}

// Draft is the in-progress recipe plus the author identity captured by the
// first step.
type Draft struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Location  string
	Bio       string

	Title              string
	Description        string
	Image              string
	PrepTime           int
	CookingTime        int
	Servings           int
	Difficulty         string
	Cuisine            string
	DietaryPreferences []string
	Ingredients        []IngredientRow
	Instructions       []InstructionRow
	Tags               []string
}

// Submitter persists a completed submission payload.
type Submitter interface {
	SubmitRecipe(ctx context.Context, payload validation.RecipePayload, isDraft bool) (*models.Recipe, error)
}

// ImageUploader stores a recipe image and returns its public URL.
type ImageUploader interface {
	UploadImage(ctx context.Context, filename string, r io.Reader) (string, error)
}

// Form is the wizard state machine. It is owned by a single authoring
// session and is not safe for concurrent use.
type Form struct {
	step      Step
	draft     Draft
	errors    map[string]string
	submitter Submitter
	uploader  ImageUploader
}

// New creates a form at the first step with the same starting values the
// original flow presents: sensible timing defaults and one blank row each
// for ingredients and instructions.
func New(submitter Submitter, uploader ImageUploader) *Form {
	return &Form{
		step: StepUserInfo,
		draft: Draft{
			PrepTime:     15,
			CookingTime:  30,
			Servings:     4,
			Difficulty:   models.DifficultyEasy,
			Cuisine:      "Italian",
			Ingredients:  []IngredientRow{{}},
			Instructions: []InstructionRow{{}},
		},
		errors:    make(map[string]string),
		submitter: submitter,
		uploader:  uploader,
	}
}

// Step returns the current step.
func (f *Form) Step() Step { return f.step }

// Draft returns a copy of the current draft.
func (f *Form) Draft() Draft { return f.draft }

// Errors returns the current field-keyed error map.
func (f *Form) Errors() map[string]string { return f.errors }

// Next validates the current step. On success it advances (capped at the
// last step) and reports true; on failure the step is unchanged and the
// error map describes every offending field.
func (f *Form) Next() bool {
	errs := f.validateStep(f.step)
	f.errors = errs
	if len(errs) > 0 {
		return false
	}
	if f.step < StepTags {
		f.step++
	}
	return true
}

// Previous moves back one step unconditionally, stopping at the first.
func (f *Form) Previous() {
	if f.step > StepUserInfo {
		f.step--
	}
}

// UpdateField merges a single value into the draft. Paths are dotted:
// top-level fields by name ("title"), author fields optionally prefixed
// ("author.email"), and rows by index ("ingredients.0.name",
// "instructions.1.text"). Updating a field clears its pending error.
func (f *Form) UpdateField(path string, value interface{}) error {
	parts := strings.Split(path, ".")
	if parts[0] == "author" && len(parts) == 2 {
		parts = parts[1:]
	}

	var err error
	switch parts[0] {
	case "ingredients":
		err = f.updateIngredient(parts, value)
	case "instructions":
		err = f.updateInstruction(parts, value)
	default:
		if len(parts) != 1 {
			return fmt.Errorf("unknown field path %q", path)
		}
		err = f.updateScalar(parts[0], value)
	}
	if err != nil {
		return err
	}

	delete(f.errors, path)
	delete(f.errors, parts[0])
	return nil
}

func (f *Form) updateScalar(field string, value interface{}) error {
	switch field {
	case "firstName", "lastName", "email", "phone", "location", "bio",
		"title", "description", "image", "difficulty", "cuisine":
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %q expects a string", field)
		}
		switch field {
		case "firstName":
			f.draft.FirstName = s
		case "lastName":
			f.draft.LastName = s
		case "email":
			f.draft.Email = s
		case "phone":
			f.draft.Phone = s
		case "location":
			f.draft.Location = s
		case "bio":
			f.draft.Bio = s
		case "title":
			f.draft.Title = s
		case "description":
			f.draft.Description = s
		case "image":
			f.draft.Image = s
		case "difficulty":
			f.draft.Difficulty = s
		case "cuisine":
			f.draft.Cuisine = s
		}
	case "prepTime", "cookingTime", "servings":
		n, ok := toInt(value)
		if !ok {
			return fmt.Errorf("field %q expects an integer", field)
		}
		switch field {
		case "prepTime":
			f.draft.PrepTime = n
		case "cookingTime":
			f.draft.CookingTime = n
		case "servings":
			f.draft.Servings = n
		}
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

func (f *Form) updateIngredient(parts []string, value interface{}) error {
	if len(parts) != 3 {
		return fmt.Errorf("ingredient path must be ingredients.<index>.<field>")
	}
	i, err := strconv.Atoi(parts[1])
	if err != nil || i < 0 || i >= len(f.draft.Ingredients) {
		return fmt.Errorf("ingredient index %q out of range", parts[1])
	}
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("ingredient fields expect strings")
	}
	switch parts[2] {
	case "name":
		f.draft.Ingredients[i].Name = s
	case "amount":
		f.draft.Ingredients[i].Amount = s
	case "unit":
		f.draft.Ingredients[i].Unit = s
	default:
		return fmt.Errorf("unknown ingredient field %q", parts[2])
	}
	return nil
}

func (f *Form) updateInstruction(parts []string, value interface{}) error {
	if len(parts) != 3 {
		return fmt.Errorf("instruction path must be instructions.<index>.<field>")
	}
	i, err := strconv.Atoi(parts[1])
	if err != nil || i < 0 || i >= len(f.draft.Instructions) {
		return fmt.Errorf("instruction index %q out of range", parts[1])
	}
	switch parts[2] {
	case "text":
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("instruction text expects a string")
		}
		f.draft.Instructions[i].Text = s
	case "duration":
		n, ok := toInt(value)
		if !ok {
			return fmt.Errorf("instruction duration expects an integer")
		}
		f.draft.Instructions[i].Duration = n
	default:
		return fmt.Errorf("unknown instruction field %q", parts[2])
	}
	return nil
}

// AddIngredient appends a blank ingredient row.
func (f *Form) AddIngredient() {
	f.draft.Ingredients = append(f.draft.Ingredients, IngredientRow{})
}

// RemoveIngredient deletes the row at i; the last remaining row stays.
func (f *Form) RemoveIngredient(i int) {
	if i < 0 || i >= len(f.draft.Ingredients) || len(f.draft.Ingredients) == 1 {
		return
	}
	f.draft.Ingredients = append(f.draft.Ingredients[:i], f.draft.Ingredients[i+1:]...)
}

// AddInstruction appends a blank instruction row.
func (f *Form) AddInstruction() {
	f.draft.Instructions = append(f.draft.Instructions, InstructionRow{})
}

// RemoveInstruction deletes the row at i; the last remaining row stays.
func (f *Form) RemoveInstruction(i int) {
	if i < 0 || i >= len(f.draft.Instructions) || len(f.draft.Instructions) == 1 {
		return
	}
	f.draft.Instructions = append(f.draft.Instructions[:i], f.draft.Instructions[i+1:]...)
}

// AddTag appends a trimmed tag, ignoring blanks and duplicates.
func (f *Form) AddTag(tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return
	}
	for _, t := range f.draft.Tags {
		if t == tag {
			return
		}
	}
	f.draft.Tags = append(f.draft.Tags, tag)
	delete(f.errors, "tags")
}

// RemoveTag deletes a tag if present.
func (f *Form) RemoveTag(tag string) {
	for i, t := range f.draft.Tags {
		if t == tag {
			f.draft.Tags = append(f.draft.Tags[:i], f.draft.Tags[i+1:]...)
			return
		}
	}
}

// ToggleDietaryPreference adds the preference if absent, removes it if
// present.
func (f *Form) ToggleDietaryPreference(pref string) {
	for i, p := range f.draft.DietaryPreferences {
		if p == pref {
			f.draft.DietaryPreferences = append(f.draft.DietaryPreferences[:i], f.draft.DietaryPreferences[i+1:]...)
			return
		}
	}
	f.draft.DietaryPreferences = append(f.draft.DietaryPreferences, pref)
}

// AttachImage uploads the image through the configured uploader and stores
// the returned URL on the draft.
func (f *Form) AttachImage(ctx context.Context, filename string, r io.Reader) error {
	if f.uploader == nil {
		return errors.New("no image uploader configured")
	}
	url, err := f.uploader.UploadImage(ctx, filename, r)
	if err != nil {
		return fmt.Errorf("image upload failed: %w", err)
	}
	f.draft.Image = url
	delete(f.errors, "image")
	return nil
}

// Payload builds the submission payload: invalid ingredient rows and blank
// instruction rows are dropped, so step numbers assigned downstream close
// any gaps the removed rows left.
func (f *Form) Payload() validation.RecipePayload {
	ingredients := make([]validation.IngredientPayload, 0, len(f.draft.Ingredients))
	for _, row := range f.draft.Ingredients {
		ingredients = append(ingredients, validation.IngredientPayload{
			Name:   strings.TrimSpace(row.Name),
			Amount: strings.TrimSpace(row.Amount),
			Unit:   strings.TrimSpace(row.Unit),
		})
	}

	instructions := make([]validation.InstructionPayload, 0, len(f.draft.Instructions))
	for _, row := range f.draft.Instructions {
		instructions = append(instructions, validation.InstructionPayload{
			Instruction: row.Text,
			Duration:    row.Duration,
		})
	}

	return validation.RecipePayload{
		FirstName:          f.draft.FirstName,
		LastName:           f.draft.LastName,
		Email:              f.draft.Email,
		Phone:              f.draft.Phone,
		Location:           f.draft.Location,
		Bio:                f.draft.Bio,
		Title:              strings.TrimSpace(f.draft.Title),
		Description:        strings.TrimSpace(f.draft.Description),
		Image:              strings.TrimSpace(f.draft.Image),
		PrepTime:           f.draft.PrepTime,
		CookingTime:        f.draft.CookingTime,
		Servings:           f.draft.Servings,
		Difficulty:         f.draft.Difficulty,
		Cuisine:            f.draft.Cuisine,
		DietaryPreferences: f.draft.DietaryPreferences,
		Tags:               f.draft.Tags,
		Ingredients:        validation.CleanIngredients(ingredients),
		Instructions:       validation.CleanInstructions(instructions),
	}
}

// Submit finalizes the draft. With asDraft the payload is only cleaned and
// handed to the submitter; otherwise the final step and the fixed required
// set (title, description, image, ≥1 ingredient, ≥1 instruction, ≥1 tag)
// are re-checked first and ErrValidation is returned on failure. A
// submitter error leaves the draft untouched so the caller can retry.
func (f *Form) Submit(ctx context.Context, asDraft bool) (*models.Recipe, error) {
	payload := f.Payload()

	if !asDraft {
		errs := f.validateStep(f.step)
		for field, msg := range validation.RequiredForPublish(payload) {
			if _, exists := errs[field]; !exists {
				errs[field] = msg
			}
		}
		if len(errs) > 0 {
			f.errors = errs
			return nil, ErrValidation
		}
		f.errors = errs
	}

	if f.submitter == nil {
		return nil, errors.New("no submitter configured")
	}
	recipe, err := f.submitter.SubmitRecipe(ctx, payload, asDraft)
	if err != nil {
		return nil, fmt.Errorf("recipe submission failed: %w", err)
	}
	return recipe, nil
}

func toInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
