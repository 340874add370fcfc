package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateup/backend/internal/models"
	"github.com/plateup/backend/internal/validation"
)

// RecipeService handles recipe persistence and the author-only lifecycle
// operations (edit, publish/unpublish, delete, duplicate).
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// ListRecipes returns the full collection, newest first, with nested
// author, ingredients and instructions. Filtering is the feed engine's
// job; nothing is filtered or paginated here.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.withNested(s.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe retrieves a recipe by ID with its nested rows.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.withNested(s.db.WithContext(ctx)).First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// SubmitRecipe persists a submission. The author is looked up by email
// and created on first contact. For a non-draft submission the shared
// publish rules are re-checked at this boundary; drafts skip them and only
// get structural cleaning. Instruction steps are renumbered 1..n by final
// position, closing gaps left by dropped blank rows. The signature
// satisfies the wizard's Submitter hook.
func (s *RecipeService) SubmitRecipe(ctx context.Context, p validation.RecipePayload, isDraft bool) (*models.Recipe, error) {
	if !isDraft {
		if errs := validation.RequiredForPublish(p); len(errs) > 0 {
			return nil, &ValidationError{Fields: errs}
		}
	}

	ingredients := validation.CleanIngredients(p.Ingredients)
	instructions := validation.CleanInstructions(p.Instructions)

	status := models.StatusPublished
	if isDraft {
		status = models.StatusDraft
	}

	var created *models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		author, err := findOrCreateAuthor(tx, p)
		if err != nil {
			return err
		}

		recipe := models.Recipe{
			Title:              p.Title,
			Description:        p.Description,
			Image:              p.Image,
			PrepTime:           p.PrepTime,
			CookingTime:        p.CookingTime,
			Servings:           p.Servings,
			Difficulty:         p.Difficulty,
			Cuisine:            p.Cuisine,
			DietaryPreferences: p.DietaryPreferences,
			Tags:               p.Tags,
			Status:             status,
			AuthorID:           author.ID,
			Ingredients:        buildIngredients(ingredients),
			Instructions:       buildInstructions(instructions),
		}
		if err := tx.Create(&recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		recipe.Author = author
		created = &recipe
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateRecipe replaces the editable fields and nested rows of the
// author's recipe. A published recipe must still satisfy the publish rules
// after the update.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id, authorID uuid.UUID, p validation.RecipePayload) (*models.Recipe, error) {
	recipe, err := s.ownedRecipe(ctx, id, authorID)
	if err != nil {
		return nil, err
	}

	if recipe.Status == models.StatusPublished {
		if errs := validation.RequiredForPublish(p); len(errs) > 0 {
			return nil, &ValidationError{Fields: errs}
		}
	}

	ingredients := validation.CleanIngredients(p.Ingredients)
	instructions := validation.CleanInstructions(p.Instructions)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Instruction{}).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"title":               p.Title,
			"description":         p.Description,
			"image":               p.Image,
			"prep_time":           p.PrepTime,
			"cooking_time":        p.CookingTime,
			"servings":            p.Servings,
			"difficulty":          p.Difficulty,
			"cuisine":             p.Cuisine,
			"dietary_preferences": models.JSONBStringArray(p.DietaryPreferences),
			"tags":                models.JSONBStringArray(p.Tags),
		}
		if err := tx.Model(&models.Recipe{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}

		for _, row := range buildIngredients(ingredients) {
			row.RecipeID = id
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, row := range buildInstructions(instructions) {
			row.RecipeID = id
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, id)
}

// DeleteRecipe permanently removes the author's recipe and its nested
// rows. There is no soft delete.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id, authorID uuid.UUID) error {
	if _, err := s.ownedRecipe(ctx, id, authorID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Instruction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
}

// PublishRecipe moves a draft into the public feed. The published-recipe
// invariant is enforced here: non-empty ingredients and instructions plus
// the required descriptive fields.
func (s *RecipeService) PublishRecipe(ctx context.Context, id, authorID uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.ownedRecipe(ctx, id, authorID)
	if err != nil {
		return nil, err
	}

	errs := make(map[string]string)
	if strings.TrimSpace(recipe.Title) == "" {
		errs["title"] = "Title is required"
	}
	if strings.TrimSpace(recipe.Description) == "" {
		errs["description"] = "Description is required"
	}
	if strings.TrimSpace(recipe.Image) == "" {
		errs["image"] = "Recipe image is required"
	}
	if len(recipe.Ingredients) == 0 {
		errs["ingredients"] = "At least one ingredient is required"
	}
	if len(recipe.Instructions) == 0 {
		errs["instructions"] = "At least one instruction is required"
	}
	if len(recipe.Tags) == 0 {
		errs["tags"] = "At least one tag is required"
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	return s.setStatus(ctx, id, models.StatusPublished)
}

// UnpublishRecipe moves a published recipe back to draft.
func (s *RecipeService) UnpublishRecipe(ctx context.Context, id, authorID uuid.UUID) (*models.Recipe, error) {
	if _, err := s.ownedRecipe(ctx, id, authorID); err != nil {
		return nil, err
	}
	return s.setStatus(ctx, id, models.StatusDraft)
}

// LikeRecipe increments the like counter and returns the new count.
func (s *RecipeService) LikeRecipe(ctx context.Context, id uuid.UUID) (int, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrNotFound
	}

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Select("likes").First(&recipe, "id = ?", id).Error; err != nil {
		return 0, err
	}
	return recipe.Likes, nil
}

// DuplicateRecipe copies the author's recipe as a new draft.
func (s *RecipeService) DuplicateRecipe(ctx context.Context, id, authorID uuid.UUID) (*models.Recipe, error) {
	src, err := s.ownedRecipe(ctx, id, authorID)
	if err != nil {
		return nil, err
	}

	copyRecipe := models.Recipe{
		Title:              src.Title + " (Copy)",
		Description:        src.Description,
		Image:              src.Image,
		PrepTime:           src.PrepTime,
		CookingTime:        src.CookingTime,
		Servings:           src.Servings,
		Difficulty:         src.Difficulty,
		Cuisine:            src.Cuisine,
		DietaryPreferences: src.DietaryPreferences,
		Tags:               src.Tags,
		Status:             models.StatusDraft,
		AuthorID:           src.AuthorID,
	}
	for _, ing := range src.Ingredients {
		copyRecipe.Ingredients = append(copyRecipe.Ingredients, models.Ingredient{
			Position: ing.Position,
			Name:     ing.Name,
			Amount:   ing.Amount,
			Unit:     ing.Unit,
		})
	}
	for _, inst := range src.Instructions {
		copyRecipe.Instructions = append(copyRecipe.Instructions, models.Instruction{
			Step:     inst.Step,
			Content:  inst.Content,
			Duration: inst.Duration,
		})
	}

	if err := s.db.WithContext(ctx).Create(&copyRecipe).Error; err != nil {
		return nil, fmt.Errorf("failed to duplicate recipe: %w", err)
	}
	return s.GetRecipe(ctx, copyRecipe.ID)
}

func (s *RecipeService) setStatus(ctx context.Context, id uuid.UUID, status string) (*models.Recipe, error) {
	err := s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, id)
}

// ownedRecipe loads a recipe and verifies the caller is its author.
func (s *RecipeService) ownedRecipe(ctx context.Context, id, authorID uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != authorID {
		return nil, ErrForbidden
	}
	return recipe, nil
}

func (s *RecipeService) withNested(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Instructions", func(db *gorm.DB) *gorm.DB {
			return db.Order("step ASC")
		})
}

// findOrCreateAuthor resolves the submission's author by email, creating
// the user on first contact with a username derived from the name.
func findOrCreateAuthor(tx *gorm.DB, p validation.RecipePayload) (*models.User, error) {
	var user models.User
	err := tx.Where("email = ?", p.Email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = models.User{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Username:  strings.ToLower(p.FirstName) + strings.ToLower(p.LastName),
		Email:     p.Email,
		Phone:     p.Phone,
		Location:  p.Location,
		Bio:       p.Bio,
	}
	if err := tx.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}
	return &user, nil
}

func buildIngredients(rows []validation.IngredientPayload) []models.Ingredient {
	out := make([]models.Ingredient, 0, len(rows))
	for i, row := range rows {
		out = append(out, models.Ingredient{
			Position: i + 1,
			Name:     row.Name,
			Amount:   row.Amount,
			Unit:     row.Unit,
		})
	}
	return out
}

// buildInstructions assigns 1-based step numbers by final position; gaps
// left by removed blank rows are closed here.
func buildInstructions(rows []validation.InstructionPayload) []models.Instruction {
	out := make([]models.Instruction, 0, len(rows))
	for i, row := range rows {
		out = append(out, models.Instruction{
			Step:     i + 1,
			Content:  row.Instruction,
			Duration: row.Duration,
		})
	}
	return out
}
