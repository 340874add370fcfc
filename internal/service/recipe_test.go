package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateup/backend/internal/models"
	"github.com/plateup/backend/internal/testhelpers"
	"github.com/plateup/backend/internal/validation"
)

func publishablePayload() validation.RecipePayload {
	return validation.RecipePayload{
		FirstName:   "Marco",
		LastName:    "Rossi",
		Email:       "marco.rossi@example.com",
		Title:       "Classic Spaghetti Carbonara",
		Description: "Roman classic",
		Image:       "https://img.example/carbonara.jpg",
		PrepTime:    15,
		CookingTime: 25,
		Servings:    4,
		Difficulty:  models.DifficultyMedium,
		Cuisine:     "Italian",
		Tags:        []string{"pasta"},
		Ingredients: []validation.IngredientPayload{
			{Name: "Spaghetti", Amount: "400", Unit: "g"},
			{Name: "Eggs", Amount: "3"},
		},
		Instructions: []validation.InstructionPayload{
			{Instruction: "Boil pasta.", Duration: 10},
			{Instruction: "Toss with eggs.", Duration: 3},
		},
	}
}

func TestSubmitRecipeCreatesAuthorOnFirstContact(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	recipe, err := svc.SubmitRecipe(ctx, publishablePayload(), false)
	require.NoError(t, err)
	require.NotNil(t, recipe.Author)
	assert.Equal(t, "marcorossi", recipe.Author.Username)
	assert.Equal(t, models.StatusPublished, recipe.Status)

	// Same email submits again: no second user.
	_, err = svc.SubmitRecipe(ctx, publishablePayload(), false)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitRecipeRejectsIncompletePublish(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRecipeService(db)

	p := publishablePayload()
	p.Title = ""
	p.Tags = nil

	_, err := svc.SubmitRecipe(context.Background(), p, false)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Title is required", verr.Fields["title"])
	assert.Equal(t, "At least one tag is required", verr.Fields["tags"])

	var count int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestSubmitRecipeDraftSkipsPublishRules(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRecipeService(db)

	p := validation.RecipePayload{
		FirstName: "Lin",
		LastName:  "Chen",
		Email:     "lin@example.com",
		Title:     "Half-formed idea",
	}
	recipe, err := svc.SubmitRecipe(context.Background(), p, true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, recipe.Status)
	assert.Empty(t, recipe.Ingredients)
}

func TestSubmitRecipeRenumbersInstructionSteps(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRecipeService(db)

	p := publishablePayload()
	p.Instructions = []validation.InstructionPayload{
		{Instruction: "Chop onions."},
		{Instruction: "   "}, // dropped; the gap closes
		{Instruction: "Fry gently."},
	}

	recipe, err := svc.SubmitRecipe(context.Background(), p, false)
	require.NoError(t, err)
	require.Len(t, recipe.Instructions, 2)
	assert.Equal(t, 1, recipe.Instructions[0].Step)
	assert.Equal(t, "Chop onions.", recipe.Instructions[0].Content)
	assert.Equal(t, 2, recipe.Instructions[1].Step)
	assert.Equal(t, "Fry gently.", recipe.Instructions[1].Content)
}

func TestSubmitRecipeDropsInvalidIngredientRows(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRecipeService(db)

	p := publishablePayload()
	p.Ingredients = []validation.IngredientPayload{
		{Name: "Salt"},
		{Amount: "2"},
		{Name: "Spaghetti", Amount: "400"},
	}

	recipe, err := svc.SubmitRecipe(context.Background(), p, false)
	require.NoError(t, err)
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, "Spaghetti", recipe.Ingredients[0].Name)
	assert.Equal(t, 1, recipe.Ingredients[0].Position)
}

func TestListRecipesNewestFirst(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	first, err := svc.SubmitRecipe(ctx, publishablePayload(), false)
	require.NoError(t, err)

	p := publishablePayload()
	p.Title = "Second Recipe"
	second, err := svc.SubmitRecipe(ctx, p, false)
	require.NoError(t, err)

	// Force distinct creation times; sqlite timestamps can collide.
	require.NoError(t, db.Model(&models.Recipe{}).Where("id = ?", second.ID).
		Update("created_at", first.CreatedAt.Add(1_000_000_000)).Error)

	recipes, err := svc.ListRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Second Recipe", recipes[0].Title)
	require.NotNil(t, recipes[0].Author)
	assert.Len(t, recipes[0].Ingredients, 2)
}

func TestGetRecipeNotFound(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRecipeService(db)

	_, err := svc.GetRecipe(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRecipeReplacesNestedRows(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	recipe, err := svc.SubmitRecipe(ctx, publishablePayload(), false)
	require.NoError(t, err)

	p := publishablePayload()
	p.Title = "Carbonara, Improved"
	p.Ingredients = []validation.IngredientPayload{{Name: "Rigatoni", Amount: "500", Unit: "g"}}
	p.Instructions = []validation.InstructionPayload{{Instruction: "Do it better."}}

	updated, err := svc.UpdateRecipe(ctx, recipe.ID, recipe.AuthorID, p)
	require.NoError(t, err)
	assert.Equal(t, "Carbonara, Improved", updated.Title)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, "Rigatoni", updated.Ingredients[0].Name)
	require.Len(t, updated.Instructions, 1)
	assert.Equal(t, 1, updated.Instructions[0].Step)

	// The old rows are gone, not orphaned.
	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpdateRecipeEnforcesOwnership(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	recipe, err := svc.SubmitRecipe(ctx, publishablePayload(), false)
	require.NoError(t, err)

	_, err = svc.UpdateRecipe(ctx, recipe.ID, uuid.New(), publishablePayload())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdatePublishedRecipeRevalidates(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	recipe, err := svc.SubmitRecipe(ctx, publishablePayload(), false)
	require.NoError(t, err)

	p := publishablePayload()
	p.Ingredients = nil

	_, err = svc.UpdateRecipe(ctx, recipe.ID, recipe.AuthorID, p)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "ingredients")
}

func TestDeleteRecipeIsPermanentAndCascades(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	recipe, err := svc.SubmitRecipe(ctx, publishablePayload(), false)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRecipe(ctx, recipe.ID, recipe.AuthorID))

	_, err = svc.GetRecipe(ctx, recipe.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Hard delete: no recipe row survives, and the nested rows are gone too.
	var recipeCount, ingredientCount, instructionCount int64
	require.NoError(t, db.Unscoped().Model(&models.Recipe{}).Count(&recipeCount).Error)
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&ingredientCount).Error)
	require.NoError(t, db.Model(&models.Instruction{}).Count(&instructionCount).Error)
	assert.EqualValues(t, 0, recipeCount)
	assert.EqualValues(t, 0, ingredientCount)
	assert.EqualValues(t, 0, instructionCount)
}

func TestDeleteRecipeEnforcesOwnership(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	recipe, err := svc.SubmitRecipe(ctx, publishablePayload(), false)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteRecipe(ctx, recipe.ID, uuid.New()), ErrForbidden)
	assert.ErrorIs(t, svc.DeleteRecipe(ctx, uuid.New(), recipe.AuthorID), ErrNotFound)
}

func TestPublishRecipeEnforcesInvariant(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	draft, err := svc.SubmitRecipe(ctx, validation.RecipePayload{
		FirstName: "Lin",
		LastName:  "Chen",
		Email:     "lin@example.com",
		Title:     "Empty Draft",
	}, true)
	require.NoError(t, err)

	_, err = svc.PublishRecipe(ctx, draft.ID, draft.AuthorID)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "ingredients")
	assert.Contains(t, verr.Fields, "instructions")

	// A complete draft publishes.
	p := publishablePayload()
	complete, err := svc.SubmitRecipe(ctx, p, true)
	require.NoError(t, err)
	require.Equal(t, models.StatusDraft, complete.Status)

	published, err := svc.PublishRecipe(ctx, complete.ID, complete.AuthorID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublished, published.Status)
}

func TestUnpublishRecipe(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	recipe, err := svc.SubmitRecipe(ctx, publishablePayload(), false)
	require.NoError(t, err)

	draft, err := svc.UnpublishRecipe(ctx, recipe.ID, recipe.AuthorID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, draft.Status)
}

func TestLikeRecipe(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	recipe, err := svc.SubmitRecipe(ctx, publishablePayload(), false)
	require.NoError(t, err)

	likes, err := svc.LikeRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, likes)

	likes, err = svc.LikeRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, likes)

	_, err = svc.LikeRecipe(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDuplicateRecipeMakesDraftCopy(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	src, err := svc.SubmitRecipe(ctx, publishablePayload(), false)
	require.NoError(t, err)

	dup, err := svc.DuplicateRecipe(ctx, src.ID, src.AuthorID)
	require.NoError(t, err)
	assert.NotEqual(t, src.ID, dup.ID)
	assert.Equal(t, src.Title+" (Copy)", dup.Title)
	assert.Equal(t, models.StatusDraft, dup.Status)
	assert.Equal(t, src.AuthorID, dup.AuthorID)
	assert.Len(t, dup.Ingredients, len(src.Ingredients))
	assert.Len(t, dup.Instructions, len(src.Instructions))
}
