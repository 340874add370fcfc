package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateup/backend/internal/models"
	"github.com/plateup/backend/internal/validation"
)

func recipePayload(email string) validation.RecipePayload {
	return validation.RecipePayload{
		FirstName:   "Marco",
		LastName:    "Rossi",
		Email:       email,
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
		},
		Instructions: []validation.InstructionPayload{
			{Instruction: "Boil pasta.", Duration: 10},
		},
	}
}

type recipeEnvelope struct {
	Recipe models.Recipe `json:"recipe"`
}

func (e *testEnv) createRecipe(t *testing.T, email string) models.Recipe {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/recipes", "", CreateRecipeRequest{Recipe: recipePayload(email)})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp recipeEnvelope
	decode(t, w, &resp)
	return resp.Recipe
}

func TestCreateRecipeAnonymous(t *testing.T) {
	env := setupTestEnv(t)

	recipe := env.createRecipe(t, "marco@example.com")
	assert.Equal(t, "Classic Spaghetti Carbonara", recipe.Title)
	assert.Equal(t, models.StatusPublished, recipe.Status)
	require.NotNil(t, recipe.Author)
	assert.Equal(t, "marcorossi", recipe.Author.Username)
}

func TestCreateRecipeValidationFailure(t *testing.T) {
	env := setupTestEnv(t)

	p := recipePayload("marco@example.com")
	p.Title = ""
	w := env.do(t, http.MethodPost, "/api/v1/recipes", "", CreateRecipeRequest{Recipe: p})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "Missing required fields", resp.Error)
	assert.Equal(t, "Title is required", resp.Fields["title"])
}

func TestCreateRecipeDraftBypassesValidation(t *testing.T) {
	env := setupTestEnv(t)

	p := validation.RecipePayload{
		FirstName: "Lin",
		LastName:  "Chen",
		Email:     "lin@example.com",
		Title:     "Sketch",
	}
	w := env.do(t, http.MethodPost, "/api/v1/recipes", "", CreateRecipeRequest{Recipe: p, IsDraft: true})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp recipeEnvelope
	decode(t, w, &resp)
	assert.Equal(t, models.StatusDraft, resp.Recipe.Status)
}

func TestListRecipesReturnsBareArray(t *testing.T) {
	env := setupTestEnv(t)
	env.createRecipe(t, "marco@example.com")

	w := env.do(t, http.MethodGet, "/api/v1/recipes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The body is a JSON array, not an envelope.
	var recipes []models.Recipe
	decode(t, w, &recipes)
	require.Len(t, recipes, 1)
	assert.NotNil(t, recipes[0].Author)
	assert.Len(t, recipes[0].Ingredients, 1)
}

func TestGetRecipe(t *testing.T) {
	env := setupTestEnv(t)
	created := env.createRecipe(t, "marco@example.com")

	w := env.do(t, http.MethodGet, "/api/v1/recipes/"+created.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/recipes/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/recipes/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateRecipeRequiresAuth(t *testing.T) {
	env := setupTestEnv(t)
	created := env.createRecipe(t, "marco@example.com")

	w := env.do(t, http.MethodPut, "/api/v1/recipes/"+created.ID.String(), "",
		CreateRecipeRequest{Recipe: recipePayload("marco@example.com")})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateRecipeAuthorOnly(t *testing.T) {
	env := setupTestEnv(t)
	// The registered account and the recipe author share an email, so the
	// submission resolves to the same user.
	token := env.register(t, "marco@example.com")
	created := env.createRecipe(t, "marco@example.com")

	p := recipePayload("marco@example.com")
	p.Title = "Carbonara, Improved"
	w := env.do(t, http.MethodPut, "/api/v1/recipes/"+created.ID.String(), token,
		CreateRecipeRequest{Recipe: p})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp recipeEnvelope
	decode(t, w, &resp)
	assert.Equal(t, "Carbonara, Improved", resp.Recipe.Title)

	// A different account gets 403.
	other := env.register(t, "intruder@example.com")
	w = env.do(t, http.MethodPut, "/api/v1/recipes/"+created.ID.String(), other,
		CreateRecipeRequest{Recipe: p})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteRecipe(t *testing.T) {
	env := setupTestEnv(t)
	token := env.register(t, "marco@example.com")
	created := env.createRecipe(t, "marco@example.com")

	w := env.do(t, http.MethodDelete, "/api/v1/recipes/"+created.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/recipes/"+created.ID.String(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublishLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	token := env.register(t, "marco@example.com")

	w := env.do(t, http.MethodPost, "/api/v1/recipes", "",
		CreateRecipeRequest{Recipe: recipePayload("marco@example.com"), IsDraft: true})
	require.Equal(t, http.StatusCreated, w.Code)
	var created recipeEnvelope
	decode(t, w, &created)
	require.Equal(t, models.StatusDraft, created.Recipe.Status)

	id := created.Recipe.ID.String()

	w = env.do(t, http.MethodPost, "/api/v1/recipes/"+id+"/publish", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var published recipeEnvelope
	decode(t, w, &published)
	assert.Equal(t, models.StatusPublished, published.Recipe.Status)

	w = env.do(t, http.MethodPost, "/api/v1/recipes/"+id+"/unpublish", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var unpublished recipeEnvelope
	decode(t, w, &unpublished)
	assert.Equal(t, models.StatusDraft, unpublished.Recipe.Status)
}

func TestPublishIncompleteDraftFails(t *testing.T) {
	env := setupTestEnv(t)
	token := env.register(t, "marco@example.com")

	w := env.do(t, http.MethodPost, "/api/v1/recipes", "", CreateRecipeRequest{
		Recipe: validation.RecipePayload{
			FirstName: "Marco",
			LastName:  "Rossi",
			Email:     "marco@example.com",
			Title:     "Bare Draft",
		},
		IsDraft: true,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created recipeEnvelope
	decode(t, w, &created)

	w = env.do(t, http.MethodPost, "/api/v1/recipes/"+created.Recipe.ID.String()+"/publish", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	decode(t, w, &resp)
	assert.Contains(t, resp.Fields, "ingredients")
}

func TestDuplicateRecipe(t *testing.T) {
	env := setupTestEnv(t)
	token := env.register(t, "marco@example.com")
	created := env.createRecipe(t, "marco@example.com")

	w := env.do(t, http.MethodPost, "/api/v1/recipes/"+created.ID.String()+"/duplicate", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp recipeEnvelope
	decode(t, w, &resp)
	assert.Equal(t, created.Title+" (Copy)", resp.Recipe.Title)
	assert.Equal(t, models.StatusDraft, resp.Recipe.Status)
	assert.NotEqual(t, created.ID, resp.Recipe.ID)
}

func TestLikeRecipe(t *testing.T) {
	env := setupTestEnv(t)
	created := env.createRecipe(t, "marco@example.com")

	w := env.do(t, http.MethodPost, "/api/v1/recipes/"+created.ID.String()+"/like", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Likes int `json:"likes"`
	}
	decode(t, w, &resp)
	assert.Equal(t, 1, resp.Likes)
}
