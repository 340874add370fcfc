package main

import (
	"context"

	"github.com/plateup/backend/config"
	"github.com/plateup/backend/internal/database"
	"github.com/plateup/backend/internal/service"
	"github.com/plateup/backend/internal/validation"
	"github.com/plateup/backend/pkg/logger"
)

// Seeds the database with a handful of sample recipes so the feed has
// something to show on a fresh install.
func main() {
	log := logger.New()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	recipes := service.NewRecipeService(db)
	ctx := context.Background()

	for _, payload := range samplePayloads() {
		recipe, err := recipes.SubmitRecipe(ctx, payload, false)
		if err != nil {
			log.Fatal().Err(err).Str("title", payload.Title).Msg("failed to seed recipe")
		}
		log.Info().Str("id", recipe.ID.String()).Str("title", recipe.Title).Msg("seeded recipe")
	}
}

func samplePayloads() []validation.RecipePayload {
	return []validation.RecipePayload{
		{
			FirstName:   "Marco",
			LastName:    "Rossi",
			Email:       "marco.rossi@example.com",
			Title:       "Classic Spaghetti Carbonara",
			Description: "Creamy Italian pasta dish with eggs, cheese, and pancetta. This authentic Roman recipe creates a silky sauce without cream, using just eggs, cheese, and pasta water.",
			Image:       "https://images.unsplash.com/photo-1621996346565-e3dbc353d2e5?w=800&h=600&fit=crop",
			PrepTime:    15,
			CookingTime: 25,
			Servings:    4,
			Difficulty:  "Medium",
			Cuisine:     "Italian",
			DietaryPreferences: []string{"Vegetarian"},
			Tags:               []string{"pasta", "italian", "comfort-food", "authentic", "roman"},
			Ingredients: []validation.IngredientPayload{
				{Name: "Spaghetti", Amount: "400", Unit: "g"},
				{Name: "Large eggs", Amount: "3", Unit: "whole"},
				{Name: "Parmesan cheese", Amount: "100", Unit: "g"},
				{Name: "Pancetta", Amount: "150", Unit: "g"},
				{Name: "Black pepper", Amount: "1", Unit: "tsp"},
				{Name: "Salt", Amount: "to taste", Unit: ""},
			},
			Instructions: []validation.InstructionPayload{
				{Instruction: "Bring a large pot of salted water to boil. Cook spaghetti according to package directions until al dente.", Duration: 10},
				{Instruction: "While pasta cooks, cut pancetta into small cubes and cook in a large skillet over medium heat until crispy, about 5-7 minutes.", Duration: 7},
				{Instruction: "In a bowl, whisk together eggs, grated Parmesan, and freshly ground black pepper.", Duration: 3},
				{Instruction: "Reserve 1 cup pasta water before draining. Add hot pasta to the skillet with pancetta.", Duration: 2},
				{Instruction: "Remove from heat and quickly toss with egg mixture, adding pasta water gradually until creamy. Serve immediately.", Duration: 3},
			},
		},
		{
			FirstName:   "Lin",
			LastName:    "Chen",
			Email:       "lin.chen@example.com",
			Title:       "Asian Vegetable Stir Fry",
			Description: "Quick and healthy stir-fry with fresh vegetables and soy sauce",
			Image:       "https://images.unsplash.com/photo-1512058564366-18510be2db19?w=800&h=600&fit=crop",
			PrepTime:    5,
			CookingTime: 15,
			Servings:    2,
			Difficulty:  "Easy",
			Cuisine:     "Asian",
			DietaryPreferences: []string{"Vegetarian", "Vegan", "Gluten-free"},
			Tags:               []string{"stir-fry", "healthy", "quick", "vegetables"},
			Ingredients: []validation.IngredientPayload{
				{Name: "Mixed vegetables", Amount: "300", Unit: "g"},
				{Name: "Soy sauce", Amount: "2", Unit: "tbsp"},
				{Name: "Garlic", Amount: "2", Unit: "cloves"},
				{Name: "Ginger", Amount: "1", Unit: "inch"},
				{Name: "Sesame oil", Amount: "1", Unit: "tbsp"},
			},
			Instructions: []validation.InstructionPayload{
				{Instruction: "Heat oil in a wok or large skillet over high heat.", Duration: 2},
				{Instruction: "Add garlic and ginger, stir-fry for 30 seconds.", Duration: 1},
				{Instruction: "Add mixed vegetables and stir-fry until tender-crisp.", Duration: 7},
				{Instruction: "Pour in soy sauce and stir to coat. Serve hot.", Duration: 5},
			},
		},
		{
			FirstName:   "Sarah",
			LastName:    "Johnson",
			Email:       "sarah.johnson@example.com",
			Title:       "Classic American Cheeseburger",
			Description: "Juicy beef patty with melted cheese on a toasted bun",
			Image:       "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=800&h=600&fit=crop",
			PrepTime:    10,
			CookingTime: 20,
			Servings:    4,
			Difficulty:  "Easy",
			Cuisine:     "American",
			Tags:               []string{"burger", "grilling", "american", "classic"},
			Ingredients: []validation.IngredientPayload{
				{Name: "Ground beef", Amount: "500", Unit: "g"},
				{Name: "Burger buns", Amount: "4", Unit: "whole"},
				{Name: "Cheddar cheese", Amount: "4", Unit: "slices"},
				{Name: "Lettuce", Amount: "4", Unit: "leaves"},
				{Name: "Tomato", Amount: "1", Unit: "whole"},
			},
			Instructions: []validation.InstructionPayload{
				{Instruction: "Form beef into 4 equal patties and season with salt and pepper.", Duration: 5},
				{Instruction: "Grill patties over medium-high heat, 4-5 minutes per side.", Duration: 10},
				{Instruction: "Top each patty with cheese in the last minute of cooking.", Duration: 1},
				{Instruction: "Toast buns and assemble burgers with lettuce and tomato.", Duration: 4},
			},
		},
	}
}
