package store

import (
	"context"
	"testing"

	"recipe-app-api/app/server/inits"
	"recipe-app-api/app/server/models"
	"recipe-app-api/app/server/utils"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, inits.Migrate(db))
	return New(db), db
}

func createUser(t *testing.T, s *Store, email string) *models.User {
	t.Helper()
	user, err := s.Users.Create(context.Background(), UserInput{
		Email:    &email,
		Password: utils.P("pass@123"),
		Name:     utils.P("Test user"),
	})
	require.NoError(t, err)
	return user
}

func createRecipe(t *testing.T, s *Store, userID uint, title string, tags []string, ingredients []string) *models.Recipe {
	t.Helper()
	in := RecipeInput{
		Title:       &title,
		TimeMinutes: utils.P(5),
		Price:       utils.P(decimal.RequireFromString("5.55")),
		Link:        utils.P("https://example.com/recipe.pdf"),
		Description: utils.P("Test recipe description"),
	}
	if tags != nil {
		in.Tags = labelInputs(tags...)
	}
	if ingredients != nil {
		in.Ingredients = labelInputs(ingredients...)
	}
	recipe, err := s.Recipes.Create(context.Background(), userID, in)
	require.NoError(t, err)
	return recipe
}

func labelInputs(names ...string) *[]LabelInput {
	in := make([]LabelInput, 0, len(names))
	for _, n := range names {
		in = append(in, LabelInput{Name: utils.P(n)})
	}
	return &in
}

func labelNames[L models.Tag | models.Ingredient](labels []L) []string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		switch v := any(l).(type) {
		case models.Tag:
			names = append(names, v.Name)
		case models.Ingredient:
			names = append(names, v.Name)
		}
	}
	return names
}
