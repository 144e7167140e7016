package store

import (
	"context"
	"errors"
	"fmt"
	"recipe-app-api/app/server/models"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeInput recipe 的可写字段， nil 表示请求里没有这个键。
// Tags / Ingredients 非 nil 时（哪怕是空列表）会整体替换现有关联。
type RecipeInput struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	TimeMinutes *int
	Link        *string
	Tags        *[]LabelInput
	Ingredients *[]LabelInput
}

// 价格 numeric(5,2) 的上限
var maxPrice = decimal.RequireFromString("999.99")

type Recipes struct {
	db *gorm.DB
}

// recipeChanges 校验通过后的写入内容
type recipeChanges struct {
	in          RecipeInput
	tags        []string
	ingredients []string
}

func validateRecipeInput(in RecipeInput, partial bool) (*recipeChanges, error) {
	verr := &ValidationError{}
	ch := &recipeChanges{in: in}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		ch.in.Title = &title
		if title == "" {
			verr.Add("title", msgBlank)
		} else if len(title) > maxNameLength {
			verr.Add("title", msgMaxLength(maxNameLength))
		}
	} else if !partial {
		verr.Add("title", msgRequired)
	}

	if in.TimeMinutes != nil {
		if *in.TimeMinutes < 0 {
			verr.Add("time_minutes", "Ensure this value is greater than or equal to 0.")
		}
	} else if !partial {
		verr.Add("time_minutes", msgRequired)
	}

	if in.Price != nil {
		switch {
		case in.Price.IsNegative():
			verr.Add("price", "Ensure this value is greater than or equal to 0.")
		case in.Price.GreaterThan(maxPrice):
			verr.Add("price", "Ensure that there are no more than 5 digits in total.")
		case !in.Price.Equal(in.Price.Truncate(2)):
			verr.Add("price", "Ensure that there are no more than 2 decimal places.")
		}
	} else if !partial {
		verr.Add("price", msgRequired)
	}

	if in.Link != nil {
		link := strings.TrimSpace(*in.Link)
		ch.in.Link = &link
		if len(link) > maxNameLength {
			verr.Add("link", msgMaxLength(maxNameLength))
		}
	}

	if in.Tags != nil {
		ch.tags = normalizeLabels("tags", *in.Tags, verr)
	}
	if in.Ingredients != nil {
		ch.ingredients = normalizeLabels("ingredients", *in.Ingredients, verr)
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return ch, nil
}

func (ch *recipeChanges) apply(recipe *models.Recipe) {
	if ch.in.Title != nil {
		recipe.Title = *ch.in.Title
	}
	if ch.in.Description != nil {
		recipe.Description = *ch.in.Description
	}
	if ch.in.Price != nil {
		recipe.Price = *ch.in.Price
	}
	if ch.in.TimeMinutes != nil {
		recipe.TimeMinutes = uint(*ch.in.TimeMinutes)
	}
	if ch.in.Link != nil {
		recipe.Link = *ch.in.Link
	}
}

// relations 在事务里整理两类关联，两者互不影响
func (ch *recipeChanges) relations(tx *gorm.DB, userID uint, recipeID uint, replace bool) error {
	if ch.in.Tags != nil {
		if err := reconcile(tx, userID, KindTag, ch.tags, recipeID, replace); err != nil {
			return err
		}
	}
	if ch.in.Ingredients != nil {
		if err := reconcile(tx, userID, KindIngredient, ch.ingredients, recipeID, replace); err != nil {
			return err
		}
	}
	return nil
}

func preloadLabels(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id ASC") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("ingredients.id ASC") })
}

func takeRecipe(db *gorm.DB, userID uint, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := scoped(db, userID).Take(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get recipe %d: %w", id, err)
	}
	return &recipe, nil
}

func (r *Recipes) List(ctx context.Context, userID uint, f RecipeFilter) ([]models.Recipe, int64, error) {
	q := recipeQuery(r.db.WithContext(ctx), userID, f).Session(&gorm.Session{})

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("count recipes: %w", err)
	}

	recipes := []models.Recipe{}
	if err := preloadLabels(f.Page.apply(q.Order("id DESC"))).Find(&recipes).Error; err != nil {
		return nil, 0, fmt.Errorf("list recipes: %w", err)
	}

	return recipes, count, nil
}

func (r *Recipes) Get(ctx context.Context, userID uint, id uint) (*models.Recipe, error) {
	return takeRecipe(preloadLabels(r.db.WithContext(ctx)), userID, id)
}

func (r *Recipes) Create(ctx context.Context, userID uint, in RecipeInput) (*models.Recipe, error) {
	// 先完成全部校验，再动数据库
	ch, err := validateRecipeInput(in, false)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{UserID: userID}
	ch.apply(&recipe)

	if err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 先有 recipe 的 id ，才能挂关联
		if err := tx.Omit(clause.Associations).Create(&recipe).Error; err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}
		return ch.relations(tx, userID, recipe.ID, false)
	}); err != nil {
		return nil, err
	}

	return r.Get(ctx, userID, recipe.ID)
}

func (r *Recipes) Update(ctx context.Context, userID uint, id uint, in RecipeInput, partial bool) (*models.Recipe, error) {
	ch, err := validateRecipeInput(in, partial)
	if err != nil {
		return nil, err
	}

	if err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := takeRecipe(tx, userID, id)
		if err != nil {
			return err
		}

		ch.apply(recipe)
		if err = tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return fmt.Errorf("update recipe %d: %w", id, err)
		}

		return ch.relations(tx, userID, recipe.ID, true)
	}); err != nil {
		return nil, err
	}

	return r.Get(ctx, userID, id)
}

// Delete 删除 recipe 及其关联，返回被删除的记录（调用方据此清理图片文件）
func (r *Recipes) Delete(ctx context.Context, userID uint, id uint) (*models.Recipe, error) {
	var deleted *models.Recipe
	if err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := takeRecipe(tx, userID, id)
		if err != nil {
			return err
		}

		for _, kind := range []Kind{KindTag, KindIngredient} {
			if err = tx.Exec("DELETE FROM "+kind.JoinTable+" WHERE recipe_id = ?", recipe.ID).Error; err != nil {
				return fmt.Errorf("detach %s of recipe %d: %w", kind.Table, id, err)
			}
		}
		if err = tx.Delete(&models.Recipe{}, recipe.ID).Error; err != nil {
			return fmt.Errorf("delete recipe %d: %w", id, err)
		}

		deleted = recipe
		return nil
	}); err != nil {
		return nil, err
	}

	return deleted, nil
}

// SetImage 记录新的图片路径，返回被替换掉的旧路径
func (r *Recipes) SetImage(ctx context.Context, userID uint, id uint, path string) (*string, error) {
	var previous *string
	if err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := takeRecipe(tx, userID, id)
		if err != nil {
			return err
		}
		previous = recipe.Image

		if err = tx.Model(recipe).Update("image", path).Error; err != nil {
			return fmt.Errorf("set image of recipe %d: %w", id, err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return previous, nil
}
