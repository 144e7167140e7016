package handlers

import (
	"net/http"
	"recipe-app-api/app/server/store"
	"recipe-app-api/app/server/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// idsParam 读取逗号分隔的 id 列表参数，参数不存在时返回 nil （不筛选）
func idsParam(c echo.Context, name string) []uint {
	if !c.QueryParams().Has(name) {
		return nil
	}
	return utils.ParseIDs(c.QueryParam(name))
}

func (a *App) RecipeList(c echo.Context) error {
	user, err := a.authUser(c)
	if err != nil {
		a.l.Error("failed to get auth user", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	page, err := a.parsePagination(c)
	if err != nil {
		return err
	}

	recipes, count, err := a.recipes.List(rctx, user.ID, store.RecipeFilter{
		Tags:        idsParam(c, "tags"),
		Ingredients: idsParam(c, "ingredients"),
		Page:        page,
	})
	if err != nil {
		return a.es(c, err, "failed to get recipe list", zap.Uint("user", user.ID))
	}

	res := []RecipeInfo{}
	for i := range recipes {
		res = append(res, recipeInfo(&recipes[i]))
	}

	a.setPagination(c, count, page)
	return c.JSON(http.StatusOK, res)
}

func (a *App) RecipeGet(c echo.Context) error {
	user, err := a.authUser(c)
	if err != nil {
		a.l.Error("failed to get auth user", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}

	id, ok := a.paramID(c)
	if !ok {
		return a.er(c, http.StatusNotFound)
	}

	rctx := c.Request().Context()

	recipe, err := a.recipes.Get(rctx, user.ID, id)
	if err != nil {
		return a.es(c, err, "failed to get recipe", zap.Uint("id", id))
	}

	return c.JSON(http.StatusOK, a.recipeDetail(recipe))
}

func (a *App) RecipeCreate(c echo.Context) error {
	user, err := a.authUser(c)
	if err != nil {
		a.l.Error("failed to get auth user", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req RecipeRequest
	if err = c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	in, err := req.input()
	if err != nil {
		return a.es(c, err, "failed to create recipe")
	}

	// 创建 recipe ，同时整理 tags 和 ingredients
	recipe, err := a.recipes.Create(rctx, user.ID, in)
	if err != nil {
		return a.es(c, err, "failed to create recipe", zap.Uint("user", user.ID))
	}

	return c.JSON(http.StatusCreated, a.recipeDetail(recipe))
}

func (a *App) RecipeUpdate(c echo.Context) error {
	return a.recipeUpdate(c, true)
}

func (a *App) RecipeReplace(c echo.Context) error {
	return a.recipeUpdate(c, false)
}

func (a *App) recipeUpdate(c echo.Context, partial bool) error {
	user, err := a.authUser(c)
	if err != nil {
		a.l.Error("failed to get auth user", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}

	id, ok := a.paramID(c)
	if !ok {
		return a.er(c, http.StatusNotFound)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req RecipeRequest
	if err = c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	in, err := req.input()
	if err != nil {
		return a.es(c, err, "failed to update recipe", zap.Uint("id", id))
	}

	recipe, err := a.recipes.Update(rctx, user.ID, id, in, partial)
	if err != nil {
		return a.es(c, err, "failed to update recipe", zap.Uint("id", id))
	}

	return c.JSON(http.StatusOK, a.recipeDetail(recipe))
}

func (a *App) RecipeDelete(c echo.Context) error {
	user, err := a.authUser(c)
	if err != nil {
		a.l.Error("failed to get auth user", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}

	id, ok := a.paramID(c)
	if !ok {
		return a.er(c, http.StatusNotFound)
	}

	rctx := c.Request().Context()

	recipe, err := a.recipes.Delete(rctx, user.ID, id)
	if err != nil {
		return a.es(c, err, "failed to delete recipe", zap.Uint("id", id))
	}

	// 记录已经删除，图片文件清理失败只记日志
	if recipe.Image != nil && *recipe.Image != "" {
		if err = a.media.Remove(*recipe.Image); err != nil {
			a.l.Error("failed to remove recipe image", zap.Uint("id", id), zap.Error(err))
		}
	}

	return c.NoContent(http.StatusNoContent)
}
