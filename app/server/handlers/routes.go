package handlers

import (
	"recipe-app-api/app/server/store"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// 上传图片的请求体上限
const uploadBodyLimit = "10M"

// RegisterHandlers 绑定全部路由。 auth 只挂在需要认证的路由上，
// 这样对不支持的方法仍然返回 405 而不是 401 。
func RegisterHandlers(e *echo.Echo, a *App, auth echo.MiddlewareFunc) {
	e.Validator = NewValidator()
	e.HTTPErrorHandler = a.HTTPErrorHandler
	e.Pre(middleware.RemoveTrailingSlash())

	e.GET("/healthz", a.HealthCheck)

	// 用户
	e.POST("/user/create", a.UserCreate)
	e.POST("/user/token", a.UserToken)
	e.GET("/user/me", a.UserInfoGetSelf, auth)
	e.PATCH("/user/me", a.UserInfoUpdateSelf, auth)
	e.PUT("/user/me", a.UserInfoReplaceSelf, auth)

	// recipe
	e.GET("/recipe", a.RecipeList, auth)
	e.POST("/recipe", a.RecipeCreate, auth)
	e.GET("/recipe/:id", a.RecipeGet, auth)
	e.PUT("/recipe/:id", a.RecipeReplace, auth)
	e.PATCH("/recipe/:id", a.RecipeUpdate, auth)
	e.DELETE("/recipe/:id", a.RecipeDelete, auth)
	e.POST("/recipe/:id/upload-image", a.RecipeUploadImage, auth, middleware.BodyLimit(uploadBodyLimit))

	// tag / ingredient ，没有单独创建的接口
	for prefix, kind := range map[string]store.Kind{
		"/tag":        store.KindTag,
		"/ingredient": store.KindIngredient,
	} {
		e.GET(prefix, a.LabelList(kind), auth)
		e.GET(prefix+"/:id", a.LabelGet(kind), auth)
		e.PUT(prefix+"/:id", a.LabelUpdate(kind, false), auth)
		e.PATCH(prefix+"/:id", a.LabelUpdate(kind, true), auth)
		e.DELETE(prefix+"/:id", a.LabelDelete(kind), auth)
	}
}
