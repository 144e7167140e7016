package handlers

import (
	"fmt"
	"recipe-app-api/app/server/middlewares"
	"recipe-app-api/app/server/types"

	"github.com/labstack/echo/v4"
)

// authUser 取出认证中间件放进上下文的用户
func (a *App) authUser(c echo.Context) (*types.AuthUser, error) {
	user, ok := c.Get(middlewares.ContextKeyUser).(*types.AuthUser)
	if !ok || user == nil {
		return nil, fmt.Errorf("no authenticated user in context")
	}
	return user, nil
}
