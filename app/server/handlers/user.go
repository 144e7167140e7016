package handlers

import (
	"errors"
	"net/http"
	"recipe-app-api/app/server/middlewares"
	"recipe-app-api/app/server/models"
	"recipe-app-api/app/server/store"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func userInfo(user *models.User) *UserInfo {
	return &UserInfo{
		Email: user.Email,
		Name:  user.Name,
	}
}

func (a *App) UserCreate(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req UserCreateRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if err := c.Validate(&req); err != nil {
		return a.es(c, err, "failed to validate request")
	}

	// 创建用户
	user, err := a.users.Create(rctx, store.UserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return a.es(c, err, "failed to create user")
	}

	return c.JSON(http.StatusCreated, userInfo(user))
}

func (a *App) UserToken(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req TokenRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	// 没有写邮箱或密码
	if err := c.Validate(&req); err != nil {
		return a.es(c, err, "failed to validate request")
	}

	user, err := a.users.Authenticate(rctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			return a.ev(c, store.FieldError("non_field_errors", "Unable to authenticate with provided credentials."))
		}
		a.l.Error("failed to authenticate user", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 签出 JWT
	token, err := a.jwt.Issue(user.ID)
	if err != nil {
		a.l.Error("failed to sign token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 返回
	return c.JSON(http.StatusOK, &LoginToken{
		Token: token,
	})
}

func (a *App) UserInfoGetSelf(c echo.Context) error {
	user, err := a.authUser(c)
	if err != nil {
		a.l.Error("failed to get auth user", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}

	return c.JSON(http.StatusOK, &UserInfo{
		Email: user.Email,
		Name:  user.Name,
	})
}

// UserInfoUpdateSelf 对应 PATCH ，只修改请求里给出的字段
func (a *App) UserInfoUpdateSelf(c echo.Context) error {
	var req UserUpdateRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if err := c.Validate(&req); err != nil {
		return a.es(c, err, "failed to validate request")
	}

	return a.userUpdateSelf(c, store.UserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
}

// UserInfoReplaceSelf 对应 PUT ，邮箱和密码都必须给出
func (a *App) UserInfoReplaceSelf(c echo.Context) error {
	var req UserCreateRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if err := c.Validate(&req); err != nil {
		return a.es(c, err, "failed to validate request")
	}

	return a.userUpdateSelf(c, store.UserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
}

func (a *App) userUpdateSelf(c echo.Context, in store.UserInput) error {
	authUser, err := a.authUser(c)
	if err != nil {
		a.l.Error("failed to get auth user", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	// 更新用户信息
	user, err := a.users.Update(rctx, authUser.ID, in)
	if err != nil {
		return a.es(c, err, "failed to update user", zap.Uint("id", authUser.ID))
	}

	// 清理缓存的用户信息
	if err = middlewares.ForgetUser(rctx, a.rdb, user.ID); err != nil {
		a.l.Error("failed to forget cached user", zap.Uint("id", user.ID), zap.Error(err))
	}

	return c.JSON(http.StatusOK, userInfo(user))
}
