package handlers

import (
	"errors"
	"net/http"
	"recipe-app-api/app/server/store"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *App) er(c echo.Context, statusCode int) error {
	return c.JSON(statusCode, &ErrorMessage{
		Message: http.StatusText(statusCode),
	})
}

// ev 返回字段级别的校验错误
func (a *App) ev(c echo.Context, verr *store.ValidationError) error {
	return c.JSON(http.StatusBadRequest, &ErrorMessage{
		Message: http.StatusText(http.StatusBadRequest),
		Fields:  verr.Fields,
	})
}

// es 把 store 返回的错误映射为响应，意料之外的错误记录日志后按 500 处理
func (a *App) es(c echo.Context, err error, msg string, fields ...zap.Field) error {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		return a.ev(c, verr)
	case errors.Is(err, store.ErrNotFound):
		return a.er(c, http.StatusNotFound)
	case errors.Is(err, store.ErrConflict):
		return a.er(c, http.StatusConflict)
	default:
		a.l.Error(msg, append(fields, zap.Error(err))...)
		return a.er(c, http.StatusInternalServerError)
	}
}

// HTTPErrorHandler 处理路由和中间件产生的错误（ 401 、 404 、 405 以及恢复的 panic ），响应格式与 handler 保持一致
func (a *App) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	statusCode := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		statusCode = he.Code
	}
	if statusCode >= http.StatusInternalServerError {
		a.l.Error("unhandled error", zap.String("URI", c.Request().RequestURI), zap.Error(err))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(statusCode)
	} else {
		err = a.er(c, statusCode)
	}
	if err != nil {
		a.l.Error("failed to send error response", zap.Error(err))
	}
}
