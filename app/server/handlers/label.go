package handlers

import (
	"net/http"
	"recipe-app-api/app/server/store"
	"recipe-app-api/app/server/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// tag 和 ingredient 的接口完全一致，按 kind 生成各自的 handler

func (a *App) LabelList(kind store.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
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

		labels, count, err := a.labels.List(rctx, user.ID, kind, store.LabelFilter{
			AssignedOnly: utils.Truthy(c.QueryParam("assigned_only")),
			Page:         page,
		})
		if err != nil {
			return a.es(c, err, "failed to get "+kind.Name+" list", zap.Uint("user", user.ID))
		}

		res := []LabelInfo{}
		for i := range labels {
			res = append(res, labelInfo(&labels[i]))
		}

		a.setPagination(c, count, page)
		return c.JSON(http.StatusOK, res)
	}
}

func (a *App) LabelGet(kind store.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
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

		label, err := a.labels.Get(rctx, user.ID, kind, id)
		if err != nil {
			return a.es(c, err, "failed to get "+kind.Name, zap.Uint("id", id))
		}

		return c.JSON(http.StatusOK, labelInfo(label))
	}
}

// LabelUpdate 处理 PATCH （ partial ）和 PUT ，唯一可写的字段是 name
func (a *App) LabelUpdate(kind store.Kind, partial bool) echo.HandlerFunc {
	return func(c echo.Context) error {
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
		var name *string
		if partial {
			var req LabelUpdateRequest
			if err = c.Bind(&req); err != nil {
				a.l.Debug("failed to bind request", zap.Error(err))
				return a.er(c, http.StatusBadRequest)
			}
			name = req.Name
		} else {
			var req LabelReplaceRequest
			if err = c.Bind(&req); err != nil {
				a.l.Debug("failed to bind request", zap.Error(err))
				return a.er(c, http.StatusBadRequest)
			}
			if err = c.Validate(&req); err != nil {
				return a.es(c, err, "failed to validate request")
			}
			name = req.Name
		}

		// 没有要修改的内容
		if name == nil {
			label, err := a.labels.Get(rctx, user.ID, kind, id)
			if err != nil {
				return a.es(c, err, "failed to get "+kind.Name, zap.Uint("id", id))
			}
			return c.JSON(http.StatusOK, labelInfo(label))
		}

		label, err := a.labels.Rename(rctx, user.ID, kind, id, *name)
		if err != nil {
			return a.es(c, err, "failed to update "+kind.Name, zap.Uint("id", id))
		}

		return c.JSON(http.StatusOK, labelInfo(label))
	}
}

func (a *App) LabelDelete(kind store.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
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

		if err = a.labels.Delete(rctx, user.ID, kind, id); err != nil {
			return a.es(c, err, "failed to delete "+kind.Name, zap.Uint("id", id))
		}

		return c.NoContent(http.StatusNoContent)
	}
}
