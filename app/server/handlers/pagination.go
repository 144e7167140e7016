package handlers

import (
	"net/http"
	"recipe-app-api/app/server/store"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	HeaderTotalCount = "X-Total-Count"
	HeaderPageMax    = "X-Page-Max"
)

// parsePagination 解析 page / limit 查询参数。
// 没有给 limit （或为 0 ）时展示全部；页码从 1 开始。
func (a *App) parsePagination(c echo.Context) (store.Page, error) {
	var page, limit uint
	if err := echo.QueryParamsBinder(c).
		Uint("page", &page).
		Uint("limit", &limit).
		BindError(); err != nil {
		return store.Page{}, echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}

	if limit == 0 {
		// 展示全部
		return store.Page{}, nil
	}
	// 映射前：第几页，每页限制多少个
	// 映射后：跳过前面的页
	if page < 1 {
		page = 1
	}

	return store.Page{
		Limit:  int(limit),
		Offset: int((page - 1) * limit),
	}, nil
}

func (a *App) calcMaxPage(count int64, p store.Page) int64 {
	if p.Limit <= 0 {
		return 1
	}
	pageMax := count / int64(p.Limit)
	if (count % int64(p.Limit)) != 0 {
		pageMax++
	}
	return pageMax
}

// setPagination 在分页时写入总数和最大页数
func (a *App) setPagination(c echo.Context, count int64, p store.Page) {
	if p.Limit <= 0 {
		return
	}
	c.Response().Header().Set(HeaderTotalCount, strconv.FormatInt(count, 10))
	c.Response().Header().Set(HeaderPageMax, strconv.FormatInt(a.calcMaxPage(count, p), 10))
}

// paramID 解析路径里的 id ，无效的 id 按找不到处理
func (a *App) paramID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
