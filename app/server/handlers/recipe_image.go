package handlers

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"recipe-app-api/app/server/store"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// 支持的图片格式及保存时使用的扩展名
var imageExtensions = map[string]string{
	"jpeg": "jpg",
	"png":  "png",
	"gif":  "gif",
}

func (a *App) RecipeUploadImage(c echo.Context) error {
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

	// 先确认 recipe 存在且属于当前用户
	if _, err = a.recipes.Get(rctx, user.ID, id); err != nil {
		return a.es(c, err, "failed to get recipe", zap.Uint("id", id))
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return a.ev(c, store.FieldError("image", "No file was submitted."))
	}
	f, err := fh.Open()
	if err != nil {
		a.l.Error("failed to open uploaded file", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	defer f.Close()

	// 校验图片格式
	_, format, err := image.DecodeConfig(f)
	ext, supported := imageExtensions[format]
	if err != nil || !supported {
		return a.ev(c, store.FieldError("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image."))
	}
	if _, err = f.Seek(0, io.SeekStart); err != nil {
		a.l.Error("failed to rewind uploaded file", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 保存文件
	rel, err := a.media.SaveRecipeImage(f, ext)
	if err != nil {
		a.l.Error("failed to save recipe image", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	previous, err := a.recipes.SetImage(rctx, user.ID, id, rel)
	if err != nil {
		// 记录没有更新，刚保存的文件也不需要了
		if rmErr := a.media.Remove(rel); rmErr != nil {
			a.l.Error("failed to remove orphan image", zap.String("path", rel), zap.Error(rmErr))
		}
		return a.es(c, err, "failed to set recipe image", zap.Uint("id", id))
	}

	// 新图片已经生效，清理旧文件
	if previous != nil && *previous != "" && *previous != rel {
		if err = a.media.Remove(*previous); err != nil {
			a.l.Error("failed to remove previous image", zap.String("path", *previous), zap.Error(err))
		}
	}

	return c.JSON(http.StatusOK, &RecipeImage{
		ID:    id,
		Image: a.imageURL(&rel),
	})
}
