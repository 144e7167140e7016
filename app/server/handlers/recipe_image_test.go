package handlers

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"recipe-app-api/app/server/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	buf := bytes.NewBuffer(nil)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func (env *testEnv) upload(t *testing.T, target string, field string, content []byte, token string) *httptest.ResponseRecorder {
	t.Helper()

	body := bytes.NewBuffer(nil)
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile(field, "image.png")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

// imagePath 把对外的 URL 换算回存储目录里的文件
func (env *testEnv) imagePath(t *testing.T, url string) string {
	t.Helper()

	require.True(t, strings.HasPrefix(url, "/static/media/"), url)
	return filepath.Join(env.mediaRoot, filepath.FromSlash(strings.TrimPrefix(url, "/static/media/")))
}

func TestRecipeUploadImage(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "user@example.com")
	recipe := env.createRecipe(t, token, recipePayload("Sample"))
	target := fmt.Sprintf("/recipe/%d/upload-image", recipe.ID)

	rec := env.upload(t, target, "image", pngBytes(t), token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[RecipeImage](t, rec)
	assert.Equal(t, recipe.ID, res.ID)
	require.NotNil(t, res.Image)
	assert.True(t, strings.HasPrefix(*res.Image, "/static/media/uploads/recipe/"), *res.Image)
	assert.True(t, strings.HasSuffix(*res.Image, ".png"), *res.Image)

	first := env.imagePath(t, *res.Image)
	assert.FileExists(t, first)

	// 详情里能看到图片
	rec = env.do(t, http.MethodGet, fmt.Sprintf("/recipe/%d", recipe.ID), nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[RecipeDetail](t, rec)
	require.NotNil(t, detail.Image)
	assert.Equal(t, *res.Image, *detail.Image)

	// 再次上传会替换并清理旧文件
	rec = env.upload(t, target, "image", pngBytes(t), token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	second := env.imagePath(t, *decode[RecipeImage](t, rec).Image)
	assert.NotEqual(t, first, second)
	assert.FileExists(t, second)
	assert.NoFileExists(t, first)

	// 删除 recipe 时一并删除图片
	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/recipe/%d", recipe.ID), nil, token)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.NoFileExists(t, second)
}

func TestRecipeUploadImage_Invalid(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "user@example.com")
	_, otherToken := env.createUser(t, "other@example.com")
	recipe := env.createRecipe(t, token, recipePayload("Sample"))
	target := fmt.Sprintf("/recipe/%d/upload-image", recipe.ID)

	rec := env.upload(t, target, "image", []byte("notanimage"), token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[ErrorMessage](t, rec).Fields, "image")

	rec = env.upload(t, target, "file", pngBytes(t), token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[ErrorMessage](t, rec).Fields, "image")

	rec = env.upload(t, target, "image", pngBytes(t), otherToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var stored models.Recipe
	require.NoError(t, env.db.Take(&stored, recipe.ID).Error)
	assert.Nil(t, stored.Image)

	// 没有留下任何文件
	entries, err := os.ReadDir(env.mediaRoot)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, entry.Name() == "uploads", "unexpected upload directory")
	}
}
