package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-app-api/app/server/inits"
	"recipe-app-api/app/server/jwt"
	"recipe-app-api/app/server/media"
	"recipe-app-api/app/server/middlewares"
	"recipe-app-api/app/server/models"
	"recipe-app-api/app/server/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	e         *echo.Echo
	db        *gorm.DB
	s         *store.Store
	j         *jwt.JWT
	mr        *miniredis.Miniredis
	mediaRoot string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, inits.Migrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	j, err := jwt.New("test-signature-key", time.Hour)
	require.NoError(t, err)

	mediaRoot := t.TempDir()
	m, err := media.New(mediaRoot, "/static/media/")
	require.NoError(t, err)

	l := zaptest.NewLogger(t)
	s := store.New(db)

	e := echo.New()
	RegisterHandlers(e, NewApp(l, rdb, j, s, m), middlewares.UserAuth(j, s.Users, rdb, l))

	return &testEnv{
		e:         e,
		db:        db,
		s:         s,
		j:         j,
		mr:        mr,
		mediaRoot: mediaRoot,
	}
}

// createUser 创建用户并签发 token
func (env *testEnv) createUser(t *testing.T, email string) (*models.User, string) {
	t.Helper()

	password := "testpass123"
	name := "Test Name"
	user, err := env.s.Users.Create(context.Background(), store.UserInput{
		Email:    &email,
		Password: &password,
		Name:     &name,
	})
	require.NoError(t, err)

	token, err := env.j.Issue(user.ID)
	require.NoError(t, err)
	return user, token
}

func (env *testEnv) do(t *testing.T, method string, target string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func recipePayload(title string) map[string]any {
	return map[string]any{
		"title":        title,
		"time_minutes": 22,
		"price":        "5.25",
		"description":  "Sample description",
		"link":         "https://example.com/recipe.pdf",
	}
}

func (env *testEnv) createRecipe(t *testing.T, token string, payload map[string]any) RecipeDetail {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/recipe", payload, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[RecipeDetail](t, rec)
}

func names(labels []LabelInfo) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		out = append(out, l.Name)
	}
	return out
}
