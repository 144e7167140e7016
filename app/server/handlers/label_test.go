package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelList(t *testing.T) {
	for _, prefix := range []string{"/tag", "/ingredient"} {
		key := prefix[1:] + "s"
		t.Run(prefix, func(t *testing.T) {
			env := newTestEnv(t)
			_, token := env.createUser(t, "user@example.com")
			_, otherToken := env.createUser(t, "other@example.com")

			p := recipePayload("Mine")
			p[key] = []map[string]any{{"name": "Kale"}, {"name": "Salt"}}
			env.createRecipe(t, token, p)

			p = recipePayload("Theirs")
			p[key] = []map[string]any{{"name": "Pepper"}}
			env.createRecipe(t, otherToken, p)

			rec := env.do(t, http.MethodGet, prefix, nil, token)
			require.Equal(t, http.StatusOK, rec.Code)
			// 按名称倒序，只包含自己的
			assert.Equal(t, []string{"Salt", "Kale"}, names(decode[[]LabelInfo](t, rec)))

			rec = env.do(t, http.MethodGet, prefix+"?limit=1&page=2", nil, token)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, []string{"Kale"}, names(decode[[]LabelInfo](t, rec)))
			assert.Equal(t, "2", rec.Header().Get(HeaderTotalCount))
		})
	}
}

func TestLabelList_AssignedOnly(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "user@example.com")

	// Breakfast 挂在两个 recipe 上
	p := recipePayload("Coriander eggs on toast")
	p["tags"] = []map[string]any{{"name": "Breakfast"}}
	env.createRecipe(t, token, p)

	p = recipePayload("Herb Eggs")
	p["tags"] = []map[string]any{{"name": "Breakfast"}}
	env.createRecipe(t, token, p)

	// Lunch 挂上之后又被移除
	p = recipePayload("Porridge")
	p["tags"] = []map[string]any{{"name": "Lunch"}}
	r := env.createRecipe(t, token, p)
	rec := env.do(t, http.MethodPatch, fmt.Sprintf("/recipe/%d", r.ID), map[string]any{"tags": []any{}}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	for _, v := range []string{"1", "true"} {
		rec = env.do(t, http.MethodGet, "/tag?assigned_only="+v, nil, token)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"Breakfast"}, names(decode[[]LabelInfo](t, rec)))
	}

	for _, v := range []string{"0", "false", "maybe"} {
		rec = env.do(t, http.MethodGet, "/tag?assigned_only="+v, nil, token)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"Lunch", "Breakfast"}, names(decode[[]LabelInfo](t, rec)))
	}
}

func TestLabelGet(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "user@example.com")
	_, otherToken := env.createUser(t, "other@example.com")

	p := recipePayload("Sample")
	p["ingredients"] = []map[string]any{{"name": "Cucumber"}}
	r := env.createRecipe(t, token, p)
	target := fmt.Sprintf("/ingredient/%d", r.Ingredients[0].ID)

	rec := env.do(t, http.MethodGet, target, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, r.Ingredients[0], decode[LabelInfo](t, rec))

	rec = env.do(t, http.MethodGet, target, nil, otherToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLabelUpdate(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "user@example.com")
	_, otherToken := env.createUser(t, "other@example.com")

	p := recipePayload("Sample")
	p["tags"] = []map[string]any{{"name": "After Dinner"}, {"name": "Dessert"}}
	r := env.createRecipe(t, token, p)
	target := fmt.Sprintf("/tag/%d", r.Tags[0].ID)

	rec := env.do(t, http.MethodPatch, target, map[string]any{"name": "Supper"}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, LabelInfo{ID: r.Tags[0].ID, Name: "Supper"}, decode[LabelInfo](t, rec))

	// 空的 PATCH 不修改
	rec = env.do(t, http.MethodPatch, target, map[string]any{}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Supper", decode[LabelInfo](t, rec).Name)

	rec = env.do(t, http.MethodPut, target, map[string]any{"name": "Evening"}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Evening", decode[LabelInfo](t, rec).Name)

	tests := []struct {
		name   string
		method string
		body   map[string]any
	}{
		{"duplicate name", http.MethodPatch, map[string]any{"name": "Dessert"}},
		{"blank name", http.MethodPatch, map[string]any{"name": "  "}},
		{"put without name", http.MethodPut, map[string]any{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, tt.method, target, tt.body, token)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode[ErrorMessage](t, rec).Fields, "name")
		})
	}

	rec = env.do(t, http.MethodPatch, target, map[string]any{"name": "Mine now"}, otherToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// recipe 上看到的是新名字
	rec = env.do(t, http.MethodGet, fmt.Sprintf("/recipe/%d", r.ID), nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Evening", "Dessert"}, names(decode[RecipeDetail](t, rec).Tags))
}

func TestLabelDelete(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "user@example.com")
	_, otherToken := env.createUser(t, "other@example.com")

	p := recipePayload("Sample")
	p["ingredients"] = []map[string]any{{"name": "Lettuce"}, {"name": "Tomato"}}
	r := env.createRecipe(t, token, p)
	target := fmt.Sprintf("/ingredient/%d", r.Ingredients[0].ID)

	rec := env.do(t, http.MethodDelete, target, nil, otherToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, target, nil, token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/ingredient", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Tomato"}, names(decode[[]LabelInfo](t, rec)))

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/recipe/%d", r.ID), nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Tomato"}, names(decode[RecipeDetail](t, rec).Ingredients))
}
