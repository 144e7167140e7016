package handlers

import (
	"bytes"
	"encoding/json"
	"recipe-app-api/app/server/models"
	"recipe-app-api/app/server/store"
	"recipe-app-api/app/server/utils"

	"github.com/shopspring/decimal"
)

const msgNull = "This field may not be null."

type ErrorMessage struct {
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

// 用户

type UserCreateRequest struct {
	Email    *string `json:"email" validate:"required,email,max=255"`
	Password *string `json:"password" validate:"required,min=5,max=128"`
	Name     *string `json:"name" validate:"omitempty,max=255"`
}

type UserUpdateRequest struct {
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=5,max=128"`
	Name     *string `json:"name" validate:"omitempty,max=255"`
}

type UserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type TokenRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginToken struct {
	Token string `json:"token"`
}

// tag / ingredient

type LabelRequest struct {
	Name *string `json:"name"`
}

// LabelsField recipe 请求体里的 tags / ingredients 。
// 需要区分三种情况：键不存在（不修改）、 null （拒绝）、列表（整体替换）
type LabelsField struct {
	Set   bool
	Null  bool
	Items []LabelRequest
}

func (l *LabelsField) UnmarshalJSON(data []byte) error {
	l.Set = true
	if string(bytes.TrimSpace(data)) == "null" {
		l.Null = true
		return nil
	}
	return json.Unmarshal(data, &l.Items)
}

type LabelUpdateRequest struct {
	Name *string `json:"name"`
}

type LabelReplaceRequest struct {
	Name *string `json:"name" validate:"required"`
}

type LabelInfo struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// recipe

type RecipeRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	TimeMinutes *int             `json:"time_minutes"`
	Link        *string          `json:"link"`
	Tags        LabelsField      `json:"tags"`
	Ingredients LabelsField      `json:"ingredients"`
}

type RecipeInfo struct {
	ID          uint        `json:"id"`
	Title       string      `json:"title"`
	TimeMinutes uint        `json:"time_minutes"`
	Price       string      `json:"price"`
	Link        string      `json:"link"`
	Tags        []LabelInfo `json:"tags"`
	Ingredients []LabelInfo `json:"ingredients"`
}

type RecipeDetail struct {
	RecipeInfo
	Description string  `json:"description"`
	Image       *string `json:"image"`
}

type RecipeImage struct {
	ID    uint    `json:"id"`
	Image *string `json:"image"`
}

func (l *LabelsField) inputs() *[]store.LabelInput {
	if !l.Set || l.Null {
		return nil
	}
	out := make([]store.LabelInput, 0, len(l.Items))
	for _, item := range l.Items {
		out = append(out, store.LabelInput{Name: item.Name})
	}
	return &out
}

// input 转换成 store 的写入参数， tags / ingredients 为 null 时返回字段错误
func (req *RecipeRequest) input() (store.RecipeInput, error) {
	verr := &store.ValidationError{}
	if req.Tags.Null {
		verr.Add("tags", msgNull)
	}
	if req.Ingredients.Null {
		verr.Add("ingredients", msgNull)
	}
	if err := verr.OrNil(); err != nil {
		return store.RecipeInput{}, err
	}

	return store.RecipeInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		TimeMinutes: req.TimeMinutes,
		Link:        req.Link,
		Tags:        req.Tags.inputs(),
		Ingredients: req.Ingredients.inputs(),
	}, nil
}

func labelInfo(l *models.Label) LabelInfo {
	return LabelInfo{ID: l.ID, Name: l.Name}
}

func recipeInfo(r *models.Recipe) RecipeInfo {
	info := RecipeInfo{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price.StringFixed(2),
		Link:        r.Link,
		Tags:        make([]LabelInfo, 0, len(r.Tags)),
		Ingredients: make([]LabelInfo, 0, len(r.Ingredients)),
	}
	for _, t := range r.Tags {
		info.Tags = append(info.Tags, LabelInfo{ID: t.ID, Name: t.Name})
	}
	for _, i := range r.Ingredients {
		info.Ingredients = append(info.Ingredients, LabelInfo{ID: i.ID, Name: i.Name})
	}
	return info
}

func (a *App) recipeDetail(r *models.Recipe) RecipeDetail {
	return RecipeDetail{
		RecipeInfo:  recipeInfo(r),
		Description: r.Description,
		Image:       a.imageURL(r.Image),
	}
}

func (a *App) imageURL(rel *string) *string {
	if rel == nil || *rel == "" {
		return nil
	}
	return utils.P(a.media.URL(*rel))
}
