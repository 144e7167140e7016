package store

import (
	"context"
	"errors"
	"fmt"
	"recipe-app-api/app/server/models"
	"strings"

	"gorm.io/gorm"
)

// Kind 描述一类挂在 recipe 上的标签（tag 或 ingredient）所用的表
type Kind struct {
	Name      string // 对外名称
	Table     string // 实体表
	JoinTable string // 与 recipes 的关联表
	JoinKey   string // 关联表里指向实体的列
}

var (
	KindTag = Kind{
		Name:      "tag",
		Table:     "tags",
		JoinTable: "recipe_tags",
		JoinKey:   "tag_id",
	}
	KindIngredient = Kind{
		Name:      "ingredient",
		Table:     "ingredients",
		JoinTable: "recipe_ingredients",
		JoinKey:   "ingredient_id",
	}
)

type Labels struct {
	db *gorm.DB
}

func validateLabelName(field string, name string) (string, *ValidationError) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", FieldError(field, msgBlank)
	}
	if len(name) > maxNameLength {
		return "", FieldError(field, msgMaxLength(maxNameLength))
	}
	return name, nil
}

func (s *Labels) List(ctx context.Context, userID uint, kind Kind, f LabelFilter) ([]models.Label, int64, error) {
	q := labelQuery(s.db.WithContext(ctx), userID, kind, f).Session(&gorm.Session{})

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", kind.Table, err)
	}

	labels := []models.Label{}
	if err := f.Page.apply(q.Order("name DESC").Order("id DESC")).Find(&labels).Error; err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", kind.Table, err)
	}

	return labels, count, nil
}

func (s *Labels) Get(ctx context.Context, userID uint, kind Kind, id uint) (*models.Label, error) {
	return takeLabel(s.db.WithContext(ctx), userID, kind, id)
}

func takeLabel(db *gorm.DB, userID uint, kind Kind, id uint) (*models.Label, error) {
	var label models.Label
	if err := scoped(db.Table(kind.Table), userID).Take(&label, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s %d: %w", kind.Name, id, err)
	}
	return &label, nil
}

func (s *Labels) Rename(ctx context.Context, userID uint, kind Kind, id uint, name string) (*models.Label, error) {
	name, verr := validateLabelName("name", name)
	if verr != nil {
		return nil, verr
	}

	db := s.db.WithContext(ctx)
	label, err := takeLabel(db, userID, kind, id)
	if err != nil {
		return nil, err
	}
	if label.Name == name {
		return label, nil
	}

	label.Name = name
	if err = db.Table(kind.Table).Where("id = ?", label.ID).Updates(map[string]any{
		"name":       label.Name,
		"updated_at": db.NowFunc(),
	}).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, FieldError("name", fmt.Sprintf("%s with this name already exists.", kind.Name))
		}
		return nil, fmt.Errorf("rename %s %d: %w", kind.Name, id, err)
	}

	return label, nil
}

func (s *Labels) Delete(ctx context.Context, userID uint, kind Kind, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		label, err := takeLabel(tx, userID, kind, id)
		if err != nil {
			return err
		}

		// 先解除与 recipe 的关联
		if err = tx.Exec("DELETE FROM "+kind.JoinTable+" WHERE "+kind.JoinKey+" = ?", label.ID).Error; err != nil {
			return fmt.Errorf("detach %s %d: %w", kind.Name, id, err)
		}
		if err = tx.Exec("DELETE FROM "+kind.Table+" WHERE id = ?", label.ID).Error; err != nil {
			return fmt.Errorf("delete %s %d: %w", kind.Name, id, err)
		}
		return nil
	})
}
