package store

import (
	"errors"
	"fmt"
	"recipe-app-api/app/server/models"
	"strconv"

	"gorm.io/gorm"
)

// LabelInput recipe 请求体里内嵌的 tag / ingredient 描述， Name 为 nil 表示没有 name 键
type LabelInput struct {
	Name *string
}

// normalizeLabels 校验并整理名称：去掉首尾空白，同名只保留第一次出现的
func normalizeLabels(field string, in []LabelInput, verr *ValidationError) []string {
	names := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for i, d := range in {
		key := field + "." + strconv.Itoa(i) + ".name"
		if d.Name == nil {
			verr.Add(key, msgRequired)
			continue
		}
		name, e := validateLabelName(key, *d.Name)
		if e != nil {
			for k, msgs := range e.Fields {
				for _, msg := range msgs {
					verr.Add(k, msg)
				}
			}
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// getOrCreateLabel 按 (user, name) 找到已有的行，没有就创建。
// 并发创建同名行时唯一约束会拒绝后来者，这时在保存点回滚后重新查询即可。
func getOrCreateLabel(tx *gorm.DB, userID uint, kind Kind, name string) (*models.Label, error) {
	var label models.Label
	err := scoped(tx.Table(kind.Table), userID).Take(&label, "name = ?", name).Error
	if err == nil {
		return &label, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find %s %q: %w", kind.Name, name, err)
	}

	label = models.Label{UserID: userID, Name: name}
	err = tx.Transaction(func(sp *gorm.DB) error {
		return sp.Table(kind.Table).Create(&label).Error
	})
	if err == nil {
		return &label, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, fmt.Errorf("create %s %q: %w", kind.Name, name, err)
	}

	label = models.Label{}
	if err = scoped(tx.Table(kind.Table), userID).Take(&label, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s %q: %w", kind.Name, name, ErrConflict)
		}
		return nil, fmt.Errorf("refetch %s %q: %w", kind.Name, name, err)
	}
	return &label, nil
}

// reconcile 把名称列表解析成用户名下的行并关联到 recipe 。
// replace 为 true 时先清空 recipe 现有的该类关联（更新时的替换语义）。
// 必须在事务中调用，调用前名称已经过 normalizeLabels 校验。
func reconcile(tx *gorm.DB, userID uint, kind Kind, names []string, recipeID uint, replace bool) error {
	if replace {
		if err := tx.Exec("DELETE FROM "+kind.JoinTable+" WHERE recipe_id = ?", recipeID).Error; err != nil {
			return fmt.Errorf("clear %s of recipe %d: %w", kind.Table, recipeID, err)
		}
	}

	for _, name := range names {
		label, err := getOrCreateLabel(tx, userID, kind, name)
		if err != nil {
			return err
		}

		// 已经关联的直接跳过，保证重复调用不会产生重复关联
		if err = tx.Exec(
			"INSERT INTO "+kind.JoinTable+" (recipe_id, "+kind.JoinKey+") VALUES (?, ?) ON CONFLICT DO NOTHING",
			recipeID, label.ID,
		).Error; err != nil {
			return fmt.Errorf("attach %s %d to recipe %d: %w", kind.Name, label.ID, recipeID, err)
		}
	}

	return nil
}
