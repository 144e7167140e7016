package store

import (
	"recipe-app-api/app/server/models"

	"gorm.io/gorm"
)

// LabelFilter tag / ingredient 列表的筛选条件
type LabelFilter struct {
	AssignedOnly bool // 只列出至少挂在一个 recipe 上的
	Page         Page
}

// RecipeFilter recipe 列表的筛选条件。
// Tags / Ingredients 为 nil 表示不筛选；非 nil 的空切片表示参数给了但没有有效 id ，结果为空。
type RecipeFilter struct {
	Tags        []uint
	Ingredients []uint
	Page        Page
}

func labelQuery(db *gorm.DB, userID uint, kind Kind, f LabelFilter) *gorm.DB {
	q := scoped(db.Table(kind.Table), userID)
	if f.AssignedOnly {
		// 用子查询判断是否存在关联，结果天然不会重复
		assigned := db.Table(kind.JoinTable).
			Select(kind.JoinTable+"."+kind.JoinKey).
			Joins("JOIN recipes ON recipes.id = "+kind.JoinTable+".recipe_id").
			Where("recipes.user_id = ?", userID)
		q = q.Where("id IN (?)", assigned)
	}
	return q
}

func recipeQuery(db *gorm.DB, userID uint, f RecipeFilter) *gorm.DB {
	q := scoped(db.Model(&models.Recipe{}), userID)
	q = membership(db, q, KindTag, f.Tags)
	q = membership(db, q, KindIngredient, f.Ingredients)
	return q
}

// membership 要求 recipe 至少关联 ids 中的一个（并集）
func membership(db *gorm.DB, q *gorm.DB, kind Kind, ids []uint) *gorm.DB {
	if ids == nil {
		return q
	}
	if len(ids) == 0 {
		return q.Where("1 = 0")
	}
	matched := db.Table(kind.JoinTable).
		Select("recipe_id").
		Where(kind.JoinKey+" IN ?", ids)
	return q.Where("id IN (?)", matched)
}
