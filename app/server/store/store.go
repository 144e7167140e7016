// Package store 是数据访问层：所有查询都限定在请求用户名下，
// 写操作（包括 tag / ingredient 的关联整理）在一个事务里完成。
package store

import (
	"context"
	"recipe-app-api/app/server/models"

	"gorm.io/gorm"
)

const maxNameLength = 255

type UserStore interface {
	Create(ctx context.Context, in UserInput) (*models.User, error)
	Get(ctx context.Context, id uint) (*models.User, error)
	Authenticate(ctx context.Context, email string, password string) (*models.User, error)
	Update(ctx context.Context, id uint, in UserInput) (*models.User, error)
}

type LabelStore interface {
	List(ctx context.Context, userID uint, kind Kind, f LabelFilter) ([]models.Label, int64, error)
	Get(ctx context.Context, userID uint, kind Kind, id uint) (*models.Label, error)
	Rename(ctx context.Context, userID uint, kind Kind, id uint, name string) (*models.Label, error)
	Delete(ctx context.Context, userID uint, kind Kind, id uint) error
}

type RecipeStore interface {
	List(ctx context.Context, userID uint, f RecipeFilter) ([]models.Recipe, int64, error)
	Get(ctx context.Context, userID uint, id uint) (*models.Recipe, error)
	Create(ctx context.Context, userID uint, in RecipeInput) (*models.Recipe, error)
	Update(ctx context.Context, userID uint, id uint, in RecipeInput, partial bool) (*models.Recipe, error)
	Delete(ctx context.Context, userID uint, id uint) (*models.Recipe, error)
	SetImage(ctx context.Context, userID uint, id uint, path string) (previous *string, err error)
}

// Store 汇总各个实体的数据访问
type Store struct {
	Users   *Users
	Labels  *Labels
	Recipes *Recipes
}

func New(db *gorm.DB) *Store {
	return &Store{
		Users:   &Users{db: db},
		Labels:  &Labels{db: db},
		Recipes: &Recipes{db: db},
	}
}

var (
	_ UserStore   = (*Users)(nil)
	_ LabelStore  = (*Labels)(nil)
	_ RecipeStore = (*Recipes)(nil)
)

// Page 分页参数， Limit 为 0 表示不分页
type Page struct {
	Limit  int
	Offset int
}

func (p Page) apply(q *gorm.DB) *gorm.DB {
	if p.Limit > 0 {
		q = q.Limit(p.Limit).Offset(p.Offset)
	}
	return q
}

// scoped 把查询限定在指定用户名下
func scoped(db *gorm.DB, userID uint) *gorm.DB {
	return db.Where("user_id = ?", userID)
}
