package inits

import (
	"errors"
	"fmt"
	"recipe-app-api/app/server/models"

	"github.com/alexedwards/argon2id"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func DB(conn string, adminEmail string, adminPassword string) (db *gorm.DB, err error) {
	// 打开连接，唯一约束冲突统一翻译成 gorm.ErrDuplicatedKey
	if db, err = gorm.Open(postgres.Open(conn), &gorm.Config{
		TranslateError: true,
	}); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	// 迁移
	if err = Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 初始化启动数据
	if err = InitAdmin(db, adminEmail, adminPassword); err != nil {
		return nil, fmt.Errorf("failed to init data into database: %w", err)
	}

	// 返回
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
	)
}

// InitAdmin 在指定邮箱的用户不存在时创建管理员， email 为空则跳过
func InitAdmin(db *gorm.DB, email string, password string) (err error) {
	if email == "" {
		return nil
	}
	email = models.NormalizeEmail(email)

	var user models.User
	if err = db.Take(&user, "email = ?", email).Error; err == nil {
		// 已经存在
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to get admin user: %w", err)
	}

	// 创建密码
	var passwordHash string
	if passwordHash, err = argon2id.CreateHash(password, argon2id.DefaultParams); err != nil {
		return fmt.Errorf("failed to generate password: %w", err)
	}

	// 插入记录
	if err = db.Create(&models.User{
		Email:    email,
		Name:     "Admin",
		IsActive: true,
		IsStaff:  true,
		Password: passwordHash,
	}).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	return nil
}
