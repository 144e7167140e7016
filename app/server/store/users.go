package store

import (
	"context"
	"errors"
	"fmt"
	"recipe-app-api/app/server/constants"
	"recipe-app-api/app/server/models"
	"strings"

	"github.com/alexedwards/argon2id"
	"gorm.io/gorm"
)

// UserInput 用户的可写字段， nil 表示不修改
type UserInput struct {
	Email    *string
	Password *string
	Name     *string
}

type Users struct {
	db *gorm.DB
}

func validateUserInput(in *UserInput, requireCredentials bool) error {
	verr := &ValidationError{}

	if in.Email != nil {
		normalized := models.NormalizeEmail(*in.Email)
		in.Email = &normalized
		if normalized == "" {
			verr.Add("email", msgBlank)
		} else if len(normalized) > maxNameLength {
			verr.Add("email", msgMaxLength(maxNameLength))
		}
	} else if requireCredentials {
		verr.Add("email", msgRequired)
	}

	if in.Password != nil {
		if len(*in.Password) < constants.PasswordMinLength {
			verr.Add("password", fmt.Sprintf("Ensure this field has at least %d characters.", constants.PasswordMinLength))
		}
	} else if requireCredentials {
		verr.Add("password", msgRequired)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
		if len(name) > maxNameLength {
			verr.Add("name", msgMaxLength(maxNameLength))
		}
	}

	return verr.OrNil()
}

func (u *Users) Create(ctx context.Context, in UserInput) (*models.User, error) {
	if err := validateUserInput(&in, true); err != nil {
		return nil, err
	}

	// 处理密码
	passwordHash, err := argon2id.CreateHash(*in.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:    *in.Email,
		Password: passwordHash,
		IsActive: true,
	}
	if in.Name != nil {
		user.Name = *in.Name
	}

	if err = u.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, FieldError("email", "user with this email already exists.")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &user, nil
}

func (u *Users) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).Take(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

func (u *Users) Authenticate(ctx context.Context, email string, password string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).Take(&user, "email = ?", models.NormalizeEmail(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	// 提取密码 hash 并进行校验
	match, _, err := argon2id.CheckHash(password, user.Password)
	if err != nil {
		return nil, fmt.Errorf("check password: %w", err)
	}
	if !match || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

func (u *Users) Update(ctx context.Context, id uint, in UserInput) (*models.User, error) {
	if err := validateUserInput(&in, false); err != nil {
		return nil, err
	}

	user, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Password != nil {
		if user.Password, err = argon2id.CreateHash(*in.Password, argon2id.DefaultParams); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	if err = u.db.WithContext(ctx).Select("email", "name", "password").Updates(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, FieldError("email", "user with this email already exists.")
		}
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}

	return user, nil
}
