package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type JWT struct {
	key []byte
	ttl time.Duration
}

type User struct {
	ID      uint
	Expires int64 // Unix second
}

func New(key string, ttl time.Duration) (*JWT, error) {
	if len(key) == 0 {
		return nil, errors.New("key is empty")
	}
	if ttl <= 0 {
		return nil, errors.New("ttl must be positive")
	}

	return &JWT{key: []byte(key), ttl: ttl}, nil
}

func (j *JWT) ParseUser(tokenString string) (*User, error) {
	// 检查是否有效
	if len(tokenString) == 0 {
		return nil, errors.New("token string is empty")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.key, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("parse jwt failed: %w", err)
	}

	// 匹配内容
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	id, ok := claims["id"].(float64)
	if !ok || id < 1 {
		return nil, errors.New("invalid token subject")
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("invalid token expiry: %w", err)
	}

	return &User{
		ID:      uint(id),
		Expires: exp.Unix(),
	}, nil
}

func (j *JWT) SignToken(user *User) (string, error) {
	// 创建声明
	claims := jwt.MapClaims{
		"id":  user.ID,
		"exp": user.Expires,
	}

	// 创建令牌
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// 签名并返回
	return token.SignedString(j.key)
}

// Issue 为用户签发一个从现在开始计算有效期的 token
func (j *JWT) Issue(userID uint) (string, error) {
	return j.SignToken(&User{
		ID:      userID,
		Expires: time.Now().Add(j.ttl).Unix(),
	})
}
