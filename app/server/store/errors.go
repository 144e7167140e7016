package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound 记录不存在，或者不属于当前用户（两者对外不作区分）
	ErrNotFound = errors.New("record not found")

	// ErrInvalidCredentials 邮箱或密码不正确，或者用户已停用
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrConflict 唯一约束冲突，且重新查询也没有找到冲突的那一行
	ErrConflict = errors.New("conflicting write")
)

// ValidationError 字段级别的校验错误，键为字段名（嵌套字段用 . 连接，例如 tags.0.name）
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], " ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Add(field string, message string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// OrNil 没有任何字段错误时返回 nil ，方便直接 return
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// FieldError 构造只有一个字段的校验错误
func FieldError(field string, message string) *ValidationError {
	e := &ValidationError{}
	e.Add(field, message)
	return e
}

const (
	msgRequired = "This field is required."
	msgBlank    = "This field may not be blank."
)

func msgMaxLength(n int) string {
	return fmt.Sprintf("Ensure this field has no more than %d characters.", n)
}
