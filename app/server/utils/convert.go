package utils

import (
	"strconv"
	"strings"
)

func P[T any](v T) *T {
	return &v
}

// ParseIDs 解析逗号分隔的 id 列表：去掉空白，跳过空的和非数字的部分。
// 返回值不会是 nil ，调用方据此区分"参数没给"和"参数给了但没有有效 id"。
func ParseIDs(s string) []uint {
	ids := []uint{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}

// Truthy 判断查询参数是否为真：布尔真值或非零整数
func Truthy(s string) bool {
	s = strings.TrimSpace(s)
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n != 0
	}
	return false
}
