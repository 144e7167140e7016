package constants

import "time"

const (
	CacheKeyUserInfo = "recipe:user:info:%d"
)

const (
	CacheExpireUserInfo = 1 * time.Hour
)
