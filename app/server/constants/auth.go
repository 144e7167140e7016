package constants

import "time"

const (
	AuthTokenDuration = 30 * 24 * time.Hour

	PasswordMinLength = 5
)
