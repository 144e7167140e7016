package inits

import (
	"fmt"
	"os"
	"recipe-app-api/app/server/config"
	"recipe-app-api/app/server/constants"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

func Config() (*config.Config, error) {
	// 有 .env 就先加载，没有也无所谓
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg config.Config
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if listen, exist := os.LookupEnv("LISTEN"); !exist {
		cfg.System.Listen = ":1323" // 默认监听地址
	} else {
		cfg.System.Listen = listen
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.System.DBConnectionString = dbconn
	}

	if redisconn, exist := os.LookupEnv("REDIS_CONN"); !exist {
		return nil, fmt.Errorf("REDIS_CONN environment variable not set")
	} else {
		cfg.System.RedisConnectionString = redisconn
	}

	if sigsk, exist := os.LookupEnv("SIGNATURE_SECRET_KEY"); !exist {
		return nil, fmt.Errorf("SIGNATURE_SECRET_KEY environment variable not set")
	} else {
		cfg.Security.SignatureSecretKey = sigsk
	}

	if ttlStr, exist := os.LookupEnv("TOKEN_TTL"); !exist {
		cfg.Security.TokenTTL = constants.AuthTokenDuration
	} else if ttl, err := time.ParseDuration(ttlStr); err != nil || ttl <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL should be a positive duration")
	} else {
		cfg.Security.TokenTTL = ttl
	}

	// 初始管理员，两个都设置才生效
	cfg.Security.AdminEmail = os.Getenv("ADMIN_EMAIL")
	cfg.Security.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	if (cfg.Security.AdminEmail == "") != (cfg.Security.AdminPassword == "") {
		return nil, fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}

	if root, exist := os.LookupEnv("MEDIA_ROOT"); !exist {
		cfg.Media.Root = constants.MediaRootDefault
	} else {
		cfg.Media.Root = root
	}

	if url, exist := os.LookupEnv("MEDIA_URL"); !exist {
		cfg.Media.URL = constants.MediaURLDefault
	} else {
		cfg.Media.URL = url
	}

	return &cfg, nil
}
