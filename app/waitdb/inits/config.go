package inits

import (
	"fmt"
	"os"
	"recipe-app-api/app/waitdb/config"
	"strings"
	"time"
)

func Config() (*config.Config, error) {
	var cfg config.Config
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.DBConnectionString = dbconn
	}

	if intervalStr, exist := os.LookupEnv("WAIT_INTERVAL"); !exist {
		cfg.WaitInterval = 1 * time.Second // 默认每秒一次
	} else if interval, err := time.ParseDuration(intervalStr); err != nil || interval <= 0 {
		return nil, fmt.Errorf("WAIT_INTERVAL should be a positive duration")
	} else {
		cfg.WaitInterval = interval
	}

	if timeoutStr, exist := os.LookupEnv("WAIT_TIMEOUT"); !exist {
		cfg.WaitTimeout = 1 * time.Minute
	} else if timeout, err := time.ParseDuration(timeoutStr); err != nil || timeout <= 0 {
		return nil, fmt.Errorf("WAIT_TIMEOUT should be a positive duration")
	} else {
		cfg.WaitTimeout = timeout
	}

	return &cfg, nil
}
