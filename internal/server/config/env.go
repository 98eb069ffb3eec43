package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names understood by parseEnv.
const (
	EnvHTTPAddr    = "HTTP_ADDR"
	EnvDatabaseDSN = "DB_URI"
	EnvSecretKey   = "SECRET_KEY"
	EnvSessionTTL  = "SESSION_TTL"
	EnvAdminUserID = "ADMIN_USER_ID"
	EnvLogLevel    = "LOG_LEVEL"
	EnvAppEnv      = "APP_ENV"
)

// parseEnv overlays values from the process environment. A .env file in the
// working directory is loaded first when present; variables already set in
// the environment win over the file. Malformed numeric or duration values
// panic.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv(EnvHTTPAddr); ok && v != "" {
		config.HTTPAddr = v
	}
	if v, ok := os.LookupEnv(EnvDatabaseDSN); ok && v != "" {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv(EnvSecretKey); ok && v != "" {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv(EnvSessionTTL); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvSessionTTL, err))
		}
		config.SessionTTL = d
	}
	if v, ok := os.LookupEnv(EnvAdminUserID); ok && v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvAdminUserID, err))
		}
		config.AdminUserID = id
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		config.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvAppEnv); ok && v != "" {
		config.AppEnv = v
	}
}
