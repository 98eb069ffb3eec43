package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gopherblog/internal/flagx"
	"github.com/dmitrijs2005/gopherblog/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "30m" and integer nanoseconds are accepted.
type JsonConfig struct {
	HTTPAddr    string         `json:"http_addr"`
	DatabaseDSN string         `json:"database_dsn"`
	SecretKey   string         `json:"secret_key"`
	SessionTTL  timex.Duration `json:"session_ttl"`
	AdminUserID int64          `json:"admin_user_id"`
	LogLevel    string         `json:"log_level"`
	AppEnv      string         `json:"app_env"`
}

// parseJson loads the file named by -c/-config into config. Keys missing
// from the file leave the current values untouched. An unreadable file or
// invalid JSON panics, since the server cannot start with a config it
// was told to use but cannot read.
func parseJson(config *Config) {

	jsonConfigFile := flagx.ConfigFileFlag()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.HTTPAddr != "" {
		config.HTTPAddr = c.HTTPAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.SessionTTL.Duration > 0 {
		config.SessionTTL = c.SessionTTL.Duration
	}
	if c.AdminUserID > 0 {
		config.AdminUserID = c.AdminUserID
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.AppEnv != "" {
		config.AppEnv = c.AppEnv
	}
}
