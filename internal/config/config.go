// Package config reads service settings from the environment.
package config

import (
	"time"

	"github.com/spf13/viper"
)

var v = viper.New()

func init() {
	v.AutomaticEnv()

	v.SetDefault("APP_ADDR", ":8080")
	v.SetDefault("APP_BASE_PATH", "")
	v.SetDefault("DEVELOPMENT", false)
	v.SetDefault("LOG_FILE", "")

	v.SetDefault("POSTGRES_PORT", 5432)
	v.SetDefault("POSTGRES_SSLMODE", "disable")

	v.SetDefault("JWT_TOKEN_LIFETIME", 30*24*time.Hour)

	v.SetDefault("COOKIES_SECURE", true)
	v.SetDefault("COOKIES_SAMESITE", "strict")

	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("HINT_RATE_LIMIT", 5)
	v.SetDefault("HINT_RATE_WINDOW", 10*time.Second)
}

func Development() bool {
	return v.GetBool("DEVELOPMENT")
}

func Addr() string {
	return v.GetString("APP_ADDR")
}

func BasePath() string {
	return v.GetString("APP_BASE_PATH")
}

// LogFile is the path of the rotating log file; empty disables it.
func LogFile() string {
	return v.GetString("LOG_FILE")
}
