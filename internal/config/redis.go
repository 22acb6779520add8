package config

import "time"

type Redis struct {
	Addr     string
	Password string
	DB       int
}

// NewRedis returns nil when REDIS_ADDR is not set; callers fall back to not
// limiting at all.
func NewRedis() *Redis {
	addr := v.GetString("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	return &Redis{
		Addr:     addr,
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}
}

type Hints struct {
	Limit  int
	Window time.Duration
}

func NewHints() Hints {
	return Hints{
		Limit:  v.GetInt("HINT_RATE_LIMIT"),
		Window: v.GetDuration("HINT_RATE_WINDOW"),
	}
}
