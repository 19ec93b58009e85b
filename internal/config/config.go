package config

import (
	"time"

	"github.com/kanekanefy/qwerty-learner/internal/env"
)

type Config struct {
	Unsplash unsplashConfig
	Cache    cacheConfig
	HTTP     httpConfig
}

type unsplashConfig struct {
	// AccessKey may be empty: resolution then surfaces a classified
	// missing-key error instead of failing startup.
	AccessKey    string
	Endpoint     string
	Timeout      time.Duration
	TrackTimeout time.Duration
}

type cacheConfig struct {
	DBPath  string
	TTL     time.Duration
	HotKeys int64
	HotCost int64
}

type httpConfig struct {
	ListenAddr      string
	IdleTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

func FromEnv() Config {
	return Config{
		Unsplash: unsplashConfig{
			AccessKey:    env.String("UNSPLASH_ACCESS_KEY", ""),
			Endpoint:     env.String("UNSPLASH_ENDPOINT", ""),
			Timeout:      env.Duration("UNSPLASH_TIMEOUT", 15*time.Second),
			TrackTimeout: env.Duration("UNSPLASH_TRACK_TIMEOUT", 10*time.Second),
		},
		Cache: cacheConfig{
			DBPath:  env.String("CACHE_DB_PATH", "data/media_assets.db"),
			TTL:     env.Duration("CACHE_TTL", 30*24*time.Hour),
			HotKeys: env.Int64("CACHE_HOT_KEYS", 4096),
			HotCost: env.Int64("CACHE_HOT_COST", 4096),
		},
		HTTP: httpConfig{
			ListenAddr:      env.String("HTTP_LISTEN_ADDR", ":8080"),
			IdleTimeout:     env.Duration("HTTP_IDLE_TIMEOUT", 60*time.Second),
			ReadTimeout:     env.Duration("HTTP_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    env.Duration("HTTP_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: env.Duration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
	}
}
