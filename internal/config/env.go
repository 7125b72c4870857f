package config

import (
	"os"
	"strings"
)

type Env struct {
	AppAddr       string
	GinMode       string
	DataDir       string
	BackingStore  string // "fs" or "redis"
	RedisAddr     string
	RedisPassword string
	SnapshotKey   string
	JWTSecret     string
}

func LoadEnv() Env {
	return Env{
		AppAddr:       getenv("APP_ADDR", ":8080"),
		GinMode:       getenv("GIN_MODE", ""),
		DataDir:       getenv("DATA_DIR", "./data"),
		BackingStore:  strings.ToLower(getenv("BACKING_STORE", "fs")),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		SnapshotKey:   getenv("SNAPSHOT_KEY", ""),
		JWTSecret:     getenv("JWT_SECRET", "super-secret-key-change-me"),
	}
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
