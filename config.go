package main

import (
	"log"
	"os"
	"time"
)

type Config struct {
	Addr           string
	APIURL         string
	DBPath         string
	DatabaseURL    string
	SecureCookies  bool
	NoticeDuration time.Duration
	APITimeout     time.Duration
}

func loadConfig() Config {
	return Config{
		Addr:           getenv("ADDR", ":8080"),
		APIURL:         getenv("API_URL", "http://localhost:3003"),
		DBPath:         getenv("DB_PATH", "bloglist.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SecureCookies:  os.Getenv("SECURE_COOKIES") == "true",
		NoticeDuration: getDuration("NOTICE_DURATION", defaultNoticeDuration),
		APITimeout:     getDuration("API_TIMEOUT", 10*time.Second),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("WARNING: invalid %s %q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
