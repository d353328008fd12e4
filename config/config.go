package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	GIN_MODE   string
	DB_URL     string
	JWT_SECRET string

	CORS_ORIGIN   string
	COOKIE_SECURE bool
	LOG_DIR       string

	ADMIN_EMAIL    string
	ADMIN_PASSWORD string

	STORAGE_DRIVER     string
	STORAGE_BUCKET     string
	STORAGE_REGION     string
	STORAGE_ENDPOINT   string
	STORAGE_PUBLIC_URL string
	STORAGE_ACCESS_KEY string
	STORAGE_SECRET_KEY string
	STORAGE_PATH_STYLE bool
	STORAGE_LOCAL_DIR  string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	GIN_MODE = getEnv("GIN_MODE", "debug")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")

	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:3000")
	COOKIE_SECURE = getBool("COOKIE_SECURE", false)
	LOG_DIR = getEnv("LOG_DIR", "")

	// optional first admin account
	ADMIN_EMAIL = getEnv("ADMIN_EMAIL", "")
	ADMIN_PASSWORD = getEnv("ADMIN_PASSWORD", "")

	STORAGE_DRIVER = getEnv("STORAGE_DRIVER", "local")
	STORAGE_BUCKET = getEnv("STORAGE_BUCKET", "")
	STORAGE_REGION = getEnv("STORAGE_REGION", "us-east-1")
	STORAGE_ENDPOINT = getEnv("STORAGE_ENDPOINT", "")
	STORAGE_PUBLIC_URL = getEnv("STORAGE_PUBLIC_URL", "")
	STORAGE_ACCESS_KEY = getEnv("STORAGE_ACCESS_KEY", "")
	STORAGE_SECRET_KEY = getEnv("STORAGE_SECRET_KEY", "")
	STORAGE_PATH_STYLE = getBool("STORAGE_PATH_STYLE", false)
	STORAGE_LOCAL_DIR = getEnv("STORAGE_LOCAL_DIR", "./uploads")

	if STORAGE_DRIVER == "s3" && STORAGE_BUCKET == "" {
		log.Fatalf("STORAGE_BUCKET is required when STORAGE_DRIVER=s3")
	}
	if STORAGE_DRIVER == "local" && STORAGE_PUBLIC_URL == "" {
		STORAGE_PUBLIC_URL = "http://localhost:" + PORT + "/uploads"
	}
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Ignoring invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return b
}
