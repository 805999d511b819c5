package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBDSN       string
	LogFile     string
	JWTSecret   string
	CORSOrigins string
}

func Load() Config {
	// .env is optional; deployments may set env vars directly.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "stripledger.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./stripledger.log"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Println("[config] JWT_SECRET not set; using insecure dev default")
		secret = "dev-only-secret"
	}
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "http://localhost:3000" // React dev server
	}

	cfg := Config{Port: port, DBDSN: dsn, LogFile: logFile, JWTSecret: secret, CORSOrigins: origins}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s CORS_ORIGINS=%s", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.CORSOrigins)
	return cfg
}
