package config

import (
	"log"
	"os"
)

type Config struct {
	HTTPPort       string
	DatabaseDSN    string
	CORSOrigins    string
	ReportRenderer string // "fpdf" (varsayılan) veya "rod" (headless Chromium)
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:    getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=stoktakip port=5432 sslmode=disable"),
		CORSOrigins:    getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		ReportRenderer: getEnv("REPORT_RENDERER", "fpdf"),
	}

	// Production güvenlik kontrolleri
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=stoktakip port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN varsayılan değer kullanılıyor, production için mutlaka kendi Postgres bağlantı bilgisini tanımla.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS varsayılan değer kullanılıyor, production için mutlaka kendi domain'ini tanımla.")
	}
	if cfg.ReportRenderer != "fpdf" && cfg.ReportRenderer != "rod" {
		log.Fatalf("[FATAL] REPORT_RENDERER 'fpdf' veya 'rod' olmalı, verilen: %q", cfg.ReportRenderer)
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
