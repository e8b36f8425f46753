package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Config holds server configuration read from the environment.
type Config struct {
	Port             string
	DBPath           string
	SiteFile         string
	SessionCacheSize int

	MailDelivery    string // "emailjs" or "smtp"
	DeliveryTimeout time.Duration

	EmailJSEndpoint   string
	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
	EmailJSPrivateKey string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	ToEmail  string

	AdminUsername string
	AdminPassword string
}

// LoadConfig reads configuration from the environment. Values from a .env
// file are already loaded by godotenv/autoload.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:             getenv("PORT", "8080"),
		DBPath:           getenv("DB_PATH", "portfolio.db"),
		SiteFile:         os.Getenv("SITE_FILE"),
		MailDelivery:     getenv("MAIL_DELIVERY", "emailjs"),
		SessionCacheSize: 1024,
		DeliveryTimeout:  10 * time.Second,

		EmailJSEndpoint:   os.Getenv("EMAILJS_ENDPOINT"),
		EmailJSServiceID:  os.Getenv("EMAILJS_SERVICE_ID"),
		EmailJSTemplateID: os.Getenv("EMAILJS_TEMPLATE_ID"),
		EmailJSPublicKey:  os.Getenv("EMAILJS_PUBLIC_KEY"),
		EmailJSPrivateKey: os.Getenv("EMAILJS_PRIVATE_KEY"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: os.Getenv("SMTP_PORT"),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		ToEmail:  os.Getenv("TO_EMAIL"),

		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if v := os.Getenv("SESSION_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("SESSION_CACHE_SIZE must be a positive integer, got %q", v)
		}
		cfg.SessionCacheSize = n
	}
	if v := os.Getenv("DELIVERY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DELIVERY_TIMEOUT: %w", err)
		}
		cfg.DeliveryTimeout = d
	}
	if cfg.MailDelivery != "emailjs" && cfg.MailDelivery != "smtp" {
		return nil, fmt.Errorf("MAIL_DELIVERY must be emailjs or smtp, got %q", cfg.MailDelivery)
	}

	// Default credentials for development (remove in production)
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
		if gin.Mode() == gin.DebugMode {
			log.Println("WARNING: Using default admin username. Set ADMIN_USERNAME environment variable.")
		}
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "admin123"
		if gin.Mode() == gin.DebugMode {
			log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
		}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
