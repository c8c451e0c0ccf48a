// Package config loads environment-backed settings shared by the intake
// binaries. A .env file is honored when present; real environment variables
// always win.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App  AppConfig
	SMTP SMTPConfig
	Form FormConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
	To         string
}

type FormConfig struct {
	SchemaPath string
	SchemaName string
	StateDir   string
	Theme      string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "intake.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Intake"),
			To:         getEnv("SMTP_TO", ""),
		},
		Form: FormConfig{
			SchemaPath: getEnv("INTAKE_SCHEMA_PATH", "examples/agency-brief.yaml"),
			SchemaName: getEnv("INTAKE_SCHEMA_NAME", "Brief"),
			StateDir:   getEnv("INTAKE_STATE_DIR", ".intake-state"),
			Theme:      getEnv("INTAKE_THEME", ""),
		},
	}
}

// IsProduction reports whether the app runs with production logging.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
