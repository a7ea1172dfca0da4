package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env  string
	Port int

	MongoURI      string
	MongoDatabase string

	JWTSecret string
	JWTTTL    time.Duration

	AllowedOrigins []string

	UploadDir      string
	MaxUploadBytes int64

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	ContactEmail string

	OTELEndpoint string
}

func Load() Config {
	env := getEnv("APP_ENV", "dev")
	port := getEnvInt("PORT", 8080)

	smtpUser := getEnv("SMTP_USER", "")
	contactEmail := getEnv("CONTACT_EMAIL", "")

	// operator mailbox falls back to the sending account
	if contactEmail == "" {
		contactEmail = smtpUser
	}

	return Config{
		Env:  env,
		Port: port,

		MongoURI:      getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "construction"),

		JWTSecret: getEnv("JWT_SECRET", "dev-only-secret"),
		JWTTTL:    time.Duration(getEnvInt("JWT_TTL_MINUTES", 24*60)) * time.Minute,

		AllowedOrigins: splitCSV(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),

		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 5*1024*1024)),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     smtpUser,
		SMTPPassword: getEnv("SMTP_PASS", ""),
		ContactEmail: contactEmail,

		OTELEndpoint: getEnv("OTEL_EXPORTER_ENDPOINT", ""),
	}
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")

	out := make([]string, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)

		if part != "" {
			out = append(out, part)
		}
	}

	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)

			return fallback
		}

		return num
	}
	return fallback
}
