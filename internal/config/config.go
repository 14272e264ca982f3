package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host                 string
	Port                 string
	User                 string
	Password             string
	Name                 string
	SSLMode              string
	MaxOpenConns         int
	MaxIdleConns         int
	ConnMaxLifetimeSec   int
	ConnMaxIdleTimeSec   int
	AutoMigrate          bool
	SlowQueryThresholdMs int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint    string
	AccessKey   string
	SecretKey   string
	Bucket      string
	UseSSL      bool
	// PublicURL is the base URL objects are served from (CDN or public bucket endpoint).
	// When empty, uploads are returned as presigned URLs.
	PublicURL   string
	MaxUploadMB int
}

// AuthConfig holds the identity provider settings.
type AuthConfig struct {
	ProviderURL    string
	AnonKey        string
	ServiceRoleKey string
	JWTSecret      string
	Audience       string
	AdminEmails    []string
}

// SMTPConfig holds the SMTP relay used for transactional email.
type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	From        string
	NotifyEmail string
}

// RevalidateConfig points at the frontend's cache tag invalidation endpoint.
type RevalidateConfig struct {
	URL        string
	Secret     string
	TimeoutSec int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost            string
	Port               string
	SiteURL            string
	Timezone           string
	LogLevel           string
	ShutdownTimeoutSec int
	CORSAllowOrigins   string
	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-For is honoured.
	// When empty, client IPs come from the TCP connection.
	TrustedProxies     []string
	Database           DatabaseConfig
	MinIO              MinIOConfig
	Auth               AuthConfig
	SMTP               SMTPConfig
	Revalidate         RevalidateConfig
}

// Location resolves the configured timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:            getEnv("APP_HOST", "localhost:8080"),
		Port:               getEnv("PORT", "8080"),
		SiteURL:            getEnv("SITE_URL", "http://localhost:3000"),
		Timezone:           getEnv("APP_TIMEZONE", "UTC"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		ShutdownTimeoutSec: getEnvInt("SHUTDOWN_TIMEOUT_SEC", 10),
		CORSAllowOrigins:   getEnv("CORS_ALLOW_ORIGINS", "*"),
		TrustedProxies:     getEnvList("TRUSTED_PROXIES"),
		Database: DatabaseConfig{
			Host:                 getEnv("DB_HOST", ""),
			Port:                 getEnv("DB_PORT", "5432"),
			User:                 getEnv("DB_USER", ""),
			Password:             getEnv("DB_PASSWORD", ""),
			Name:                 getEnv("DB_NAME", ""),
			SSLMode:              getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:         getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:         getEnvInt("DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetimeSec:   getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			ConnMaxIdleTimeSec:   getEnvInt("DB_CONN_MAX_IDLE_TIME_SEC", 30),
			AutoMigrate:          getEnvBool("DB_AUTO_MIGRATE", true),
			SlowQueryThresholdMs: getEnvInt("DB_SLOW_QUERY_MS", 200),
		},
		MinIO: MinIOConfig{
			Endpoint:    getEnv("MINIO_ENDPOINT", ""),
			AccessKey:   getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:   getEnv("MINIO_SECRET_KEY", ""),
			Bucket:      getEnv("MINIO_BUCKET", ""),
			UseSSL:      getEnvBool("MINIO_USE_SSL", false),
			PublicURL:   strings.TrimRight(getEnv("MINIO_PUBLIC_URL", ""), "/"),
			MaxUploadMB: getEnvInt("MINIO_MAX_UPLOAD_MB", 10),
		},
		Auth: AuthConfig{
			ProviderURL:    strings.TrimRight(getEnv("AUTH_PROVIDER_URL", ""), "/"),
			AnonKey:        getEnv("AUTH_ANON_KEY", ""),
			ServiceRoleKey: getEnv("AUTH_SERVICE_ROLE_KEY", ""),
			JWTSecret:      getEnv("AUTH_JWT_SECRET", ""),
			Audience:       getEnv("AUTH_JWT_AUDIENCE", "authenticated"),
			AdminEmails:    getEnvList("AUTH_ADMIN_EMAILS"),
		},
		SMTP: SMTPConfig{
			Host:        getEnv("SMTP_HOST", ""),
			Port:        getEnvInt("SMTP_PORT", 587),
			Username:    getEnv("SMTP_USERNAME", ""),
			Password:    getEnv("SMTP_PASSWORD", ""),
			From:        getEnv("SMTP_FROM", "no-reply@localhost"),
			NotifyEmail: getEnv("SMTP_NOTIFY_EMAIL", ""),
		},
		Revalidate: RevalidateConfig{
			URL:        getEnv("REVALIDATE_URL", ""),
			Secret:     getEnv("REVALIDATE_SECRET", ""),
			TimeoutSec: getEnvInt("REVALIDATE_TIMEOUT_SEC", 5),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

// getEnvList splits a comma separated value, dropping blanks and lowercasing entries.
func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
