// 서비스 설정 로딩
//
// 환경변수 (.env 파일이 있으면 먼저 로드):
//   - HTTP_ADDR (default: :8080)
//   - API_PREFIX (default: /api)
//   - STORAGE_DRIVER: postgres | memory (default: DATABASE_URL/PGDATABASE가 있으면 postgres)
//   - DATABASE_URL, PGHOST, PGPORT, PGUSER, PGPASSWORD, PGDATABASE, PGSSLMODE
//   - AI_API_KEY, AI_MODEL (default: gemini-2.0-flash)
//   - JWT_SECRET: 비어 있으면 demo mode (모든 요청 익명 처리)
//   - CORS_ALLOWED_ORIGINS: 콤마 구분 (default: *)

package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	DefaultModel = "gemini-2.0-flash"
)

type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	AI       AIConfig
	Auth     AuthConfig
	Postgres PostgresConfig
}

type ServerConfig struct {
	Addr           string
	APIPrefix      string
	AllowedOrigins []string
}

type StorageConfig struct {
	Driver string
}

type AIConfig struct {
	APIKey string
	Model  string
}

type AuthConfig struct {
	JWTSecret string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

// Configured reports whether enough Postgres settings exist to build a DSN.
func (c PostgresConfig) Configured() bool {
	return c.DatabaseURL != "" || (c.User != "" && c.Database != "")
}

// NewViper returns a viper instance with env binding and defaults applied.
// cmd binds its flags into the same instance before Load reads it.
func NewViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("API_PREFIX", "/api")
	v.SetDefault("AI_MODEL", DefaultModel)
	v.SetDefault("PGHOST", "localhost")
	v.SetDefault("PGPORT", "5432")
	v.SetDefault("PGSSLMODE", "disable")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	return v
}

// LoadDotEnv loads .env into the process environment if present.
// Existing variables win over file values.
func LoadDotEnv(paths ...string) {
	_ = godotenv.Load(paths...)
}

func Load(v *viper.Viper) Config {
	if v == nil {
		v = NewViper()
	}

	cfg := Config{
		Server: ServerConfig{
			Addr:           v.GetString("HTTP_ADDR"),
			APIPrefix:      normalizePrefix(v.GetString("API_PREFIX")),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		AI: AIConfig{
			APIKey: strings.TrimSpace(v.GetString("AI_API_KEY")),
			Model:  getString(v, "AI_MODEL", DefaultModel),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: v.GetString("DATABASE_URL"),
			Host:        v.GetString("PGHOST"),
			Port:        v.GetString("PGPORT"),
			User:        v.GetString("PGUSER"),
			Password:    v.GetString("PGPASSWORD"),
			Database:    v.GetString("PGDATABASE"),
			SSLMode:     v.GetString("PGSSLMODE"),
		},
	}

	driver := strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER")))
	if driver == "" {
		driver = StorageMemory
		if cfg.Postgres.Configured() {
			driver = StoragePostgres
		}
	}
	cfg.Storage.Driver = driver

	return cfg
}

func getString(v *viper.Viper, key, fallback string) string {
	if val := strings.TrimSpace(v.GetString(key)); val != "" {
		return val
	}
	return fallback
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return ""
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
