package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	AppPort           string
	AppName           string
	AppVersion        string
	DbDriver          string
	DbHost            string
	DbPort            string
	DbUser            string
	DbPassword        string
	DbName            string
	DbParams          string
	SqlitePath        string
	TrustedProxies    []string
	ShutdownTimeout   time.Duration
	TranslationFolder string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	driver := strings.ToLower(strings.TrimSpace(os.Getenv("DB_DRIVER")))
	if driver == "" {
		driver = DriverMySQL
	}

	cfg := &Config{
		AppPort:           getEnv("APP_PORT", "8080"),
		AppName:           getEnv("APP_NAME", "tasktracker"),
		AppVersion:        getEnv("APP_VERSION", "dev"),
		DbDriver:          driver,
		SqlitePath:        getEnv("SQLITE_PATH", "tasktracker.db"),
		TrustedProxies:    parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
		ShutdownTimeout:   parseDuration(os.Getenv("SHUTDOWN_TIMEOUT"), 30*time.Second),
		TranslationFolder: getEnv("TRANSLATION_FOLDER", "pkg/translator/translation"),
	}

	switch driver {
	case DriverPostgres:
		cfg.DbHost = getEnv("POSTGRES_HOST", "db")
		cfg.DbPort = getEnv("POSTGRES_PORT", "5432")
		cfg.DbUser = getEnv("POSTGRES_USER", "tasktracker")
		cfg.DbPassword = getEnv("POSTGRES_PASSWORD", "tasktracker")
		cfg.DbName = getEnv("POSTGRES_DB", "tasktracker")
		cfg.DbParams = getEnv("POSTGRES_PARAMS", "sslmode=disable")
	default:
		cfg.DbHost = getEnv("MYSQL_HOST", "db")
		cfg.DbPort = getEnv("MYSQL_PORT", "3306")
		cfg.DbUser = getEnv("MYSQL_USER", "tasktracker")
		cfg.DbPassword = getEnv("MYSQL_PASSWORD", "tasktracker")
		cfg.DbName = getEnv("MYSQL_DATABASE", "tasktracker")
		cfg.DbParams = getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
