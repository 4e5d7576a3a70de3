package config

import "os"

type Config struct {
	Port        string
	Env         string
	DBDriver    string
	PostgresURL string
	SQLitePath  string
	SystemName  string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DBDriver:    getEnv("DB_DRIVER", "postgres"),
		PostgresURL: getEnv("POSTGRES_CONN_STR", ""),
		SQLitePath:  getEnv("SQLITE_PATH", "notification-center.db"),
		SystemName:  getEnv("SYSTEM_NAME", "Notification Center"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
