package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/julianstephens/habitboard/internal/constants"
	"github.com/julianstephens/habitboard/internal/logger"
)

type Config struct {
	// DB is a SQLite file path or a PostgreSQL URL.
	DB string
	// DBConnection is a PostgreSQL connection string that takes precedence
	// over the keyring.
	DBConnection string
	Timezone     string
	DefaultUser  string
	Debug        bool
	ServerPort   string
	CORSOrigins  string
}

// Load reads an optional .env file from the working directory, or the
// given files, then the environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		logger.Debug("No .env file loaded, using environment variables", "error", err)
	}

	return &Config{
		DB:           getEnv("HABITBOARD_DB", constants.DefaultConfigPath),
		DBConnection: getEnv("HABITBOARD_DB_CONNECTION", ""),
		Timezone:     getEnv("HABITBOARD_TIMEZONE", constants.DefaultTimezone),
		DefaultUser:  getEnv("HABITBOARD_DEFAULT_USER", constants.DefaultUsername),
		Debug:        getBool("HABITBOARD_DEBUG", false),
		ServerPort:   getEnv("SERVER_PORT", constants.DefaultServerPort),
		CORSOrigins:  getEnv("CORS_ORIGINS", "*"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		logger.Warn("Ignoring invalid boolean", "key", key, "value", value)
		return defaultValue
	}
	return b
}
