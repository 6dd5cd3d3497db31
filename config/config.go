// Package config provides configuration management for the BoneRecipes
// application. It handles loading and validation of configuration values from
// environment variables, with support for required variables, default values,
// and collective error reporting. The resulting AppConfig is built once at
// process start and passed explicitly to the components that need it; nothing
// reads the environment after startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// PoolConfig represents configuration for the database connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	TokenSecret   string        // Secret key for signing session tokens
	TokenDuration time.Duration // Absolute lifetime of a session token
}

// AppSettings holds the application-level constants the controllers and the
// listing pipeline consume. They are configurable, not hardcoded.
type AppSettings struct {
	PageSize          int // Recipes shown per listing page
	MinPasswordLength int
	MaxNotesLength    int
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port string // Port for the HTTP server
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	DB       *PoolConfig
	Auth     *AuthConfig
	Settings *AppSettings
	Server   *ServerConfig
}

// getRequiredEnv reads a required environment variable, appending to the
// errors slice if it is not set. Missing critical configuration fails fast at
// startup rather than at first use.
func getRequiredEnv(key string, errors *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errors = append(*errors, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// getOptionalEnv reads an optional environment variable with a default.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getOptionalEnvInt reads an optional environment variable parsed as an int.
// Uses defaultValue if not set; appends an error if parsing fails.
func getOptionalEnvInt(key string, defaultValue int, errors *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// getOptionalEnvDuration reads an optional environment variable parsed as a
// time.Duration ("16m", "1h30s"). Uses defaultValue if not set; appends an
// error if parsing fails.
func getOptionalEnvDuration(key string, defaultValue time.Duration, errors *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// LoadConfig creates and returns an AppConfig by reading and validating
// environment variables. It collects all errors encountered during loading
// and returns a single aggregated error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errors []string

	// Database configuration
	dbUser := getRequiredEnv("DB_USER", &errors)
	dbPassword := getRequiredEnv("DB_PASSWORD", &errors)
	dbName := getRequiredEnv("DB_NAME", &errors)
	dbHost := getOptionalEnv("DB_HOST", "localhost")
	dbPort := getOptionalEnvInt("DB_PORT", 5432, &errors)
	poolSize := getOptionalEnvInt("DB_POOL_SIZE", 10, &errors)
	if poolSize < 1 || poolSize > 100 {
		errors = append(errors, fmt.Sprintf("DB_POOL_SIZE (%d) must be between 1 and 100", poolSize))
	}

	dbConfig := &PoolConfig{
		Host:     dbHost,
		Port:     dbPort,
		User:     dbUser,
		Password: dbPassword,
		DBName:   dbName,
		MaxSize:  poolSize,
	}

	// Auth configuration. The 16 minute default matches the lifetime web
	// clients were built around.
	tokenSecret := getRequiredEnv("TOKEN_SECRET", &errors)
	tokenDuration := getOptionalEnvDuration("TOKEN_DURATION", 16*time.Minute, &errors)

	authConfig := &AuthConfig{
		TokenSecret:   tokenSecret,
		TokenDuration: tokenDuration,
	}

	// Application constants
	settings := &AppSettings{
		PageSize:          getOptionalEnvInt("PAGE_SIZE", 10, &errors),
		MinPasswordLength: getOptionalEnvInt("MIN_PASSWORD_LENGTH", 8, &errors),
		MaxNotesLength:    getOptionalEnvInt("MAX_NOTES_LENGTH", 500, &errors),
	}
	if settings.PageSize < 1 {
		errors = append(errors, fmt.Sprintf("PAGE_SIZE (%d) must be positive", settings.PageSize))
	}

	serverConfig := &ServerConfig{
		Port: getOptionalEnv("PORT", "8080"),
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return &AppConfig{
		DB:       dbConfig,
		Auth:     authConfig,
		Settings: settings,
		Server:   serverConfig,
	}, nil
}
