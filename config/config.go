package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Port                   int
	MongoURI               string
	MongoDB                string
	JWTKey                 string
	Debug                  bool
	AllowedOrigins         []string
	CompanyCacheTTLSeconds int
}

// LoadConfig reads configuration from the environment. A .env file is
// loaded first when present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	cacheTTL, _ := strconv.Atoi(getEnv("COMPANY_CACHE_TTL_SECONDS", "300"))

	return &Config{
		Port:     port,
		MongoURI: getEnv("MONGO_URI", "mongodb://127.0.0.1:27017/pipeline"),
		MongoDB:  getEnv("MONGO_DB", "pipeline"),
		JWTKey:   getEnv("JWT_KEY", "dev-only-secret"),
		Debug:    getEnv("GIN_MODE", "debug") == "debug",
		AllowedOrigins: []string{
			getEnv("DASHBOARD_ORIGIN", "http://localhost:3000"),
			"http://localhost:5173",
		},
		CompanyCacheTTLSeconds: cacheTTL,
	}
}

// getEnv returns the variable's value or a default when unset.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
