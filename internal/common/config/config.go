package config

import (
	"os"
	"strconv"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int

	// StandardsFile overrides the embedded flange table when set.
	StandardsFile string
	CompanyName   string

	ProjectsDBPath string
	AccessCode     string

	DrafterURL  string
	ProjectsURL string
	// APIDocFile replaces the embedded OpenAPI document when set.
	APIDocFile  string
}

// Load reads the configuration from the environment. defaultPort is used
// when PORT is unset.
func Load(defaultPort string) *Config {
	if defaultPort == "" {
		defaultPort = "3000"
	}
	return &Config{
		Port:         GetEnv("PORT", defaultPort),
		Environment:  GetEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),

		StandardsFile: GetEnv("STANDARDS_FILE", ""),
		CompanyName:   GetEnv("COMPANY_NAME", "ACESIAN"),

		ProjectsDBPath: GetEnv("PROJECTS_DB_PATH", "data/db/projects.db"),
		AccessCode:     GetEnv("ACCESS_CODE", "drafter"),

		DrafterURL:  GetEnv("DRAFTER_URL", "http://localhost:3001"),
		ProjectsURL: GetEnv("PROJECTS_URL", "http://localhost:3002"),
		APIDocFile:  GetEnv("API_DOC_FILE", ""),
	}
}

func GetEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
