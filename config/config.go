package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port  string
	DBUrl string
	// Auth Configuration
	JWTSecret        string
	JWTExpiryMinutes int
	// Model Collaborator (Ollama-compatible HTTP API)
	OllamaBaseURL string
	ParseModel    string
	ChatModel     string
	ModelTimeout  time.Duration
	// Course Search Collaborator
	CourseraBaseURL string
	ScrapeTimeout   time.Duration
	// Courtesy delay between outbound scraper calls. Not a correctness
	// requirement; keeps the catalog's anti-scraping defenses quiet.
	ScrapeDelay time.Duration
	// Upload Configuration
	UploadDir string
}

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally, ignored in production if absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		DBUrl:            getEnv("DATABASE_URL", ""),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTExpiryMinutes: getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60),
		OllamaBaseURL:    getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		ParseModel:       getEnv("PARSE_MODEL", "mistral"),
		ChatModel:        getEnv("CHAT_MODEL", "deepseek-coder"),
		ModelTimeout:     time.Duration(getEnvInt("MODEL_TIMEOUT_SECONDS", 120)) * time.Second,
		CourseraBaseURL:  getEnv("COURSERA_BASE_URL", "https://www.coursera.org"),
		ScrapeTimeout:    time.Duration(getEnvInt("SCRAPE_TIMEOUT_SECONDS", 10)) * time.Second,
		ScrapeDelay:      time.Duration(getEnvInt("SCRAPE_DELAY_MS", 2000)) * time.Millisecond,
		UploadDir:        getEnv("UPLOAD_DIR", "uploads"),
	}

	// Basic validation to prevent confusing failures later
	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. Auth endpoints will reject all tokens.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
