package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port    string
	BaseURL string
	JWTKey  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	CompletionThreshold float64 // Progress percentage that marks a course completed
	QuizPassPct         float64 // Score percentage that marks a quiz content item completed

	StorageDriver   string // "local" or "oss"
	LocalStorageDir string

	OSSEndpoint  string
	OSSKeyID     string
	OSSKeySecret string
	OSSBucket    string

	EmailSender string
	Password    string // SMTP App Password

	CertificateSweepMinutes int // Reconciliation interval for pending certificates
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	// Initialize AppConfig with values from environment variables
	AppConfig = &Config{
		Port:    getEnv("PORT", "3000"),
		BaseURL: getEnv("BASE_URL", "http://localhost:3000"),
		JWTKey:  getEnv("JWT_SECRET_KEY", "defaultSecret"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "lms"),

		CompletionThreshold: getEnvFloat("COMPLETION_THRESHOLD", 100),
		QuizPassPct:         getEnvFloat("QUIZ_PASS_PCT", 70),

		StorageDriver:   getEnv("STORAGE_DRIVER", "local"),
		LocalStorageDir: getEnv("LOCAL_STORAGE_DIR", "./uploads"),

		OSSEndpoint:  getEnv("OSS_ENDPOINT", ""),
		OSSKeyID:     getEnv("OSS_ACCESS_KEY_ID", ""),
		OSSKeySecret: getEnv("OSS_ACCESS_KEY_SECRET", ""),
		OSSBucket:    getEnv("OSS_BUCKET", ""),

		EmailSender: getEnv("EMAIL_SENDER", ""),
		Password:    getEnv("PASSWORD", ""),

		CertificateSweepMinutes: getEnvInt("CERTIFICATE_SWEEP_MINUTES", 10),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.StorageDriver == "oss" && AppConfig.OSSBucket == "" {
		log.Println("Warning: STORAGE_DRIVER is oss but OSS_BUCKET is empty.")
	}
	if AppConfig.EmailSender == "" {
		log.Println("Warning: EMAIL_SENDER not set. Outgoing email is disabled.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

// getEnvFloat retrieves an environment variable as a float or returns the default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Error converting environment variable %s to float: %v", key, err)
		return defaultValue
	}
	return floatValue
}
