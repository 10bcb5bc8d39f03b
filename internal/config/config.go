package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers string

	JWTSecret string

	// SMS gateway credentials. BaseURL is overridable so local setups
	// can point at the mock gateway.
	SMSAccountSID string
	SMSAuthToken  string
	SMSFromNumber string
	SMSBaseURL    string

	ImageDir string

	// Optional bootstrap admin. Seeded at startup when both are set.
	AdminUsername string
	AdminPassword string
}

func Load() Config {
	// .env is a dev convenience; absence is not an error.
	_ = godotenv.Load()

	return Config{
		HTTPAddr: ":" + getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "peppershop"),
		DBPassword: getEnv("DB_PASSWORD", "peppershop"),
		DBName:     getEnv("DB_NAME", "peppershop"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		KafkaBrokers: getEnv("KAFKA_BROKERS", "localhost:9092"),

		JWTSecret: getEnv("JWT_SECRET", "dev-only-secret"),

		SMSAccountSID: getEnv("SMS_ACCOUNT_SID", ""),
		SMSAuthToken:  getEnv("SMS_AUTH_TOKEN", ""),
		SMSFromNumber: getEnv("SMS_FROM_NUMBER", ""),
		SMSBaseURL:    getEnv("SMS_BASE_URL", "https://api.twilio.com/2010-04-01"),

		ImageDir: getEnv("IMAGE_DIR", "./uploads"),

		AdminUsername: getEnv("ADMIN_USERNAME", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
