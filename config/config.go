package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers
const (
	StorageFile     = "file"
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Email delivery modes
const (
	DeliverySMTP  = "smtp"
	DeliveryKafka = "kafka"
)

type Config struct {
	Port      string
	ClientURL string
	LogLevel  string

	StorageDriver string
	DataDir       string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	JWTSecret string
	TokenTTL  time.Duration

	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPass      string
	EmailFrom     string
	AdminEmail    string
	EmailDelivery string

	// Kafka (comma-separated brokers, empty disables)
	KafkaBrokers     string
	KafkaEventsTopic string
	KafkaEmailTopic  string
	KafkaGroupID     string

	RateLimitRPS   float64
	RateLimitBurst int

	SeedCounselorPassword string
}

var AppConfig Config

func LoadConfig() {
	// Try loading .env from different locations
	envLocations := []string{
		".env",              // project root
		"config/.env",       // config subdirectory
		"../config/.env",    // one level up
		"../../config/.env", // two levels up
	}

	envLoaded := false
	for _, location := range envLocations {
		if err := godotenv.Load(location); err == nil {
			envLoaded = true
			break
		}
	}

	if !envLoaded {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = FromEnv()
}

// FromEnv builds a Config from the current process environment.
func FromEnv() Config {
	return Config{
		Port:      getEnvWithDefault("PORT", "5000"),
		ClientURL: getEnvWithDefault("CLIENT_URL", "*"),
		LogLevel:  getEnvWithDefault("LOG_LEVEL", "INFO"),

		StorageDriver: strings.ToLower(getEnvWithDefault("STORAGE_DRIVER", StorageFile)),
		DataDir:       getEnvWithDefault("DATA_DIR", "data"),

		DBHost:     getEnvWithDefault("DB_HOST", "localhost"),
		DBPort:     getEnvWithDefault("DB_PORT", "5432"),
		DBUser:     getEnvWithDefault("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnvWithDefault("DB_NAME", "careerguide"),
		DBSSLMode:  getEnvWithDefault("DB_SSLMODE", "disable"),

		RedisAddr:     getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getIntWithDefault("REDIS_DB", 0),
		RedisPrefix:   getEnvWithDefault("REDIS_PREFIX", "careerguide:"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  getDurationWithDefault("TOKEN_TTL", 7*24*time.Hour),

		SMTPHost:      getEnvWithDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getIntWithDefault("SMTP_PORT", 587),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		EmailFrom:     os.Getenv("EMAIL_FROM"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		EmailDelivery: strings.ToLower(getEnvWithDefault("EMAIL_DELIVERY", DeliverySMTP)),

		KafkaBrokers:     os.Getenv("KAFKA_BROKERS"),
		KafkaEventsTopic: getEnvWithDefault("KAFKA_EVENTS_TOPIC", "careerguide.events"),
		KafkaEmailTopic:  getEnvWithDefault("KAFKA_EMAIL_TOPIC", "emails"),
		KafkaGroupID:     getEnvWithDefault("KAFKA_GROUP_ID", "careerguide-email-workers"),

		RateLimitRPS:   getFloatWithDefault("RATE_LIMIT_RPS", 1),
		RateLimitBurst: getIntWithDefault("RATE_LIMIT_BURST", 5),

		SeedCounselorPassword: os.Getenv("SEED_COUNSELOR_PASSWORD"),
	}
}

// Validate reports configuration that cannot start the server.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageFile, StorageMemory, StoragePostgres, StorageRedis:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	switch c.EmailDelivery {
	case DeliverySMTP:
	case DeliveryKafka:
		if c.KafkaBrokers == "" {
			return fmt.Errorf("EMAIL_DELIVERY=kafka requires KAFKA_BROKERS")
		}
	default:
		return fmt.Errorf("unknown EMAIL_DELIVERY %q", c.EmailDelivery)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

// Sender returns the From address, falling back to the SMTP user.
func (c Config) Sender() string {
	if c.EmailFrom != "" {
		return c.EmailFrom
	}
	return c.SMTPUser
}

// AdminRecipient returns the inbox that receives contact notifications.
func (c Config) AdminRecipient() string {
	if c.AdminEmail != "" {
		return c.AdminEmail
	}
	return c.Sender()
}

// EmailEnabled reports whether SMTP credentials are configured.
func (c Config) EmailEnabled() bool {
	return c.SMTPUser != "" && c.SMTPPass != "" && c.Sender() != ""
}

// Brokers splits KafkaBrokers, dropping blanks.
func (c Config) Brokers() []string {
	var out []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntWithDefault(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getFloatWithDefault(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultValue
}

func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func GetDBConnString() string {
	return AppConfig.DBConnString()
}

// DBConnString renders the lib/pq keyword/value DSN.
func (c Config) DBConnString() string {
	dsn := "host=" + c.DBHost +
		" port=" + c.DBPort +
		" user=" + c.DBUser +
		" dbname=" + c.DBName +
		" sslmode=" + c.DBSSLMode
	if c.DBPassword != "" {
		dsn += " password=" + c.DBPassword
	}
	return dsn
}
