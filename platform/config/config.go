package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config is process-wide immutable configuration, loaded once at startup and
// passed explicitly to the components that need it. The signing secrets in
// particular are never read from ambient state after startup.
type Config struct {
	Port        string
	Environment string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	KafkaBrokers string
	KafkaGroupID string

	LogLevel string

	SessionSecret string
	StreamSecret  string

	ViewRateLimit  int
	ViewRateWindow time.Duration
}

func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	// Server settings
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")

	// Database settings
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "klantroef")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_SSLMODE", "disable")

	// Redis settings
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	// MinIO settings
	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_ACCESS_KEY", "adminUser")
	v.SetDefault("MINIO_SECRET_KEY", "adminUser")
	v.SetDefault("MINIO_BUCKET", "media-files")
	v.SetDefault("MINIO_USE_SSL", false)

	// Kafka settings
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_GROUP_ID", "klantroef")

	// Application settings
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SESSION_SECRET", "dev-session-secret-change-me")
	v.SetDefault("STREAM_SECRET", "dev-stream-secret-change-me")
	v.SetDefault("VIEW_RATE_LIMIT", 1)
	v.SetDefault("VIEW_RATE_WINDOW", 60*time.Second)

	return &Config{
		Port:        v.GetString("PORT"),
		Environment: v.GetString("ENV"),

		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBName:     v.GetString("DB_NAME"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBSSLMode:  v.GetString("DB_SSLMODE"),

		RedisHost:     v.GetString("REDIS_HOST"),
		RedisPort:     v.GetString("REDIS_PORT"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		MinioEndpoint:  v.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: v.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: v.GetString("MINIO_SECRET_KEY"),
		MinioBucket:    v.GetString("MINIO_BUCKET"),
		MinioUseSSL:    v.GetBool("MINIO_USE_SSL"),

		KafkaBrokers: v.GetString("KAFKA_BROKERS"),
		KafkaGroupID: v.GetString("KAFKA_GROUP_ID"),

		LogLevel: v.GetString("LOG_LEVEL"),

		SessionSecret: v.GetString("SESSION_SECRET"),
		StreamSecret:  v.GetString("STREAM_SECRET"),

		ViewRateLimit:  v.GetInt("VIEW_RATE_LIMIT"),
		ViewRateWindow: v.GetDuration("VIEW_RATE_WINDOW"),
	}
}
