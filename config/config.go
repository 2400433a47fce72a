package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceConfig    ServiceConfig
	RemoteAPIConfig  RemoteAPIConfig
	StorageConfig    StorageConfig
	PostgreSQLConfig PostgreSQLConfig
	MongoDBConfig    MongoDBConfig
	KafkaConfig      KafkaConfig
	TracingConfig    TracingConfig
	AdminConfig      AdminConfig
	CatalogConfig    CatalogConfig
	SMTPConfig       SMTPConfig
	JWTSecret        string
}

type ServiceConfig struct {
	ServiceName      string
	ServicePort      string
	MetricsPort      string
	LogLevel         string
	Timezone         string
	CORSAllowOrigins []string
}

type RemoteAPIConfig struct {
	BaseURL string
	Token   string
	// 0 leaves the client without a timeout.
	TimeoutSeconds int
}

type StorageConfig struct {
	Driver   string
	RedisURL string
}

type PostgreSQLConfig struct {
	DBHost     string
	DBName     string
	DBPort     string
	DBUsername string
	DBPassword string
}

type MongoDBConfig struct {
	URI      string
	Database string
}

type KafkaConfig struct {
	BrokerAddress   string
	BrokerTopic     string
	BrokerPartition int
}

type TracingConfig struct {
	CollectorHost string
}

type AdminConfig struct {
	Email        string
	Name         string
	PasswordHash string
}

type CatalogConfig struct {
	RefreshIntervalSeconds int
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServiceConfig: ServiceConfig{
			ServiceName:      getEnv("SERVICE_NAME", "perfume-storefront"),
			ServicePort:      getEnv("SERVICE_PORT", "8080"),
			MetricsPort:      getEnv("METRICS_PORT", "8081"),
			LogLevel:         getEnv("LOG_LEVEL", "info"),
			Timezone:         getEnv("APP_TIMEZONE", "Asia/Jakarta"),
			CORSAllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
		},
		RemoteAPIConfig: RemoteAPIConfig{
			BaseURL:        getEnv("REMOTE_API_BASE_URL", "http://localhost:8000/api"),
			Token:          os.Getenv("REMOTE_API_TOKEN"),
			TimeoutSeconds: getEnvInt("HTTP_CLIENT_TIMEOUT_SECONDS", 0),
		},
		StorageConfig: StorageConfig{
			Driver:   getEnv("CART_STORAGE_DRIVER", "memory"),
			RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
		},
		PostgreSQLConfig: PostgreSQLConfig{
			DBHost:     os.Getenv("DB_HOST"),
			DBName:     os.Getenv("DB_NAME"),
			DBPort:     os.Getenv("DB_PORT"),
			DBUsername: os.Getenv("DB_USERNAME"),
			DBPassword: os.Getenv("DB_PASSWORD"),
		},
		MongoDBConfig: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "perfume_store"),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress:   os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:     getEnv("BROKER_TOPIC", "storefront-events"),
			BrokerPartition: getEnvInt("BROKER_PARTITION", 0),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
		AdminConfig: AdminConfig{
			Email:        os.Getenv("ADMIN_EMAIL"),
			Name:         getEnv("ADMIN_NAME", "Administrator"),
			PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		},
		CatalogConfig: CatalogConfig{
			RefreshIntervalSeconds: getEnvInt("CATALOG_REFRESH_INTERVAL_SECONDS", 300),
		},
		SMTPConfig: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("MAIL_FROM"),
			To:       os.Getenv("MAIL_TO"),
		},
		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	return &conf
}
