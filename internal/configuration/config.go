package configuration

import (
	"fmt"
	"os"
)

type Config struct {
	Database  DatabaseConfig
	Redis     RedisConfig
	MinIO     MinIOConfig
	Server    ServerConfig
	Storage   StorageConfig
	Auth      AuthConfig
	NATSURL   string
	CLAMAVURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type MinIOConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
}

type ServerConfig struct {
	Port string
}

type StorageConfig struct {
	// Backend selects the blob store: "local" or "minio".
	Backend string
	// FolderPath is the blob root directory for the local backend.
	FolderPath string
}

type AuthConfig struct {
	// Backend selects the identity resolver: "redis" or "oidc".
	Backend    string
	OIDCIssuer string
}

func Load() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "fileuser"),
			Password: getEnv("DB_PASSWORD", "filepassword"),
			DBName:   getEnv("DB_NAME", "files_manager"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		MinIO: MinIOConfig{
			Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
			BucketName: getEnv("MINIO_BUCKET", "files"),
			UseSSL:     getEnv("MINIO_USE_SSL", "false") == "true",
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Storage: StorageConfig{
			Backend:    getEnv("STORAGE_BACKEND", "local"),
			FolderPath: getEnv("FOLDER_PATH", "/tmp/files_manager"),
		},
		Auth: AuthConfig{
			Backend:    getEnv("AUTH_BACKEND", "redis"),
			OIDCIssuer: getEnv("OIDC_ISSUER", ""),
		},
		NATSURL:   getEnv("NATS_URL", ""),
		CLAMAVURL: getEnv("CLAMAV_URL", ""),
	}
}

func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
