package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all server configuration loaded from environment variables.
type Config struct {
	ListenAddr      string // HTTP listen address
	GRPCAddr        string // gRPC listen address, empty disables the gRPC server
	PublicDir       string // Web root; uploads live under <PublicDir>/uploads
	UploadBackend   string // "local" or "minio"
	MaxUploadSizeMB int64  // Upload size cap in megabytes, 0 means unlimited
	JWTSecret       string // HMAC secret for session tokens

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

// UploadDir returns the directory that holds the upload groups.
func (c *Config) UploadDir() string {
	return filepath.Join(c.PublicDir, "uploads")
}

// Load reads configuration from environment variables, falling back to defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: ignoring .env: %v", err)
	}

	return &Config{
		ListenAddr:      envOrDefault("LISTEN_ADDR", ":5000"),
		GRPCAddr:        envOrDefaultAllowEmpty("GRPC_ADDR", ":50051"),
		PublicDir:       envOrDefault("PUBLIC_DIR", "public"),
		UploadBackend:   envOrDefault("UPLOAD_BACKEND", "local"),
		MaxUploadSizeMB: envOrDefaultInt64("MAX_UPLOAD_SIZE_MB", 0),
		JWTSecret:       envOrDefault("JWT_SECRET", "supplychain-dev-secret"),
		MinioEndpoint:   envOrDefault("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:  os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:  os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:     envOrDefault("MINIO_BUCKET", "uploads"),
		MinioUseSSL:     envOrDefault("MINIO_USE_SSL", "false") == "true",
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envOrDefaultAllowEmpty treats an explicitly empty variable as a value.
func envOrDefaultAllowEmpty(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envOrDefaultInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
