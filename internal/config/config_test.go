package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("PUBLIC_DIR", "")
	t.Setenv("MAX_UPLOAD_SIZE_MB", "")
	t.Setenv("UPLOAD_BACKEND", "")

	cfg := Load()
	assert.Equal(t, ":5000", cfg.ListenAddr)
	assert.Equal(t, "public", cfg.PublicDir)
	assert.Equal(t, "local", cfg.UploadBackend)
	assert.Equal(t, int64(0), cfg.MaxUploadSizeMB)
	assert.Equal(t, filepath.Join("public", "uploads"), cfg.UploadDir())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9999")
	t.Setenv("GRPC_ADDR", "")
	t.Setenv("MAX_UPLOAD_SIZE_MB", "12")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg := Load()
	assert.Equal(t, ":9999", cfg.ListenAddr)
	assert.Equal(t, "", cfg.GRPCAddr, "explicitly empty GRPC_ADDR disables gRPC")
	assert.Equal(t, int64(12), cfg.MaxUploadSizeMB)
	assert.True(t, cfg.MinioUseSSL)
}

func TestEnvOrDefaultInt64_BadValue(t *testing.T) {
	t.Setenv("SOME_INT", "twelve")
	assert.Equal(t, int64(7), envOrDefaultInt64("SOME_INT", 7))
}
