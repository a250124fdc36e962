package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/alfagnish/supplychain-api/internal/config"
	"github.com/alfagnish/supplychain-api/internal/events"
	grpcserver "github.com/alfagnish/supplychain-api/internal/grpc"
	"github.com/alfagnish/supplychain-api/internal/handlers"
	"github.com/alfagnish/supplychain-api/internal/metrics"
	"github.com/alfagnish/supplychain-api/internal/server"
	"github.com/alfagnish/supplychain-api/internal/storage"
	"github.com/alfagnish/supplychain-api/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// 1. Load configuration from the environment (and .env if present).
	cfg := config.Load()
	log.Printf("config: listen=%s grpc=%s public=%s backend=%s",
		cfg.ListenAddr, cfg.GRPCAddr, cfg.PublicDir, cfg.UploadBackend)

	ctx := context.Background()

	// 2. Upload storage. Group directories are created eagerly.
	sp, err := newStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to set up upload storage: %v", err)
	}

	// 3. In-memory records, change feed and metrics.
	st := store.New()
	hub := events.NewHub()
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// 4. Optional gRPC mirror of the record API.
	var gs interface{ GracefulStop() }
	if cfg.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			log.Fatalf("grpc listen: %v", err)
		}
		srv := grpcserver.NewServer(grpcserver.NewRecordsServer(st, hub, m))
		gs = srv
		go func() {
			log.Printf("grpc listening on %s", cfg.GRPCAddr)
			if err := srv.Serve(lis); err != nil {
				log.Printf("grpc server error: %v", err)
			}
		}()
	}

	// 5. Start the HTTP server.
	srv := &http.Server{
		Addr: cfg.ListenAddr,
		Handler: server.New(cfg, server.Deps{
			Store:   st,
			Storage: sp,
			Hub:     hub,
			Metrics: m,
		}),
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("server is running on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-done
	log.Println("shutting down...")

	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if gs != nil {
		gs.GracefulStop()
	}
	if err := srv.Shutdown(shutCtx); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}

	log.Println("server stopped")
}

func newStorage(ctx context.Context, cfg *config.Config) (storage.Provider, error) {
	switch cfg.UploadBackend {
	case "minio":
		return storage.NewMinioProvider(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey,
			cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	default:
		return storage.NewLocalProvider(cfg.UploadDir(), handlers.GroupProfile, handlers.GroupProduct)
	}
}
