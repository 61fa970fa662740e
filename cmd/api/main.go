package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pohioki/foodgram-project-react/config"
	"github.com/Pohioki/foodgram-project-react/internal/database"
	"github.com/Pohioki/foodgram-project-react/internal/server"
	"github.com/Pohioki/foodgram-project-react/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	healthDB, err := database.NewHealthDB(cfg)
	if err != nil {
		log.Printf("health check connection unavailable: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("redis unavailable, rate limiting disabled: %v", err)
	}

	var s3cfg *config.S3Config
	if cfg.S3Bucket != "" {
		s3cfg, err = config.NewS3Config(context.Background(), cfg.S3Bucket)
		if err != nil {
			log.Fatalf("failed to configure S3: %v", err)
		}
	}
	images := service.NewImageService(s3cfg, cfg.MediaDir, cfg.MediaURL)

	srv := server.New(cfg, server.Deps{
		DB:       db,
		HealthDB: healthDB,
		Redis:    redisClient,
		Images:   images,
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(net.JoinHostPort(cfg.ServerHost, cfg.ServerPort))
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("received signal: %v", sig)
	}

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown error: %v", err)
	}
	log.Println("server stopped")
}
