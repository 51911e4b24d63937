package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/arnobm97/Trial-Project-backend/internal/config"
	"github.com/arnobm97/Trial-Project-backend/internal/server"
	"github.com/arnobm97/Trial-Project-backend/internal/storage/mongodb"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := mongodb.NewStore(ctx, cfg.MongoURI, cfg.DatabaseName)
	cancel()
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	srv := server.New(cfg, store)

	go func() {
		log.Printf("food ordering backend listening on %s", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
	if err := store.Close(ctxShutdown); err != nil {
		log.Printf("close database error: %v", err)
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
