package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"airclient/config"
	"airclient/internal/mockapi"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := cfg.MockAPI.Address
	if addr == "" {
		addr = ":8081"
	}
	secret := cfg.MockAPI.JWTSecret
	if secret == "" {
		secret = "dev-secret"
	}

	server := mockapi.NewServer(secret, mockapi.WithTokenTTL(cfg.MockAPI.TokenTTL()))

	log.Printf("mock backend listening on %s", addr)
	if err := server.Run(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
