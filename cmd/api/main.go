package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Apurer/go-gin-dog-shelter/internal/app/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg, err = api.ApplyFlags(cfg, os.Args[1:]); err != nil {
		log.Fatalf("invalid flags: %v", err)
	}
	if err := api.Run(ctx, cfg); err != nil {
		log.Fatalf("dog shelter API failed: %v", err)
	}
}
