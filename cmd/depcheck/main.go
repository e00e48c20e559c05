package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/frontdesigner/api/internal/config"
	"github.com/frontdesigner/api/internal/database"
	"github.com/frontdesigner/api/internal/eventbus"
	"go.uber.org/zap"
)

// Checks the optional infrastructure named in the environment.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	failed := false

	if cfg.RedisURL == "" {
		fmt.Println("Redis: not configured")
	} else {
		fmt.Println("Connecting to Redis:", cfg.RedisURL)
		rdb, err := database.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			fmt.Printf("Error connecting to Redis: %v\n", err)
			failed = true
		} else {
			rdb.Close()
			fmt.Println("Redis: OK")
		}
	}

	if cfg.NATSURL == "" {
		fmt.Println("NATS: not configured")
	} else {
		fmt.Println("Connecting to NATS:", cfg.NATSURL)
		nc, err := eventbus.Connect(cfg.NATSURL, zap.NewNop())
		if err != nil {
			fmt.Printf("Error connecting to NATS: %v\n", err)
			failed = true
		} else {
			if err := nc.Healthy(ctx); err != nil {
				fmt.Printf("Error flushing NATS: %v\n", err)
				failed = true
			} else {
				fmt.Println("NATS: OK")
			}
			nc.Close()
		}
	}

	if failed {
		os.Exit(1)
	}
}
