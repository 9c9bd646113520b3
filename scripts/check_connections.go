//go:build ignore

package main

import (
	"context"
	"fmt"
	"os"

	"storefront/internal/config"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// Checks that the configured Postgres and Redis are reachable.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	failed := false

	if cfg.Storage.OrderStore == config.DriverPostgres {
		conn, err := pgx.Connect(ctx, cfg.Database.ConnectionString())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
			failed = true
		} else {
			var dbName string
			if err := conn.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
				fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
				failed = true
			} else {
				fmt.Printf("Successfully connected to database: %s\n", dbName)
			}
			conn.Close(ctx)
		}
	}

	if cfg.Storage.StateStore == config.DriverRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			fmt.Fprintf(os.Stderr, "Unable to connect to redis: %v\n", err)
			failed = true
		} else {
			fmt.Printf("Successfully connected to redis: %s\n", cfg.Redis.Addr)
		}
	}

	if failed {
		os.Exit(1)
	}
}
