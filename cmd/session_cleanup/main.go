package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"minicrm/internal/cron"
	"minicrm/internal/database"
	"minicrm/internal/repository"
)

// One-shot purge of expired view-state rows, for deployments that run it
// from an external scheduler instead of the in-process cron.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("SESSION_STORE_URL")
	if dsn == "" {
		dsn = "minicrm.db"
	}
	if database.IsRedisURL(dsn) {
		log.Println("session store is redis; entries expire on their own")
		return
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	kv := repository.NewKVRepository(db)
	if err := kv.Migrate(); err != nil {
		log.Fatalf("migrate kv_entries failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := cron.Purge(ctx, kv); err != nil {
		log.Fatalf("cleanup kv_entries failed: %v", err)
	}
}
