// Stub API server for local development. It implements the aggregator
// REST contract over sqlite and seeds its corpus from a real RSS feed,
// so the terminal client can be exercised without the production
// backend.
package main

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"newsdeck/stubserver/api"
	"newsdeck/stubserver/dedup"
	"newsdeck/stubserver/ingest"
	"newsdeck/stubserver/store"
	"newsdeck/types"
)

const (
	defaultAddr   = ":8787"
	defaultDBPath = "newsdeck-stub.db"
	demoEmail     = "demo@newsdeck.local"
	demoPassword  = "password123"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	dbPath := getEnv("STUB_DB_PATH", defaultDBPath)
	s, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	if err := seedDemoUser(s); err != nil {
		log.Fatalf("failed to seed demo user: %v", err)
	}

	filter := buildFilter()
	defer filter.Close()

	feedPreset := getEnv("STUB_FEED_PRESET", ingest.DefaultFeedPreset)
	count := ingest.DefaultCount
	if v := os.Getenv("STUB_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			count = n
		}
	}
	go func() {
		start := time.Now()
		added, err := ingest.Run(s, filter, feedPreset, count)
		if err != nil {
			log.Printf("ingestion failed: %v", err)
			return
		}
		log.Printf("ingested %d new articles in %s", added, time.Since(start).Round(time.Millisecond))
	}()

	addr := getEnv("STUB_ADDR", defaultAddr)
	log.Printf("stub API listening on %s (db=%s, feed=%s)", addr, dbPath, feedPreset)
	log.Printf("demo account: %s / %s", demoEmail, demoPassword)

	r := api.NewServer(s).NewRouter()
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// buildFilter uses RedisBloom when REDIS_ADDR is set and reachable,
// falling back to the in-process filter otherwise.
func buildFilter() dedup.Filter {
	if os.Getenv("REDIS_ADDR") == "" {
		return dedup.NewMemoryFilter()
	}
	rb, err := dedup.NewRedisBloomFromEnv()
	if err != nil {
		log.Printf("redis unavailable (%v), using in-memory dedup", err)
		return dedup.NewMemoryFilter()
	}
	return rb
}

// seedDemoUser guarantees one known login on a fresh database.
func seedDemoUser(s *store.Store) error {
	if _, err := s.UserByEmail(demoEmail); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.CreateUser(store.StoredUser{
		User: types.User{
			ID:        uuid.NewString(),
			Email:     demoEmail,
			Name:      "Demo Reader",
			Interests: []string{"technology", "science"},
		},
		PasswordHash: string(hash),
		JoinDate:     time.Now().UTC().Format("2006-01-02"),
	})
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
