//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type ClinicDetailsEvent struct {
	PlaceID string `json:"place_id"`
}

// Manual tool for pushing test events into the clinic details stream.
// Usage: go run scripts/test_publish.go -place ChIJabc123
func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	placeID := flag.String("place", "", "Google place id to enqueue")
	flag.Parse()

	if *placeID == "" {
		log.Fatal("-place is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	payload, err := json.Marshal(ClinicDetailsEvent{PlaceID: *placeID})
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "clinic:details:enrich",
		Values: map[string]interface{}{"data": string(payload)},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Published message %s for place %s\n", id, *placeID)
}
