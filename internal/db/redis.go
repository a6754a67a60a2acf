package db

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis connects the client used for issued-token bookkeeping.
func InitRedis(addr, password string, database int) {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       database,
	})
	if err := RedisClient.Ping(context.Background()).Err(); err != nil {
		log.Printf("Warning: could not verify Redis connection: %s", err)
	} else {
		log.Println("Successfully connected to Redis")
	}
}
