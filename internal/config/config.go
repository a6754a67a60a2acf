package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port             string
	MongoURI         string
	MongoDatabase    string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	JWTSecret        string
	TokenTTL         time.Duration
	RabbitMQURI      string
	RabbitMQExchange string
	AllowOrigins     []string
}

func New() *Config {
	tokenHours, err := strconv.Atoi(getEnv("TOKEN_EXPIRY_HOURS", "168"))
	if err != nil || tokenHours <= 0 {
		tokenHours = 168
	}
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return &Config{
		Port:             getEnv("PORT", "8080"),
		MongoURI:         getEnv("MONGO_URI", ""),
		MongoDatabase:    getEnv("MONGO_DATABASE", "exam_service"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PWD", ""),
		RedisDB:          redisDB,
		JWTSecret:        getEnv("JWT_SECRET", ""),
		TokenTTL:         time.Duration(tokenHours) * time.Hour,
		RabbitMQURI:      getEnv("RABBITMQ_URI", ""),
		RabbitMQExchange: getEnv("RABBITMQ_EXCHANGE", ""),
		AllowOrigins:     []string{getEnv("FE_ADDR", "http://localhost:3000")},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	if fallback == "" {
		log.Printf("env %s not set", key)
	}
	return fallback
}
