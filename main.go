package main

import (
	"log"
	"time"

	"exam-service/internal/config"
	"exam-service/internal/db"
	"exam-service/internal/event"
	"exam-service/internal/handlers"
	"exam-service/internal/middleware"
	"exam-service/internal/repository"
	"exam-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.New()
	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	db.InitMongo(cfg.MongoURI)
	defer db.DisconnectMongo()
	db.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// RabbitMQ event publisher; a nil publisher drops events silently
	var publisher *event.Publisher
	if cfg.RabbitMQURI != "" && cfg.RabbitMQExchange != "" {
		var err error
		publisher, err = event.NewPublisher(cfg.RabbitMQURI, cfg.RabbitMQExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, events will not be published")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	database := db.Client.Database(cfg.MongoDatabase)

	// Users and auth
	userRepo := repository.NewUserRepository(database)
	tokenRepo := repository.NewTokenRepository(db.RedisClient)
	authService := service.NewAuthService(userRepo, tokenRepo, publisher, cfg.JWTSecret, cfg.TokenTTL)
	authHandler := handlers.NewAuthHandler(authService)

	// Questions
	questionRepo := repository.NewQuestionRepository(database)
	questionService := service.NewQuestionService(questionRepo, publisher)
	questionHandler := handlers.NewQuestionHandler(questionService)

	// Tests
	testRepo := repository.NewTestRepository(database)
	testService := service.NewTestService(testRepo, publisher)
	testHandler := handlers.NewTestHandler(testService)

	// Sessions
	sessionRepo := repository.NewSessionRepository(database)
	submissionRepo := repository.NewSubmissionRepository(database)
	sessionService := service.NewSessionService(sessionRepo, submissionRepo, questionRepo, testRepo, publisher)
	sessionHandler := handlers.NewSessionHandler(sessionService)

	authenticated := middleware.Authenticate(authService)
	adminOnly := middleware.RequireAdmin()

	auth := r.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authenticated, authHandler.Logout)
	}

	questions := r.Group("/questions", authenticated, adminOnly)
	{
		questions.POST("", questionHandler.Create)
		questions.GET("", questionHandler.List)
		questions.GET("/:id", questionHandler.Get)
		questions.PUT("/:id", questionHandler.Update)
		questions.DELETE("/:id", questionHandler.Delete)
	}

	tests := r.Group("/tests")
	{
		tests.POST("", authenticated, adminOnly, testHandler.Create)
		tests.GET("", authenticated, adminOnly, testHandler.List)
		tests.GET("/:testId", authenticated, adminOnly, testHandler.Get)
		tests.PUT("/:testId", authenticated, adminOnly, testHandler.Update)
		tests.DELETE("/:testId", authenticated, adminOnly, testHandler.Delete)

		// Share-slug lookup is open to anyone holding the link
		tests.GET("/:testId/url", testHandler.GetByURL)

		tests.POST("/:testId/start", authenticated, sessionHandler.Start)
		tests.POST("/:testId/questions/:questionId/answer", authenticated, sessionHandler.SubmitAnswer)
		tests.GET("/user/attempted", authenticated, sessionHandler.Attempted)
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
