package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Amritansu-Adi/klantroef/controllers"
	"github.com/Amritansu-Adi/klantroef/pkg/analytics"
	"github.com/Amritansu-Adi/klantroef/pkg/token"
	"github.com/Amritansu-Adi/klantroef/platform/cache"
	"github.com/Amritansu-Adi/klantroef/platform/config"
	"github.com/Amritansu-Adi/klantroef/platform/database"
	"github.com/Amritansu-Adi/klantroef/platform/kafka"
	"github.com/Amritansu-Adi/klantroef/platform/logger"
	"github.com/Amritansu-Adi/klantroef/platform/middleware"
	"github.com/Amritansu-Adi/klantroef/platform/storage"
	"github.com/Amritansu-Adi/klantroef/store"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.Environment)

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	repo := store.NewGormStore(db)

	redisClient, err := cache.Connect(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("redis unreachable, falling back to in-memory rate limiting")
		redisClient = nil
	}

	var limiter middleware.RateLimiter
	if redisClient != nil {
		limiter = middleware.NewRedisLimiter(redisClient, cfg.ViewRateLimit, cfg.ViewRateWindow)
	} else {
		limiter = middleware.NewMemoryLimiter(cfg.ViewRateLimit, cfg.ViewRateWindow)
	}

	files, err := storage.Connect(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("object storage unavailable, uploads disabled")
		files = nil
	}

	var producer *kafka.Producer
	if cfg.KafkaBrokers != "" {
		producer = kafka.NewProducer(kafka.NewConfig(cfg))
	}

	tokens := token.NewService(cfg.SessionSecret, cfg.StreamSecret)

	authCtrl := controllers.NewAuthController(repo, tokens)
	mediaCtrl := controllers.NewMediaController(repo, repo, files, cache.New(redisClient))
	streamCtrl := controllers.NewStreamController(repo, repo, tokens)
	var publisher controllers.ViewPublisher
	if producer != nil {
		publisher = producer
	}
	viewCtrl := controllers.NewViewController(repo, repo, publisher)
	analyticsCtrl := controllers.NewAnalyticsController(repo, analytics.NewAggregator(repo))

	setupGracefulShutdown(db, redisClient, producer)

	router := gin.Default()
	setupMiddleware(router)
	setupRoutes(router, tokens, limiter, authCtrl, mediaCtrl, streamCtrl, viewCtrl, analyticsCtrl)

	log.Info().Str("port", cfg.Port).Msg("starting media metadata service")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

func setupMiddleware(router *gin.Engine) {
	router.Use(cors())
	router.Use(gin.Recovery())
}

func setupRoutes(
	router *gin.Engine,
	tokens *token.Service,
	limiter middleware.RateLimiter,
	authCtrl *controllers.AuthController,
	mediaCtrl *controllers.MediaController,
	streamCtrl *controllers.StreamController,
	viewCtrl *controllers.ViewController,
	analyticsCtrl *controllers.AnalyticsController,
) {
	router.GET("/health", controllers.HealthCheck)

	auth := router.Group("/auth")
	{
		auth.POST("/signup", authCtrl.Signup)
		auth.POST("/login", authCtrl.Login)
	}

	// Stream link issuance and redemption are public: the token itself is the
	// credential.
	router.GET("/media/:id/stream-url", streamCtrl.StreamURL)
	router.GET("/stream/:token", streamCtrl.Redeem)

	media := router.Group("/media")
	media.Use(middleware.SessionAuth(tokens))
	{
		media.POST("", mediaCtrl.CreateMedia)
		media.GET("/popular", mediaCtrl.PopularMedia)
		media.POST("/:id/upload", mediaCtrl.UploadFile)
		media.POST("/:id/view", middleware.ViewRateLimit(limiter), viewCtrl.Record)
		media.GET("/:id/analytics", analyticsCtrl.Summary)
	}
}

func setupGracefulShutdown(db *gorm.DB, redisClient *redis.Client, producer *kafka.Producer) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info().Msg("shutting down services")

		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("error closing database connection")
		}
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				log.Error().Err(err).Msg("error closing redis connection")
			}
		}
		if producer != nil {
			if err := producer.Close(); err != nil {
				log.Error().Err(err).Msg("error closing kafka producer")
			}
		}

		log.Info().Msg("all services shut down")
		os.Exit(0)
	}()
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
