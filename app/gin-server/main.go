package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/vocallq/vocallq/config"
	"github.com/vocallq/vocallq/internal/api/handlers"
	"github.com/vocallq/vocallq/internal/api/middleware"
	"github.com/vocallq/vocallq/internal/api/routes"
	"github.com/vocallq/vocallq/internal/cache"
	"github.com/vocallq/vocallq/internal/logger"
	"github.com/vocallq/vocallq/internal/payments"
	"github.com/vocallq/vocallq/internal/providers/stt"
	"github.com/vocallq/vocallq/internal/providers/transcription"
	"github.com/vocallq/vocallq/internal/providers/voiceagent"
	mongorepo "github.com/vocallq/vocallq/internal/repositories/mongo"
	pgrepo "github.com/vocallq/vocallq/internal/repositories/postgres"
	"github.com/vocallq/vocallq/internal/services"
	"github.com/vocallq/vocallq/internal/storage"
	"github.com/vocallq/vocallq/internal/workers"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	ctx := context.Background()

	// Init MongoDB
	if err := config.InitMongo(); err != nil {
		log.WithError(err).Fatal("MongoDB init error")
	}
	if err := config.EnsureMongoIndexes(); err != nil {
		log.WithError(err).Fatal("MongoDB index error")
	}
	log.Info("MongoDB connected")

	// Init PostgreSQL
	if err := config.InitPostgres(); err != nil {
		log.WithError(err).Fatal("PostgreSQL init error")
	}
	if os.Getenv("AUTO_MIGRATE") == "true" {
		if err := config.MigratePostgres(); err != nil {
			log.WithError(err).Fatal("PostgreSQL migrate error")
		}
	}
	log.Info("PostgreSQL connected")

	// Init Redis
	if err := config.InitRedis(); err != nil {
		log.WithError(err).Fatal("Redis init error")
	}
	log.Info("Redis connected")

	// Repositories
	userRepo := pgrepo.NewUserRepo(config.PostgresDB)
	webinarRepo := pgrepo.NewWebinarRepo(config.PostgresDB)
	transcriptRepo := pgrepo.NewTranscriptRepo(config.PostgresDB)
	insightsRepo := pgrepo.NewInsightsRepo(config.PostgresDB)
	attendanceRepo := pgrepo.NewAttendanceRepo(config.PostgresDB)
	liveRepo := mongorepo.NewLiveTranscriptionRepo(config.MongoDatabase())

	// Providers
	transcriber := transcription.NewAssemblyAI(os.Getenv("ASSEMBLYAI_API_KEY"))
	vapi := voiceagent.NewVapi(os.Getenv("VAPI_API_KEY"))

	var signer storage.Signer
	if bucket := os.Getenv("GCS_BUCKET"); bucket != "" {
		gcsBucket, err := storage.NewGCSBucket(ctx, bucket)
		if err != nil {
			log.WithError(err).Fatal("GCS init error")
		}
		defer gcsBucket.Close()
		signer = gcsBucket
	}

	var sttProvider stt.Provider
	if os.Getenv("GOOGLE_SPEECH_ENABLED") == "true" {
		gs, err := stt.NewGoogleSpeech(ctx)
		if err != nil {
			log.WithError(err).Fatal("Google Speech init error")
		}
		defer gs.Close()
		sttProvider = gs
	}

	// Services
	redisCache := cache.NewRedisCache(config.RedisClient)
	userSvc := services.NewUserService(userRepo, payments.ConnectConfig{
		ClientID:    os.Getenv("STRIPE_CONNECT_CLIENT_ID"),
		RedirectURL: os.Getenv("STRIPE_CONNECT_REDIRECT_URL"),
	})
	webinarSvc := services.NewWebinarService(webinarRepo, redisCache, log)
	transcriptSvc := services.NewTranscriptService(
		webinarRepo, transcriptRepo, insightsRepo, liveRepo,
		transcriber, signer, config.RedisClient,
	)
	analyticsSvc := services.NewAnalyticsService(
		webinarRepo, transcriptRepo, insightsRepo, attendanceRepo, liveRepo,
	)
	agentSvc := services.NewAgentService(pgrepo.NewAgentRepo(config.PostgresDB), vapi)

	// Workers
	transcriptionPool := &workers.TranscriptionWorkerPool{
		Redis:       config.RedisClient,
		Transcripts: transcriptSvc,
		Logger:      log,
	}
	if err := transcriptionPool.Start(ctx); err != nil {
		log.WithError(err).Fatal("transcription worker start error")
	}

	captionPool := &workers.CaptionWorkerPool{
		Redis:       config.RedisClient,
		Transcripts: transcriptSvc,
		Logger:      log,
	}
	if err := captionPool.Start(ctx); err != nil {
		log.WithError(err).Fatal("caption worker start error")
	}

	// HTTP server
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		User:       handlers.NewUserHandler(userSvc),
		Webinar:    handlers.NewWebinarHandler(webinarSvc),
		Transcript: handlers.NewTranscriptHandler(transcriptSvc),
		Analytics:  handlers.NewAnalyticsHandler(analyticsSvc),
		Agent:      handlers.NewAgentHandler(agentSvc),
		LiveWS:     handlers.NewLiveWSHandler(webinarSvc, sttProvider, config.RedisClient),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server error")
	}
}
