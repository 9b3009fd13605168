package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"club-site/config"
	"club-site/database"
	authapi "club-site/internal/api/auth"
	eventsapi "club-site/internal/api/events"
	imagesapi "club-site/internal/api/images"
	routes "club-site/internal/app/http"
	"club-site/internal/app/http/middleware"
	"club-site/internal/infra/blob"
	"club-site/internal/infra/cache"
	"club-site/internal/infra/otel"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, otel.Config{ServiceName: "club-site", UseStdout: config.OTEL_STDOUT})
	if err != nil {
		log.Fatalf("❌ Failed to init tracing: %v", err)
	}

	db := database.MustInit(config.DB_URL)

	var eventCache cache.Cache = cache.Noop{}
	if config.REDIS_URL != "" {
		rc, err := cache.NewRedis(ctx, config.REDIS_URL)
		if err != nil {
			log.Fatalf("❌ Failed to connect to redis: %v", err)
		}
		defer rc.Close()
		eventCache = rc
		log.Println("✅ Event cache on redis")
	}

	store, err := blob.NewS3(blob.S3Config{
		Endpoint:  config.S3_ENDPOINT,
		AccessKey: config.S3_ACCESS_KEY,
		SecretKey: config.S3_SECRET_KEY,
		Bucket:    config.S3_BUCKET,
		UseSSL:    config.S3_USE_SSL,
		PublicURL: config.S3_PUBLIC_URL,
	})
	if err != nil {
		log.Fatalf("❌ Failed to init blob storage: %v", err)
	}

	eventsSvc := eventsapi.NewService(db, eventCache, config.CACHE_TTL)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.Metrics())

	routes.RegisterRoutes(r, routes.Deps{
		DB:        db,
		JWTSecret: config.JWT_SECRET,
		Auth: authapi.NewHandler(db, authapi.Config{
			ClientID:         config.GITHUB_CLIENT_ID,
			ClientSecret:     config.GITHUB_CLIENT_SECRET,
			RedirectURL:      config.GITHUB_REDIRECT_URL,
			JWTSecret:        config.JWT_SECRET,
			AdminRedirectURL: config.ADMIN_REDIRECT_URL,
			CookieSecure:     config.COOKIE_SECURE,
		}),
		Events: eventsSvc,
		Images: imagesapi.NewService(db, store, eventsSvc),
	})

	srv := &http.Server{
		Addr:              ":" + config.PORT,
		Handler:           otelhttp.NewHandler(r, "club-site"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Listening on :%s", config.PORT)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ Server shutdown: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("⚠️ Tracing shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
