package main

import (
	"context"
	"time"

	"orchestra-site/config"
	"orchestra-site/database"
	routes "orchestra-site/internal/app/http"
	"orchestra-site/internal/app/http/middleware"
	"orchestra-site/internal/contentsync"
	"orchestra-site/internal/domain/users"
	"orchestra-site/internal/infra/storage"
	"orchestra-site/internal/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadEnv()
	gin.SetMode(config.GIN_MODE)

	log, err := logger.New(config.LOG_DIR, config.GIN_MODE == gin.DebugMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	database.InitDB()

	if config.ADMIN_EMAIL != "" {
		if _, err := users.EnsureAdmin(database.DB, config.ADMIN_EMAIL, config.ADMIN_PASSWORD); err != nil {
			log.Fatalw("❌ Failed to bootstrap admin account", "error", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := storage.Open(ctx, storage.Config{
		Driver:    config.STORAGE_DRIVER,
		Bucket:    config.STORAGE_BUCKET,
		Region:    config.STORAGE_REGION,
		Endpoint:  config.STORAGE_ENDPOINT,
		PublicURL: config.STORAGE_PUBLIC_URL,
		AccessKey: config.STORAGE_ACCESS_KEY,
		SecretKey: config.STORAGE_SECRET_KEY,
		PathStyle: config.STORAGE_PATH_STYLE,
		LocalDir:  config.STORAGE_LOCAL_DIR,
	})
	cancel()
	if err != nil {
		log.Fatalw("❌ Failed to open object storage", "driver", config.STORAGE_DRIVER, "error", err)
	}

	engine := contentsync.NewEngine(database.DB, storage.NewImages(store, log), log)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(log))

	// ✅ Add CORS middleware BEFORE registering routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	deps := routes.Deps{Engine: engine, Log: log}
	if local, ok := store.(*storage.LocalStore); ok {
		deps.UploadsDir = local.Dir()
	}
	routes.RegisterRoutes(r, deps)

	log.Infow("🎻 listening", "port", config.PORT, "storage", config.STORAGE_DRIVER)
	if err := r.Run(":" + config.PORT); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}
