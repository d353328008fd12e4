package routes

import (
	adminapi "orchestra-site/internal/api/admin"
	authapi "orchestra-site/internal/api/auth"
	contentapi "orchestra-site/internal/api/content"
	"orchestra-site/internal/app/http/middleware"
	"orchestra-site/internal/contentsync"
	"orchestra-site/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// accountBodyBytes bounds login and account bodies, which never carry images.
const accountBodyBytes = 1 << 20

type Deps struct {
	Engine *contentsync.Engine
	Log    *zap.SugaredLogger
	// UploadsDir is served under /uploads when images live on local disk.
	UploadsDir string
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if deps.UploadsDir != "" {
		r.Static("/uploads", deps.UploadsDir)
	}

	api := r.Group("/api")

	// ✅ Public
	public := api.Group("/")
	public.Use(middleware.BodyLimit(accountBodyBytes), middleware.SanitizeAndCleanInputMiddleware())
	public.POST("/auth/login", authapi.Login)
	public.POST("/auth/logout", authapi.Logout)

	// Authenticated
	auth := api.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/auth/me", authapi.Me)
	auth.POST("/auth/change-password", middleware.BodyLimit(accountBodyBytes), middleware.SanitizeAndCleanInputMiddleware(), authapi.ChangePassword)

	// Content: GET is public, PUT checks the role before the body is read
	content := contentapi.NewHandler(deps.Engine, deps.Log)
	for _, name := range deps.Engine.Types() {
		api.GET("/content/"+name, content.Get(name))
		api.PUT("/content/"+name,
			middleware.AuthMiddleware(),
			middleware.RequireRole(deps.Engine.Editors(name)...),
			middleware.BodyLimit(contentapi.MaxBodyBytes),
			middleware.SanitizeAndCleanInputMiddleware(),
			content.Put(name),
		)
	}

	// Admin
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(users.RoleAdmin))
	admin.GET("/content", adminapi.ContentOverview(deps.Engine))
	admin.GET("/users", adminapi.ListUsers)
	admin.GET("/users/:id", adminapi.GetUserDetails)
	admin.POST("/users", middleware.BodyLimit(accountBodyBytes), middleware.SanitizeAndCleanInputMiddleware(), adminapi.CreateUser)
}
