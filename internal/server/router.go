package server

import (
	"time"

	"github.com/frontdesigner/api/internal/handlers"
	"github.com/frontdesigner/api/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	_ "github.com/frontdesigner/api/docs" // Swagger docs
)

// Deps are the handlers and settings the router is assembled from
type Deps struct {
	Logger     *zap.Logger
	Generation *handlers.GenerationHandler
	Health     *handlers.HealthHandler
	Project    *handlers.ProjectHandler
	Upload     *handlers.UploadHandler

	UploadDir      string
	AllowedOrigins []string
	MaxBodyBytes   int64
	// Limiter throttles /api; nil disables rate limiting
	Limiter middleware.Limiter
	// ExposeErrors puts panic values into 500 responses
	ExposeErrors bool
	// EnableMetrics registers request metrics and GET /metrics. The
	// collectors are global, so enable it once per process.
	EnableMetrics bool
}

// NewRouter builds the HTTP API
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(d.Logger))
	router.Use(middleware.Recovery(d.Logger, d.ExposeErrors))
	router.Use(cors.New(corsConfig(d.AllowedOrigins)))
	router.Use(middleware.BodyLimit(d.MaxBodyBytes))

	if d.EnableMetrics {
		p := ginprometheus.NewPrometheus("gin")
		p.Use(router)
	}

	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", d.Health.Health)
	router.GET("/health/deep", d.Health.DeepHealth)

	if d.UploadDir != "" {
		router.Static("/uploads", d.UploadDir)
	}

	api := router.Group("/api")
	if d.Limiter != nil {
		api.Use(middleware.RateLimit(d.Limiter, d.Logger))
	}
	{
		api.POST("/generate", d.Generation.Generate)
		api.POST("/enhance-prompt", d.Generation.EnhancePrompt)
		api.POST("/download", d.Project.Download)
		api.POST("/deploy-netlify", d.Project.DeployNetlify)
		api.POST("/upload", d.Upload.Upload)
	}

	router.NoRoute(middleware.NoRoute)
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) > 0 {
		cfg.AllowOrigins = origins
	} else {
		cfg.AllowAllOrigins = true
	}
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", middleware.RequestIDHeader}
	cfg.ExposeHeaders = []string{middleware.RequestIDHeader, "Content-Disposition", "X-RateLimit-Remaining"}
	cfg.MaxAge = 12 * time.Hour
	return cfg
}
