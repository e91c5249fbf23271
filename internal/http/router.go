package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/admitpath-backend/internal/http/handlers"
	httpMW "github.com/yungbote/admitpath-backend/internal/http/middleware"
	"github.com/yungbote/admitpath-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler      *httpH.HealthHandler
	UserHandler        *httpH.UserHandler
	ProgressionHandler *httpH.ProgressionHandler
	RealtimeHandler    *httpH.RealtimeHandler

	ServiceName string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "admitpath"
	}
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.PUT("/me/baseline", cfg.UserHandler.UpdateBaseline)
		}

		if cfg.ProgressionHandler != nil {
			protected.GET("/progression", cfg.ProgressionHandler.GetOverview)
			protected.GET("/progression/catalog", cfg.ProgressionHandler.GetCatalog)
			protected.POST("/progression/catalog/preview", cfg.ProgressionHandler.PreviewCatalog)
			protected.GET("/progression/:phase/submissions", cfg.ProgressionHandler.GetSubmissions)
			protected.POST("/progression/submissions", cfg.ProgressionHandler.Submit)
			protected.GET("/submissions/:id", cfg.ProgressionHandler.GetSubmission)
		}

		if cfg.RealtimeHandler != nil {
			protected.GET("/events/stream", cfg.RealtimeHandler.Stream)
		}
	}

	return r
}
