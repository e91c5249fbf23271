package app

import (
	httpH "github.com/yungbote/admitpath-backend/internal/http/handlers"
	httpMW "github.com/yungbote/admitpath-backend/internal/http/middleware"
	"github.com/yungbote/admitpath-backend/internal/pkg/logger"
	"github.com/yungbote/admitpath-backend/internal/realtime"
)

type Handlers struct {
	Health      *httpH.HealthHandler
	User        *httpH.UserHandler
	Progression *httpH.ProgressionHandler
	Realtime    *httpH.RealtimeHandler
}

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireHandlers(log *logger.Logger, serviceset Services, hub *realtime.Hub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(),
		User:        httpH.NewUserHandler(serviceset.User),
		Progression: httpH.NewProgressionHandler(serviceset.Progression),
		Realtime:    httpH.NewRealtimeHandler(log, hub),
	}
}

func wireMiddleware(log *logger.Logger, cfg Config) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, cfg.JWTSecretKey),
	}
}
