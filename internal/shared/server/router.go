package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bacash-backend/internal/shared/config"
	"bacash-backend/internal/shared/metrics"
	"bacash-backend/internal/shared/server/middleware"
	"bacash-backend/internal/shared/server/respond"
)

// RouteRegistrar mounts a handler's routes on an API group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config   config.Config
	Uploads  RouteRegistrar
	Events   RouteRegistrar
	Receipts RouteRegistrar
}

// NewRouter constructs the gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigins),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.Uploads != nil {
		deps.Uploads.RegisterRoutes(api)
	}
	if deps.Events != nil {
		deps.Events.RegisterRoutes(api)
	}
	if deps.Receipts != nil {
		deps.Receipts.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
