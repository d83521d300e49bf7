// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"ojoto/internal/http/handlers"
	"ojoto/internal/http/middleware"
	"ojoto/internal/infra"
	"ojoto/internal/logging"
	"ojoto/internal/modules/contact"
	"ojoto/internal/modules/pricing"
	"ojoto/internal/modules/trip"
	"ojoto/internal/modules/user"
)

type ServerDeps struct {
	Trips    *trip.Service
	Pricing  *pricing.Calculator
	Contact  *contact.Service
	Verifier infra.TokenVerifier
	Logger   *logging.Logger

	// Users is nil when identities come from an external provider.
	Users       *user.Service
	CORSOrigins []string
	// Health checks backing services; nil means always healthy.
	Health func(context.Context) error
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	return &Server{deps: deps}
}

func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(s.deps.Logger), middleware.Recovery())
	if len(s.deps.CORSOrigins) > 0 {
		r.Use(middleware.CORS(s.deps.CORSOrigins))
	}

	r.GET("/health", s.health)

	api := r.Group("/api")
	auth := middleware.Auth(s.deps.Verifier)

	if s.deps.Users != nil {
		ah := handlers.NewAuthHandler(s.deps.Users)
		api.POST("/auth/register", ah.Register)
		api.POST("/auth/login", ah.Login)
		api.GET("/auth/profile", auth, ah.Profile)
		api.PUT("/auth/profile", auth, ah.UpdateProfile)
	}

	th := handlers.NewTripHandler(s.deps.Trips)
	trips := api.Group("/trips", auth)
	trips.POST("", th.Create)
	trips.GET("", th.List)
	trips.GET("/:id", th.Get)
	trips.PUT("/:id", th.Update)
	trips.PATCH("/:id", th.Update)
	trips.DELETE("/:id", th.Delete)

	api.GET("/fares/quote", handlers.NewFareHandler(s.deps.Pricing).Quote)
	api.POST("/contact", handlers.NewContactHandler(s.deps.Contact).Submit)

	return r
}

func (s *Server) health(c *gin.Context) {
	if s.deps.Health != nil {
		if err := s.deps.Health(c.Request.Context()); err != nil {
			logging.FromContext(c.Request.Context()).WithError(err).Warn("health check failed")
			c.String(http.StatusServiceUnavailable, "UNAVAILABLE")
			return
		}
	}
	c.String(http.StatusOK, "OK")
}
