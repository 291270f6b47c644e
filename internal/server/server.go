// Package server exposes the daemon's HTTP surface: health, metrics,
// telemetry views and the keyboard/name/pin/gpio control endpoints that
// have no gesture equivalent.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tapware/touchlink/internal/auth"
	"github.com/tapware/touchlink/internal/bridge"
)

const version = "0.3.0"

// Server wraps the gin router around a running bridge.
type Server struct {
	bridge    *bridge.Service
	router    *gin.Engine
	validator auth.Validator
	startedAt time.Time
}

// New builds the router. An empty token leaves the API open, which is
// fine for the localhost default.
func New(b *bridge.Service, token string) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"http://localhost:3000"},
		AllowMethods: []string{"GET", "POST", "DELETE"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))

	s := &Server{bridge: b, router: r, startedAt: time.Now()}
	if token != "" {
		s.validator = auth.StaticToken{Token: token}
	}
	s.registerRoutes()
	return s
}

// requireToken rejects requests missing the shared bearer token.
// Health and metrics stay open for probes and scrapers.
func (s *Server) requireToken(c *gin.Context) {
	if s.validator == nil {
		return
	}
	tok := auth.FromHeader(c.GetHeader("Authorization"))
	if err := s.validator.Validate(tok); err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
}

// Handler exposes the router for tests and custom listeners.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until the listener fails.
func (s *Server) Run(addr string) error { return s.router.Run(addr) }

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.startedAt).String(),
			"service": "touchlink",
			"version": version,
		})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/", s.requireToken)

	api.GET("/link", s.getLink)
	api.GET("/gpio", s.getGpio)
	api.POST("/gpio/refresh", s.postGpioRefresh)
	api.POST("/gpio/led/:channel", s.postLed)
	api.POST("/gpio/relay/:channel", s.postRelay)

	api.POST("/text", s.postText)
	api.POST("/key", s.postKey)
	api.POST("/combo", s.postCombo)
	api.POST("/media", s.postMedia)

	api.POST("/name", s.postName)
	api.POST("/name/refresh", s.postNameRefresh)
	api.POST("/info/refresh", s.postInfoRefresh)

	api.POST("/pin", s.postPin)
	api.DELETE("/pin", s.deletePin)
	api.POST("/pin/verify", s.postPinVerify)
}
