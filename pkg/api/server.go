// Package api exposes the matching engine over HTTP for the surrounding
// scheduling service. Handlers are thin: all semantics live in the services
// layer.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dkellner/blockmatch/pkg/db"
)

// Store combines the database operations the API needs
type Store interface {
	GetUnassignedOccurrences(ctx context.Context) ([]db.Occurrence, error)
	GetDriverAssignments(ctx context.Context, driverID string) ([]db.Occurrence, error)
	GetProfile(ctx context.Context, driverID string) (*db.Profile, error)
	GetProfiles(ctx context.Context) ([]db.Profile, error)
}

// Server holds the HTTP handler dependencies
type Server struct {
	database Store
	logger   *zap.Logger
}

// NewServer creates an API server over the given store
func NewServer(database Store, logger *zap.Logger) *Server {
	return &Server{database: database, logger: logger}
}

// Router builds the gin engine with all routes registered
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.POST("/drivers/:driverID/match", s.handleMatchDriver)
	v1.GET("/coverage", s.handleCoverage)
	v1.GET("/strategies", s.handleStrategies)

	return router
}

// Run starts the HTTP server on the given address
func (s *Server) Run(addr string) error {
	s.logger.Info("Starting API server", zap.String("addr", addr))
	return s.Router().Run(addr)
}
