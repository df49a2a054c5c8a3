// Package server exposes the modeling core over REST for the diagram
// frontend: project listing, model CRUD, validation and diagram export.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yoshimomax/sysmlmodeler/pkg/service"
)

// Server holds the state for the REST API server.
type Server struct {
	models *service.ModelService
	log    *zap.Logger
	router *gin.Engine
}

// NewServer creates a new Server instance.
func NewServer(models *service.ModelService, log *zap.Logger) *Server {
	r := gin.Default()
	s := &Server{
		models: models,
		log:    log,
		router: r,
	}
	s.setupRoutes()
	return s
}

// Run starts the server on the specified address.
func (s *Server) Run(addr string) error {
	s.log.Info("starting REST API server", zap.String("addr", addr))
	return s.router.Run(addr)
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/v1/projects", s.handleProjects)
	s.router.GET("/v1/models", s.handleListModels)
	s.router.GET("/v1/model", s.handleGetModel)
	s.router.POST("/v1/model", s.handlePutModel)
	s.router.DELETE("/v1/model", s.handleDeleteModel)
	s.router.POST("/v1/validate", s.handleValidate)
	s.router.GET("/v1/export", s.handleExport)
}

// Health check
func (s *Server) healthCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}
