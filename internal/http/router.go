package http

import (
	"github.com/gin-gonic/gin"

	"github.com/gabriel-rosch/fibershare-sub001/internal/config"
)

type Server struct {
	router  *gin.Engine
	handler *Handler
	cfg     *config.Config
}

func NewServer(cfg *config.Config, handler *Handler) *Server {
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	s := &Server{
		router:  router,
		handler: handler,
		cfg:     cfg,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "port-sharing-service",
		})
	})

	// Operator API - requires JWT authentication
	v1 := s.router.Group("/api/v1")
	v1.Use(JWTAuthMiddleware(s.cfg.JWT.SecretKey))
	{
		// Distribution boxes
		v1.POST("/boxes", s.handler.CreateBox)
		v1.GET("/boxes", s.handler.ListBoxes)
		v1.GET("/boxes/:id", s.handler.GetBox)
		v1.GET("/boxes/:id/ports", s.handler.ListPorts)

		// Ports
		v1.GET("/ports/:id", s.handler.GetPort)
		v1.PUT("/ports/:id/price", s.handler.SetPortPrice)
		v1.PUT("/ports/:id/maintenance", s.handler.SetPortMaintenance)

		// Rental orders
		v1.POST("/orders", s.handler.CreateOrder)
		v1.GET("/orders", s.handler.ListOrders)
		v1.GET("/orders/:id", s.handler.GetOrder)
		v1.POST("/orders/:id/decision", s.handler.DecideOrder)
		v1.POST("/orders/:id/sign", s.handler.SignContract)
		v1.POST("/orders/:id/schedule", s.handler.ScheduleInstallation)
		v1.POST("/orders/:id/advance", s.handler.AdvanceInstallation)
		v1.POST("/orders/:id/cancel", s.handler.CancelOrder)
		v1.POST("/orders/:id/notes", s.handler.AddOrderNote)
	}

	// Internal API - called by sibling services
	internal := s.router.Group("/api/internal")
	internal.Use(InternalAuthMiddleware(s.cfg.InternalSecret))
	{
		internal.GET("/orders/:id", s.handler.GetOrderInternal)
	}
}

func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
