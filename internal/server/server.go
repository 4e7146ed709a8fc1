package server

import (
	"log"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"orientinsight/internal/api"
	"orientinsight/internal/config"
	"orientinsight/internal/store"
)

// Server is the HTTP server over the reservation store.
type Server struct {
	router *gin.Engine
	store  *store.Store
}

// NewServer wires up the store and API routes.
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "orientinsight.db")

	sqliteStore, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	s := &Server{
		router: gin.Default(),
		store:  sqliteStore,
	}
	s.setupRoutes(cfg)
	return s
}

func (s *Server) setupRoutes(cfg *config.AppConfig) {
	// CORS for the back-office frontend
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	handler := api.NewHandler(s.store, cfg)
	group := s.router.Group("/api")
	{
		handler.RegisterRoutes(group)
	}
}

// Run starts the server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close releases the store.
func (s *Server) Close() error {
	return s.store.Close()
}

// GetStore exposes the store for tests.
func (s *Server) GetStore() *store.Store {
	return s.store
}
