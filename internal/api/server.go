// internal/api/server.go

// Package api exposes the REST surface consumed by the mobile app.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tuali-backend/internal/cache"
	"tuali-backend/internal/chat"
	"tuali-backend/internal/common/config"
	"tuali-backend/internal/common/logger"
	"tuali-backend/internal/models"
)

// ChatService is the chat surface the handlers depend on.
type ChatService interface {
	Chat(ctx context.Context, prompt string) (string, error)
	SummarizeFeedback(ctx context.Context, storeName string, feedback []models.Feedback) (string, error)
}

// DataStore is the repository surface the handlers depend on.
type DataStore interface {
	chat.DataSource
	Login(ctx context.Context, username, password string) (*models.User, error)
	Register(ctx context.Context, data models.NewUser) (*models.User, error)
	CreateCita(ctx context.Context, data models.NewCita) (*models.Cita, error)
	StoreByID(ctx context.Context, id int) (*models.Store, error)
	LeastVisitedStores(ctx context.Context, limit int) ([]models.StoreVisits, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

type Server struct {
	router    *gin.Engine
	server    *http.Server
	chat      ChatService
	store     DataStore
	summaries *cache.SummaryCache
	logger    logger.Logger
}

func NewServer(cfg config.ServerConfig, chatSvc ChatService, store DataStore, summaries *cache.SummaryCache, log logger.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	s := &Server{
		router:    router,
		chat:      chatSvc,
		store:     store,
		summaries: summaries,
		logger:    log.With(map[string]interface{}{"component": "api"}),
	}

	router.Use(RecoveryMiddleware(s.logger))
	router.Use(RequestLogger(s.logger))

	s.registerRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api")
	{
		api.POST("/chat", s.handleChat)

		api.GET("/users", s.handleGetUsers)
		api.GET("/stores", s.handleGetStores)
		api.GET("/feedback", s.handleGetFeedback)
		api.GET("/citas", s.handleGetCitas)
		api.POST("/citas", s.handleCreateCita)

		api.POST("/login", s.handleLogin)
		api.POST("/register", s.handleRegister)

		api.GET("/summarized_feedback/:store_id", s.handleSummarizedFeedback)
		api.GET("/least_visited_stores", s.handleLeastVisitedStores)
		api.GET("/stats", s.handleStats)
	}
}

// Router exposes the gin engine for httptest-driven handler tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) Run() error {
	s.logger.Info("server listening", map[string]interface{}{"addr": s.server.Addr})
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
