package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shebao/internal/api"
	"shebao/internal/config"
	"shebao/internal/logging"
	"shebao/internal/store"
)

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	api    *api.Handler
	logger *zap.Logger
	http   *http.Server
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig, repo store.Repository, logger *zap.Logger) *Server {
	logger = logging.OrNop(logger)
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router: gin.New(),
		api: api.NewHandler(repo, api.Options{
			DefaultCity:    cfg.Business.DefaultCity,
			MaxUploadBytes: cfg.MaxUploadBytes(),
			Logger:         logger.Named("api"),
		}),
		logger: logger,
	}
	s.router.MaxMultipartMemory = cfg.MaxUploadBytes()
	s.http = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes 设置中间件与路由
func (s *Server) setupRoutes() {
	s.router.Use(requestID(), accessLog(s.logger.Named("http")), recovery(s.logger))

	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, "+RequestIDHeader)
		c.Header("Access-Control-Expose-Headers", "Content-Disposition, "+RequestIDHeader)
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "接口不存在"})
	})
}

// Handler 返回 http.Handler（用于测试）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 监听 addr 并阻塞直到 Shutdown
func (s *Server) Run(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve 在给定 listener 上提供服务，Shutdown 后返回 nil（Shutdown 先于 Serve 时立即返回）
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("http server listening", zap.String("addr", ln.Addr().String()))
	if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 优雅关闭：停止接收新请求并等待进行中的请求完成
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
