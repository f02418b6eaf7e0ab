package net

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sooomo/bst/internal/applog"
	"github.com/sooomo/bst/internal/config"
	"golang.org/x/time/rate"
)

type Server struct {
	store           *TreeStore
	engine          *gin.Engine
	httpServer      *http.Server
	shutdownTimeout time.Duration
	logger          zerolog.Logger
}

func NewServer(cfg config.ServerConfig, logger zerolog.Logger) *Server {
	logger = applog.WithScope(logger, "HTTP")

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)
	}

	store := NewTreeStore(cfg.MaxTrees)
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		RequestIdMiddleware(),
		AccessLogMiddleware(logger),
		RateLimitMiddleware(limiter),
	)
	registerRoutes(engine, &treeHandlers{store: store, logger: logger})

	return &Server{
		store:  store,
		engine: engine,
		httpServer: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: cfg.ShutdownTimeout.Duration,
		logger:          logger,
	}
}

func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) Store() *TreeStore { return s.store }

// Run 阻塞直到 ctx 结束或监听失败，ctx 结束后在 shutdownTimeout 内优雅关闭
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("listening")
		errChan <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	s.logger.Info().Msg("shutting down")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errChan; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
