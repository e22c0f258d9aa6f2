// Package server exposes the service as a localhost JSON API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/lumen/internal/logger"
	"github.com/julianstephens/lumen/internal/metrics"
	"github.com/julianstephens/lumen/internal/service"
)

// NewRouter wires every route. m may be nil.
func NewRouter(svc *service.Service, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observe(m))

	h := &handlers{svc: svc}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	api := r.Group("/api")
	{
		api.GET("/habits/stats", h.allHabitStats)
		api.POST("/habits", h.createHabit)
		api.GET("/habits/:id/stats", h.habitStats)
		api.POST("/habits/:id/toggle", h.toggleHabit)
		api.POST("/habits/:id/archive", h.archiveHabit)
		api.POST("/habits/:id/unarchive", h.unarchiveHabit)
		api.DELETE("/habits/:id", h.deleteHabit)

		api.GET("/mood/stats", h.moodStats)
		api.GET("/mood/insights", h.moodInsights)
		api.POST("/mood", h.logMood)
		api.DELETE("/mood/:date", h.deleteMood)

		api.GET("/analytics", h.analytics)
		api.GET("/dashboard", h.dashboard)
		api.GET("/wellness", h.wellness)
		api.GET("/export", h.export)
	}
	return r
}

// Run serves handler on addr until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("server shutting down", "addr", addr)
	return srv.Shutdown(shutdownCtx)
}
