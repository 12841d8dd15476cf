// Package http exposes the small operational surface of the bot: a health
// probe and the Prometheus metrics endpoint. The user-facing transport is
// the Discord gateway; nothing here serves end users.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// NewRouter builds the ops router: GET /healthz and GET /metrics.
func NewRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	// The metrics exposition is large and highly repetitive text.
	r.Use(gin.Recovery(), gzip.Gzip(gzip.DefaultCompression), accessLog())

	start := time.Now()
	r.GET("/healthz", func(c *gin.Context) {
		status := http.StatusOK
		dbState := "ok"
		if sqlDB, err := db.DB(); err != nil {
			status, dbState = http.StatusServiceUnavailable, "error"
		} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
			status, dbState = http.StatusServiceUnavailable, "error"
		}
		c.JSON(status, gin.H{
			"status": http.StatusText(status),
			"uptime": time.Since(start).Round(time.Second).String(),
			"db":     dbState,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

// accessLog writes one structured line per request. The surface is two
// endpoints scraped by machines, so a compact log is plenty.
func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		startedAt := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(startedAt)).
			Msg("ops request")
	}
}

// Serve runs the ops server until ctx is cancelled, then shuts it down
// gracefully. Startup failures are logged, not fatal: losing /metrics
// should not take the bot down.
func Serve(ctx context.Context, port string, handler http.Handler) {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Str("port", port).Msg("ops server failed")
	}
}
