// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the browser front end. Every request carries the
// profile name and brief inputs it needs; the server keeps no session
// state, and a generated brief is returned as a .docx download in the
// response to the request that produced it.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/content-brief/internal/profile"
	"github.com/pdiddy/content-brief/internal/provider"
	"github.com/pdiddy/content-brief/pkg/types"
)

//go:embed templates/*.html
var templateFS embed.FS

// BriefGenerator produces a brief record.
type BriefGenerator interface {
	Generate(ctx context.Context, req types.BriefRequest) (*types.BriefRecord, error)
}

// Exporter renders a record as document bytes.
type Exporter interface {
	Bytes(rec *types.BriefRecord) ([]byte, error)
}

// Config wires the server to its collaborators.
type Config struct {
	Store        profile.Store
	Providers    []provider.Kind
	NewGenerator func(kind provider.Kind) (BriefGenerator, error)
	Exporter     Exporter

	// OnExported, if set, receives every record served as a download.
	OnExported func(rec *types.BriefRecord) error
}

// Server is the web UI.
type Server struct {
	cfg    Config
	router *gin.Engine
}

// New builds the router with all routes registered.
func New(cfg Config) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.SetHTMLTemplate(template.Must(template.New("").ParseFS(templateFS, "templates/*.html")))

	s := &Server{cfg: cfg, router: router}

	router.GET("/", s.index)
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/api/providers", s.providers)

	router.POST("/profiles", s.createProfile)
	router.GET("/profiles/:name", s.showProfile)
	router.POST("/profiles/:name/update", s.updateProfile)
	router.POST("/profiles/:name/delete", s.deleteProfile)

	router.POST("/briefs", s.createBrief)

	return s
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("web UI listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		slog.Info("web UI shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// requestLogger logs one structured line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}
