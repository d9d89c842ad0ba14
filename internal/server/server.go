// Package server serves the dashboard pages over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ariel-frischer/statusboard/internal/content"
	"github.com/ariel-frischer/statusboard/internal/dashboard"
	"github.com/ariel-frischer/statusboard/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ShutdownTimeout bounds the graceful shutdown of Run.
const ShutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	Logger   logging.Logger
	Metrics  *Metrics
	Gatherer prometheus.Gatherer
}

// Server renders dashboard pages.
type Server struct {
	dash     *dashboard.Dashboard
	renderer *Renderer
	log      logging.Logger
	metrics  *Metrics
	gatherer prometheus.Gatherer
	engine   *gin.Engine
}

// New builds the router. Metrics are optional.
func New(dash *dashboard.Dashboard, renderer *Renderer, opts Options) *Server {
	s := &Server{
		dash:     dash,
		renderer: renderer,
		log:      opts.Logger,
		metrics:  opts.Metrics,
		gatherer: opts.Gatherer,
	}
	if s.log == nil {
		s.log = logging.NopLogger{}
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(s.log))
	if s.metrics != nil {
		r.Use(Observe(s.metrics))
	}

	r.GET("/", s.overview)
	r.GET("/roadmap", s.roadmap)
	r.GET("/deliverable/:slug", s.deliverable)
	r.GET("/commits", s.commits)
	r.GET("/issues", s.issues)
	r.GET("/healthz", s.healthz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	r.NoRoute(func(c *gin.Context) { s.notFound(c, "") })
	return r
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("server shutdown: %v", err)
		}
	}()

	s.log.Infof("listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) overview(c *gin.Context) {
	view, err := s.dash.Overview(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, PageOverview, "", view)
}

func (s *Server) roadmap(c *gin.Context) {
	view, err := s.dash.Roadmap(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, PageRoadmap, "Roadmap", view)
}

func (s *Server) deliverable(c *gin.Context) {
	view, err := s.dash.Deliverable(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, content.ErrNotFound) {
		s.notFound(c, "No deliverable named "+c.Param("slug"))
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, PageDeliverable, view.Deliverable.Title(), view)
}

func (s *Server) commits(c *gin.Context) {
	view, err := s.dash.Commits(c.Request.Context(), 0)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, PageCommits, "Commits", view)
}

func (s *Server) issues(c *gin.Context) {
	view, err := s.dash.Issues(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, PageIssues, "Issues", view)
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "project": s.dash.Config().Project})
}

func (s *Server) notFound(c *gin.Context, msg string) {
	s.render(c, http.StatusNotFound, PageNotFound, "Not found", msg)
}

func (s *Server) render(c *gin.Context, code int, name, title string, view any) {
	page := Page{
		Title:   title,
		Project: s.dash.Config().Project,
		Active:  name,
		View:    view,
	}
	c.Status(code)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(c.Writer, name, page); err != nil {
		s.fail(c, err)
	}
}

// fail reports a render or cancellation error. Nothing has been written yet
// because Render buffers its output.
func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	if c.Request.Context().Err() != nil {
		c.AbortWithStatus(499)
		return
	}
	s.log.Errorf("rendering %s: %v", c.Request.URL.Path, err)
	c.AbortWithStatus(http.StatusInternalServerError)
}
