package main

import (
	"embed"
	"flag"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"streamcompanion/actions"
	"streamcompanion/config"
	"streamcompanion/logging"
	"streamcompanion/metrics"
	"streamcompanion/tracker"
)

//go:embed web/index.html web/assets/*
var webFS embed.FS

var configFile = flag.String("config", config.DefaultConfigFile, "YAML configuration file")

// server backs the browser-source overlay. Every request that touches the
// session holds mu, so the tracker still sees one caller at a time.
type server struct {
	mu      sync.Mutex
	session *tracker.Session
	catalog *actions.Catalog

	registry *prometheus.Registry
	logger   *zerolog.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

type eliminationsRequest struct {
	Delta int `json:"delta"`
}

type actionRequest struct {
	Input string `json:"input"`
}

type overlayStatus struct {
	Enabled         bool     `json:"enabled"`
	Visible         []string `json:"visible"`
	StreamConnected bool     `json:"stream_connected"`
	CurrentVOD      string   `json:"current_vod,omitempty"`
}

type sessionResponse struct {
	Session tracker.Snapshot `json:"session"`
	Overlay overlayStatus    `json:"overlay"`
	Warning string           `json:"warning,omitempty"`
}

type actionInfo struct {
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Category   string `json:"category"`
	NeedsInput bool   `json:"needs_input"`
}

type tabInfo struct {
	Tab     actions.Tab  `json:"tab"`
	Title   string       `json:"title"`
	Actions []actionInfo `json:"actions"`
}

type actionResponse struct {
	Notice  actions.Notice `json:"notice"`
	Overlay overlayStatus  `json:"overlay"`
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile, config.DefaultEnvFile)
	if err != nil {
		logging.GetZeroLogger("companionweb::main", nil).Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.SetLevel(cfg.LogLevel)
	logger := logging.GetZeroLogger("companionweb::main", nil)

	srv := newServer(cfg.StatsFile, logger)
	if strings.ToLower(cfg.LogLevel) != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info().Str("addr", cfg.WebAddr).Str(logging.SessionIDKey, srv.session.ID.String()).Msg("Overlay server listening")
	if err := srv.router().Run(cfg.WebAddr); err != nil {
		logger.Error().Err(err).Msg("Overlay server stopped")
		os.Exit(1)
	}
}

func newServer(statsFile string, logger *zerolog.Logger) *server {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	t := tracker.NewTracker(statsFile, logger)
	t.Observer = m

	catalog := actions.NewCatalog()
	catalog.OnRun = func(tab actions.Tab) { m.ActionRun(string(tab)) }

	return &server{
		session:  t.Open(),
		catalog:  catalog,
		registry: registry,
		logger:   logger,
	}
}

func (s *server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.GET("/session", s.getSession)
	api.POST("/session/victory", s.mutate(func(sess *tracker.Session) (tracker.Snapshot, error) { return sess.Victory() }))
	api.POST("/session/top10", s.mutate(func(sess *tracker.Session) (tracker.Snapshot, error) { return sess.Top10() }))
	api.POST("/session/new-game", s.mutate(func(sess *tracker.Session) (tracker.Snapshot, error) { return sess.NewGame() }))
	api.POST("/session/reset", s.mutate(func(sess *tracker.Session) (tracker.Snapshot, error) { return sess.Reset() }))
	api.POST("/session/eliminations", s.adjustEliminations)
	api.GET("/actions", s.listActions)
	api.POST("/actions/:tab/:name", s.runAction)

	assets, err := fs.Sub(webFS, "web/assets")
	if err != nil {
		s.logger.Fatal().Err(err).Msg("Failed to load assets")
	}
	r.StaticFS("/assets", http.FS(assets))
	r.GET("/", s.handleIndex)
	return r
}

func (s *server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("Request")
	}
}

func (s *server) handleIndex(c *gin.Context) {
	index, err := webFS.ReadFile("web/index.html")
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to load UI"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", index)
}

func (s *server) getSession(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.toSessionResponse(s.session.Snapshot(), nil))
}

// mutate runs op against the session. A save failure still answers 200 with
// the updated session and the failure as a warning.
func (s *server) mutate(op func(*tracker.Session) (tracker.Snapshot, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		snap, err := op(s.session)
		c.JSON(http.StatusOK, s.toSessionResponse(snap, err))
	}
}

func (s *server) adjustEliminations(c *gin.Context) {
	var req eliminationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.toSessionResponse(s.session.AdjustEliminations(req.Delta), nil))
}

func (s *server) listActions(c *gin.Context) {
	var tabs []tabInfo
	for _, tab := range s.catalog.Tabs() {
		info := tabInfo{Tab: tab, Title: tab.Title()}
		for _, action := range s.catalog.Actions(tab) {
			_, needsInput := action.(actions.Prompter)
			info.Actions = append(info.Actions, actionInfo{
				Name:       action.Name(),
				Slug:       actions.Slug(action.Name()),
				Category:   action.Category(),
				NeedsInput: needsInput,
			})
		}
		tabs = append(tabs, info)
	}
	c.JSON(http.StatusOK, gin.H{"tabs": tabs})
}

func (s *server) runAction(c *gin.Context) {
	var req actionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
			return
		}
	}

	tab := actions.Tab(c.Param("tab"))
	notice, err := s.catalog.Run(c.Request.Context(), tab, c.Param("name"), req.Input)
	if errors.Is(err, actions.ErrUnknownAction) {
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		s.logger.Warn().Err(err).Str(logging.TabKey, string(tab)).Str(logging.ActionKey, c.Param("name")).Msg("Action failed")
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, actionResponse{Notice: notice, Overlay: s.overlayStatus()})
}

func (s *server) overlayStatus() overlayStatus {
	return overlayStatus{
		Enabled:         s.catalog.Overlays.Enabled(),
		Visible:         s.catalog.Overlays.Visible(),
		StreamConnected: s.catalog.Stream.Connected(),
		CurrentVOD:      s.catalog.VOD.Current(),
	}
}

func (s *server) toSessionResponse(snap tracker.Snapshot, saveErr error) sessionResponse {
	resp := sessionResponse{Session: snap, Overlay: s.overlayStatus()}
	if saveErr != nil {
		resp.Warning = saveErr.Error()
	}
	return resp
}
