package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/headsetlab/comfortscan/internal/cache"
	"github.com/headsetlab/comfortscan/internal/model"
)

// Server bundles the router and its response cache.
type Server struct {
	engine *gin.Engine
	addr   string
}

// New builds the API server. cacheTTL bounds how stale a cached
// response may be; the cache is also flushed whenever a refresh
// publishes a new snapshot.
func New(cfg model.ServerConfig, source SnapshotSource, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	responses := cache.NewMemoryCache(cfg.CacheTTL, 10*time.Minute)
	handler := NewHandler(source, logger, func() {
		_ = responses.Clear()
	})

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))
	engine.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	registerRoutes(engine, handler, responses, cfg.CacheTTL)

	return &Server{engine: engine, addr: cfg.Addr}
}

func registerRoutes(engine *gin.Engine, h *Handler, responses cache.Cache, ttl time.Duration) {
	engine.GET("/api/health", h.GetHealth)
	engine.POST("/api/refresh", h.PostRefresh)

	cached := engine.Group("/api", cacheResponses(responses, ttl))
	cached.GET("/stats", h.GetStats)
	cached.GET("/rankings", h.GetRankings)
	cached.GET("/issues", h.GetIssues)
	cached.GET("/issues/by-severity", h.GetIssuesBySeverity)
	cached.GET("/sources", h.GetSources)
	cached.GET("/accessory/:name", h.GetAccessory)
	cached.GET("/accessory-types", h.GetAccessoryTypes)
	cached.GET("/search", h.GetSearch)
}

// Run serves until the listener fails.
func (s *Server) Run() error {
	return s.engine.Run(s.addr)
}

// Engine exposes the router, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

type cachedResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

// cacheResponses serves successful GET responses from the cache, keyed
// by the full request URI so query parameters stay distinct.
func cacheResponses(responses cache.Cache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := cache.Key("response", c.Request.URL.RequestURI())
		if data, found := responses.Get(key); found {
			var cached cachedResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
				c.Abort()
				return
			}
		}

		writer := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		if writer.Status() == http.StatusOK {
			data, err := json.Marshal(cachedResponse{Status: writer.Status(), Body: writer.body.Bytes()})
			if err == nil {
				_ = responses.Set(key, data, ttl)
			}
		}
	}
}
