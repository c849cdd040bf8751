// Package httpapi is the read-only HTTP façade over the five query
// patterns. It holds a single immutable store handle; every request is
// handled independently.
package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"PaperIndexer/internal/domain"
	"PaperIndexer/internal/ports"
)

const defaultLimit = 20

// Server serves GET /papers/... against an injected query executor.
type Server struct {
	queries ports.PaperQueries
	logger  *slog.Logger
	engine  *gin.Engine
}

// New wires routes onto a fresh gin engine.
func New(queries ports.PaperQueries, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	s := &Server{queries: queries, logger: logger, engine: engine}

	engine.Use(s.requestLogger())
	engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		s.logger.Error("handler panic", "path", c.Request.URL.Path, "panic", fmt.Sprint(recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}))

	engine.GET("/papers/recent", s.handleRecent)
	engine.GET("/papers/search", s.handleDateRange)
	engine.GET("/papers/author/*name", s.handleAuthor)
	engine.GET("/papers/keyword/:keyword", s.handleKeyword)
	engine.GET("/papers/:id", s.handlePaperByID)
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return s
}

// Handler exposes the engine for tests and custom servers.
func (s *Server) Handler() http.Handler { return s.engine }

// Run blocks serving on the given address.
func (s *Server) Run(addr string) error {
	s.logger.Info("server start", "addr", addr)
	return s.engine.Run(addr)
}

const logParamsKey = "log_params"

// requestLogger emits one structured line per request: method, path,
// status, duration and whatever pattern parameters the handler recorded.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if params, ok := c.Get(logParamsKey); ok {
			if fields, ok := params.(map[string]any); ok {
				for k, v := range fields {
					args = append(args, k, v)
				}
			}
		}
		s.logger.Info("request", args...)
	}
}

func logParams(c *gin.Context, fields map[string]any) {
	c.Set(logParamsKey, fields)
}

func (s *Server) handleRecent(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing category"})
		return
	}
	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	items, err := s.queries.RecentInCategory(c.Request.Context(), category, limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	logParams(c, map[string]any{"category": category, "limit": limit})
	c.JSON(http.StatusOK, gin.H{"category": category, "papers": nonNil(items), "count": len(items)})
}

func (s *Server) handleAuthor(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("name"), "/")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing author_name"})
		return
	}

	items, err := s.queries.PapersByAuthor(c.Request.Context(), name)
	if err != nil {
		s.fail(c, err)
		return
	}
	logParams(c, map[string]any{"author_name": name})
	c.JSON(http.StatusOK, gin.H{"author_name": name, "papers": nonNil(items), "count": len(items)})
}

func (s *Server) handleKeyword(c *gin.Context) {
	keyword := c.Param("keyword")
	if keyword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing keyword"})
		return
	}
	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	items, err := s.queries.PapersByKeyword(c.Request.Context(), keyword, limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	logParams(c, map[string]any{"keyword": keyword, "limit": limit})
	c.JSON(http.StatusOK, gin.H{"keyword": keyword, "papers": nonNil(items), "count": len(items)})
}

func (s *Server) handleDateRange(c *gin.Context) {
	category := c.Query("category")
	start := c.Query("start")
	end := c.Query("end")
	if category == "" || start == "" || end == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing category/start/end"})
		return
	}

	items, err := s.queries.PapersInDateRange(c.Request.Context(), category, start, end)
	if err != nil {
		s.fail(c, err)
		return
	}
	logParams(c, map[string]any{"category": category, "start": start, "end": end})
	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"start":    start,
		"end":      end,
		"papers":   nonNil(items),
		"count":    len(items),
	})
}

func (s *Server) handlePaperByID(c *gin.Context) {
	arxivID := c.Param("id")
	if arxivID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing arxiv_id"})
		return
	}

	item, err := s.queries.PaperByID(c.Request.Context(), arxivID)
	if err != nil {
		s.fail(c, err)
		return
	}
	if item == nil {
		logParams(c, map[string]any{"arxiv_id": arxivID})
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	logParams(c, map[string]any{"arxiv_id": arxivID})
	c.JSON(http.StatusOK, item)
}

// fail hides internal detail from the response body; the cause goes to the
// log only.
func (s *Server) fail(c *gin.Context, err error) {
	s.logger.Error("query failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
}

func parseLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return defaultLimit, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return 0, false
	}
	return limit, true
}

func nonNil(items []domain.Item) []domain.Item {
	if items == nil {
		return []domain.Item{}
	}
	return items
}
