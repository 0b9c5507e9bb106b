// Package httpapi exposes graph building and cache management over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/depgraph/internal/core/domain"
	"go.trai.ch/depgraph/internal/core/ports"
	"go.trai.ch/zerr"
)

// Service is the application surface served over HTTP.
type Service interface {
	Graph(ctx context.Context, q domain.GraphQuery) (*domain.Graph, error)
	CacheStats(ctx context.Context) (domain.CacheStats, error)
	ClearCache(ctx context.Context, expiredOnly bool) (int, error)
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ClearResponse reports how many cache entries were removed.
type ClearResponse struct {
	Deleted int `json:"deleted"`
}

// Handlers holds the HTTP handlers.
type Handlers struct {
	svc    Service
	logger ports.Logger
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(svc Service, log ports.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	h := &Handlers{svc: svc, logger: log}
	RegisterRoutes(router, h)
	return router
}

// RegisterRoutes wires the handlers into a router.
func RegisterRoutes(r gin.IRouter, h *Handlers) {
	r.GET("/healthz", h.HandleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/search", h.HandleSearch)
		api.GET("/cache/stats", h.HandleCacheStats)
		api.POST("/cache/clear", h.HandleCacheClear)
	}
}

// HandleHealth handles GET /healthz.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandleSearch handles GET /api/search.
//
// Query parameters: project, text, statuses (comma separated), jql, highlight_jql,
// max_results (1..500), child_as_blocking, show_dependency_tree, no_cache.
func (h *Handlers) HandleSearch(c *gin.Context) {
	q := domain.GraphQuery{
		Project:      c.Query("project"),
		Text:         c.Query("text"),
		Statuses:     domain.SplitStatuses(c.Query("statuses")),
		JQL:          c.Query("jql"),
		HighlightJQL: c.Query("highlight_jql"),
	}

	var err error
	if raw, ok := c.GetQuery("max_results"); ok {
		// Zero means "use the default" downstream, so it must be rejected here.
		if q.MaxResults, err = strconv.Atoi(strings.TrimSpace(raw)); err != nil || q.MaxResults < 1 {
			h.badRequest(c, "INVALID_MAX_RESULTS", zerr.With(domain.ErrInvalidMaxResults, "max_results", raw))
			return
		}
	}
	if q.IncludeChildren, err = boolParam(c, "child_as_blocking"); err != nil {
		h.badRequest(c, "INVALID_PARAMETER", err)
		return
	}
	if q.FullTree, err = boolParam(c, "show_dependency_tree"); err != nil {
		h.badRequest(c, "INVALID_PARAMETER", err)
		return
	}
	if q.NoCache, err = boolParam(c, "no_cache"); err != nil {
		h.badRequest(c, "INVALID_PARAMETER", err)
		return
	}

	g, err := h.svc.Graph(c.Request.Context(), q)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidMaxResults):
			h.badRequest(c, "INVALID_MAX_RESULTS", err)
		case errors.Is(err, domain.ErrEmptyQuery):
			h.badRequest(c, "EMPTY_QUERY", err)
		case errors.Is(err, domain.ErrTrackerNotConfigured):
			h.fail(c, http.StatusServiceUnavailable, "TRACKER_NOT_CONFIGURED", err)
		default:
			h.fail(c, http.StatusInternalServerError, "SEARCH_FAILED", err)
		}
		return
	}

	c.JSON(http.StatusOK, g)
}

// HandleCacheStats handles GET /api/cache/stats.
func (h *Handlers) HandleCacheStats(c *gin.Context) {
	stats, err := h.svc.CacheStats(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "CACHE_STATS_FAILED", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// HandleCacheClear handles POST /api/cache/clear. With expired=true only expired
// entries are removed.
func (h *Handlers) HandleCacheClear(c *gin.Context) {
	expiredOnly, err := boolParam(c, "expired")
	if err != nil {
		h.badRequest(c, "INVALID_PARAMETER", err)
		return
	}

	deleted, err := h.svc.ClearCache(c.Request.Context(), expiredOnly)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "CACHE_CLEAR_FAILED", err)
		return
	}
	c.JSON(http.StatusOK, ClearResponse{Deleted: deleted})
}

func (h *Handlers) badRequest(c *gin.Context, code string, err error) {
	h.fail(c, http.StatusBadRequest, code, err)
}

func (h *Handlers) fail(c *gin.Context, status int, code string, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.Error(err)
	}
	c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
}

// boolParam parses an optional boolean query parameter.
func boolParam(c *gin.Context, name string) (bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, zerr.With(zerr.With(domain.ErrInvalidParameter, "param", name), "value", raw)
	}
	return v, nil
}
