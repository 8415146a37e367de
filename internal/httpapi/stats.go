package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mlvisiotrack/internal/stats"
)

const dashboardCacheKey = "stats:dashboard"

func (s *Server) handleDashboardStats(c *gin.Context) {
	ctx := c.Request.Context()

	var cached stats.Dashboard
	if s.deps.Cache.GetJSON(ctx, dashboardCacheKey, &cached) {
		respondData(c, cached)
		return
	}

	dash, err := s.deps.Stats.Dashboard(ctx)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch dashboard stats: "+err.Error())
		return
	}
	s.deps.Cache.SetJSON(ctx, dashboardCacheKey, dash, s.cfg.StatsCacheTTL)
	respondData(c, dash)
}
