package dashboard

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medtrack/clinic-api/internal/middleware"
	"github.com/medtrack/clinic-api/internal/service/dashboard"
	"github.com/medtrack/clinic-api/pkg/httputil"
)

type Handler struct {
	service dashboard.DashboardService
}

func NewHandler(service dashboard.DashboardService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Matches the server-side cache TTL for the stats rollup.
	r.GET("/dashboard/stats", middleware.CacheControl(60*time.Second), h.GetStats)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, stats)
}
