package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medtrack/clinic-api/internal/handler"
	authhandler "github.com/medtrack/clinic-api/internal/handler/auth"
	doctorhandler "github.com/medtrack/clinic-api/internal/handler/doctor"
	"github.com/medtrack/clinic-api/internal/middleware"
	"github.com/medtrack/clinic-api/pkg/metrics"
)

// Handler registers routes on a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine      *gin.Engine
	auth        *middleware.AuthMiddleware
	authH       *authhandler.Handler
	patientH    Handler
	visitH      Handler
	doctorH     *doctorhandler.Handler
	medicationH Handler
	dashboardH  Handler
	h           *handler.Handler
}

type RouterConfig struct {
	RateLimit      middleware.RateLimiterConfig
	CORSConfig     middleware.CORSConfig
	TimeoutSeconds int
	Metrics        *metrics.Metrics
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH *authhandler.Handler,
	patientH Handler,
	visitH Handler,
	doctorH *doctorhandler.Handler,
	medicationH Handler,
	dashboardH Handler,
	h *handler.Handler,
	config RouterConfig,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	middleware.RegisterValidators()

	engine := gin.New()

	r := &Router{
		engine:      engine,
		auth:        auth,
		authH:       authH,
		patientH:    patientH,
		visitH:      visitH,
		doctorH:     doctorH,
		medicationH: medicationH,
		dashboardH:  dashboardH,
		h:           h,
	}

	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = middleware.DefaultTimeoutConfig().Duration
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(config.Metrics),
		middleware.Timeout(middleware.TimeoutConfig{Duration: timeout}),
		middleware.CORS(config.CORSConfig),
	)

	rateLimiter := middleware.NewRateLimiter(config.RateLimit)
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	r.setupHealthCheck(api)

	// Public routes
	r.authH.RegisterPublicRoutes(api)

	// Protected routes
	protected := api.Group("")
	protected.Use(r.auth.Authenticate())

	r.authH.RegisterProtectedRoutes(protected, r.auth)
	r.patientH.RegisterRoutes(protected)
	r.visitH.RegisterRoutes(protected)
	r.doctorH.RegisterRoutes(protected, r.auth)
	r.medicationH.RegisterRoutes(protected)
	r.dashboardH.RegisterRoutes(protected)
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("/live", r.h.LivenessCheck)
		health.GET("/ready", r.h.ReadinessCheck)
		health.GET("/metrics", r.h.MetricsHandler)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
