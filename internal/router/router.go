package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jwalitptl/reception-gateway/internal/middleware"
	"github.com/jwalitptl/reception-gateway/internal/proxy"
)

// Handler registers its routes on a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	CORSConfig     middleware.CORSConfig
	MetricsPrefix  string
	// Diagnostics toggles the connection status endpoint.
	Diagnostics bool
}

type Router struct {
	engine    *gin.Engine
	proxyH    *proxy.Handler
	scheduleH Handler
	healthH   Handler
	statusH   Handler
	cfg       Config
	metrics   *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

func NewRouter(
	proxyH *proxy.Handler,
	scheduleH Handler,
	healthH Handler,
	statusH Handler,
	cfg Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	metrics := initRouterMetrics(cfg.MetricsPrefix)

	r := &Router{
		engine:    engine,
		proxyH:    proxyH,
		scheduleH: scheduleH,
		healthH:   healthH,
		statusH:   statusH,
		cfg:       cfg,
		metrics:   metrics,
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
	)

	engine.Use(middleware.CORS(cfg.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   cfg.RateLimitRPS,
		Burst: cfg.RateLimitBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	r.healthH.RegisterRoutes(r.engine.Group(""))
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")
	r.scheduleH.RegisterRoutes(api)
	if r.cfg.Diagnostics && r.statusH != nil {
		r.statusH.RegisterRoutes(api)
	}

	// The pass-through proxy owns everything under /api/v1 not claimed
	// above. gin's tree cannot mix a catch-all with sibling routes, so the
	// proxy hangs off NoRoute and enforces the prefix itself.
	r.engine.NoRoute(r.proxyH.Forward)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
}

// Register attaches the router metrics to a prometheus registry.
func (r *Router) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		r.metrics.requestDuration,
		r.metrics.requestTotal,
		r.metrics.errorTotal,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// Proxied requests have no matched route; collapse them into one
		// label to keep cardinality bounded.
		path := c.FullPath()
		if path == "" {
			path = "/api/v1/*upstream"
		}

		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
