package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coblog_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// ProcedureCalls counts RPC procedure invocations by procedure and outcome code.
	ProcedureCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coblog_procedure_calls_total",
		Help: "Total RPC procedure calls by procedure and result code",
	}, []string{"procedure", "code"})

	// ProcedureLatency records RPC procedure latency.
	ProcedureLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "coblog_procedure_latency_seconds",
		Help:    "RPC procedure latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"procedure"})

	// CacheHits counts cache-aside hits and misses by key prefix.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coblog_cache_results_total",
		Help: "Cache-aside lookups by key prefix and result",
	}, []string{"prefix", "result"})
)

// InitMetrics creates the fiberprometheus middleware for the service.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus handler as a Fiber middleware.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
