package monitor

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const unmatchedPath = "unmatched"

var (
	// HTTPRequestsTotal 按路由模板统计请求数
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "presale",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests handled by the presale server.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration confirm-payment 包含链上确认等待，桶上限放宽到 60s
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "presale",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 15, 30, 60},
		},
		[]string{"method", "path"},
	)

	// HTTPInFlight 正在处理的请求数
	HTTPInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "presale",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "HTTP requests currently being served.",
	})

	registerOnce sync.Once
)

// Init 注册监控指标 (可重复调用)
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(HTTPRequestsTotal, HTTPRequestDuration, HTTPInFlight)
		registerBusinessMetrics(prometheus.DefaultRegisterer)
	})
}

// PrometheusMiddleware 记录请求量、耗时与并发数
// 未匹配的路由 (CORS 预检、404) 统一记为 unmatched，避免任意路径撑爆标签基数
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		HTTPInFlight.Inc()
		defer HTTPInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = unmatchedPath
		}
		status := strconv.Itoa(c.Writer.Status())
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
