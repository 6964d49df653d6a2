package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "engage",
		Name:      "http_request_duration_seconds",
		Help:      "Latency of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})

	recommendationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "engage",
		Name:      "offer_recommendations_total",
		Help:      "Scoring requests served, by strategy.",
	}, []string{"strategy"})

	offersSelected = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "engage",
		Name:      "offers_selected",
		Help:      "Offers returned per scoring request, by strategy.",
		Buckets:   []float64{0, 1, 2, 3, 5, 10, 20},
	}, []string{"strategy"})
)

// PrometheusMiddleware records per-route request latency and status.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestDuration.
			WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

func HandleMetrics() gin.HandlerFunc {
	handler := promhttp.Handler()
	return func(c *gin.Context) {
		handler.ServeHTTP(c.Writer, c.Request)
	}
}
