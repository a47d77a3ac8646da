package metrics

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// client side metrics of the remote API calls
var (
	// to prevent metrics from being initialized multiple times
	isMetricsInitVar uint32 = 0

	// number of API calls by endpoint and resulting status code ("error" when no response was obtained)
	APIRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "console_api_requests_total",
		Help: "The total number of remote API calls",
	}, []string{"method", "endpoint", "code"})

	// response times of the remote API
	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "console_api_request_duration_milliseconds",
			Help:    "Remote API response time distributions",
			Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 30000},
		},
		[]string{"method", "endpoint"},
	)

	// size of uploaded bodies (CSV uploads dominate)
	APIRequestSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "console_api_request_size_kilobytes",
			Help:    "Remote API request size distributions",
			Buckets: []float64{1, 10, 100, 500, 1000, 5000, 10000},
		},
		[]string{"method", "endpoint"},
	)
)

func setIsMetricsInit() {
	atomic.StoreUint32(&isMetricsInitVar, 1)
}

func isMetricsInit() bool {
	return atomic.LoadUint32(&isMetricsInitVar) == 1
}

func InitMetrics() {
	if !isMetricsInit() {
		setIsMetricsInit()

		// Metrics have to be registered to be exposed
		prometheus.MustRegister(APIRequestsTotal)
		prometheus.MustRegister(APIRequestDuration)
		prometheus.MustRegister(APIRequestSize)
	}
}

// ObserveCall records a finished call. code is 0 when the call never got a response.
func ObserveCall(method, endpoint string, code int, latency time.Duration, requestBytes int) {
	codeLabel := "error"
	if code > 0 {
		codeLabel = strconv.Itoa(code)
	}
	APIRequestsTotal.WithLabelValues(method, endpoint, codeLabel).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(float64(latency.Milliseconds()))
	if requestBytes > 0 {
		APIRequestSize.WithLabelValues(method, endpoint).Observe(float64(requestBytes) / 1024)
	}
}

// Serve exposes /metrics on listen (blocking)
func Serve(listen string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}
