package feed

import (
	"fmt"
	"net/http"
	"time"

	"automix-bot/internal/adapters/metrics"
)

type MetricsRoundTripper struct {
	Proxied http.RoundTripper
}

func NewMetricsRoundTripper(proxied http.RoundTripper) *MetricsRoundTripper {
	if proxied == nil {
		proxied = http.DefaultTransport
	}
	return &MetricsRoundTripper{Proxied: proxied}
}

func (mrt *MetricsRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := mrt.Proxied.RoundTrip(req)
	duration := time.Since(start).Seconds()

	status := "error"
	if err == nil {
		status = fmt.Sprintf("%d", resp.StatusCode)
	}

	metrics.FeedRequestDuration.WithLabelValues(status).Observe(duration)
	metrics.FeedRequests.WithLabelValues(status).Inc()

	return resp, err
}
