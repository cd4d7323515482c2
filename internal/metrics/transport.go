package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// instrumentedTransport records outbound request counts and durations.
type instrumentedTransport struct {
	next           http.RoundTripper
	requestCounter metric.Int64Counter
	durationHisto  metric.Float64Histogram
}

// InstrumentTransport wraps next so every outbound request (KMS, DynamoDB) is counted
// and timed with method, host and status_code labels. Transport errors are labeled
// with status_code "error". If the instruments cannot be created next is returned as is.
func InstrumentTransport(next http.RoundTripper, meterProvider metric.MeterProvider, namespace string) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	meter := meterProvider.Meter(namespace)

	requestCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_http_client_requests_total", namespace),
		metric.WithDescription("Total number of outbound HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return next
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_http_client_request_duration_seconds", namespace),
		metric.WithDescription("Outbound HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return next
	}

	return &instrumentedTransport{
		next:           next,
		requestCounter: requestCounter,
		durationHisto:  durationHisto,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *instrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	duration := time.Since(start)

	statusCode := "error"
	if err == nil {
		statusCode = strconv.Itoa(resp.StatusCode)
	}

	attrs := metric.WithAttributes(
		attribute.String("method", req.Method),
		attribute.String("host", req.URL.Host),
		attribute.String("status_code", statusCode),
	)

	t.requestCounter.Add(req.Context(), 1, attrs)
	t.durationHisto.Record(req.Context(), duration.Seconds(), attrs)

	return resp, err
}
