package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SkippedLines counts movement lines excluded from aggregation because of
// unresolved project or material references.
var SkippedLines = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "store_ledger_skipped_lines_total",
	Help: "Movement lines excluded from ledger aggregation, by reason.",
}, []string{"reason"})

// HTTPRequests counts handled HTTP requests.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "store_http_requests_total",
	Help: "HTTP requests handled, by method, route and status.",
}, []string{"method", "path", "status"})
