// Package metrics defines and registers all custom Prometheus metrics for the
// blog API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at import time and
// are exported through the /metrics endpoint wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "failure" or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ArticlesCreatedTotal counts newly created articles.
var ArticlesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_created_total",
		Help:      "Total number of articles created.",
	},
)

// PasswordResetsTotal counts successful password changes through the
// change-password-by-email endpoint.
var PasswordResetsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password resets applied.",
	},
)

// ImageUploadBytes measures the size of accepted image uploads.
// Label:
//   - kind: "article" or "profile"
var ImageUploadBytes = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "image_upload_bytes",
		Help:      "Size in bytes of accepted image uploads.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 8), // 1KiB .. 16MiB
	},
	[]string{"kind"},
)
