package usecases

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	enrollmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "appraiser_enrollments_total",
		Help: "Enrollment attempts by outcome.",
	}, []string{"outcome"})

	identificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "appraiser_identifications_total",
		Help: "1:N identification attempts by outcome.",
	}, []string{"outcome"})

	identifyDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "appraiser_identify_duration_seconds",
		Help:    "End to end identification latency in seconds.",
		Buckets: prometheus.DefBuckets,
	})

	gallerySkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "appraiser_gallery_skipped_rows_total",
		Help: "Gallery rows skipped because their embedding could not be compared.",
	})

	authorizationChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "appraiser_authorization_checks_total",
		Help: "Authorization checks by status and source.",
	}, []string{"status", "source"})

	legacyMigrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "appraiser_legacy_migrations_total",
		Help: "Mapping rows written from legacy primary tenants.",
	})

	tenantCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "appraiser_tenant_cache_hits_total",
		Help: "Tenant code lookups answered by the LRU cache.",
	})

	tenantCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "appraiser_tenant_cache_misses_total",
		Help: "Tenant code lookups that went to the database.",
	})
)

const (
	outcomeSuccess     = "success"
	outcomeRejected    = "rejected"
	outcomeUnavailable = "unavailable"
	outcomeError       = "error"
	outcomeMatch       = "match"
	outcomeNoMatch     = "no_match"
)
