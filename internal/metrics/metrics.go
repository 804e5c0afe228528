// Package metrics exposes Prometheus counters for the fetch pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the pipeline components report into.
type Recorder interface {
	RecordChannelFetch(source string, ok bool)
	RecordShortsFiltered(source string, count int)
	RecordDurationLookupFailure()
	RecordRelayAttempt(relay string, ok bool)
	RecordCacheLookup(hit bool)
	RecordFetchLatency(source string, d time.Duration)
}

type Collector struct {
	channelFetches  *prometheus.CounterVec
	shortsFiltered  *prometheus.CounterVec
	durationFailure prometheus.Counter
	relayAttempts   *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
	fetchLatency    *prometheus.HistogramVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		channelFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "safetube_channel_fetches_total",
			Help: "Channel fetches by source and outcome.",
		}, []string{"source", "outcome"}),
		shortsFiltered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "safetube_shorts_filtered_total",
			Help: "Videos dropped by the short-form filter.",
		}, []string{"source"}),
		durationFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "safetube_duration_lookup_failures_total",
			Help: "Duration lookups that failed and let a page through unfiltered.",
		}),
		relayAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "safetube_feed_relay_attempts_total",
			Help: "Feed relay attempts by relay and outcome.",
		}, []string{"relay", "outcome"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "safetube_cache_lookups_total",
			Help: "Per-profile cache lookups by result.",
		}, []string{"result"}),
		fetchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "safetube_profile_fetch_seconds",
			Help:    "Latency of a whole-profile fetch.",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
	}

	reg.MustRegister(
		c.channelFetches,
		c.shortsFiltered,
		c.durationFailure,
		c.relayAttempts,
		c.cacheLookups,
		c.fetchLatency,
	)

	return c
}

func (c *Collector) RecordChannelFetch(source string, ok bool) {
	c.channelFetches.WithLabelValues(source, outcome(ok)).Inc()
}

func (c *Collector) RecordShortsFiltered(source string, count int) {
	if count > 0 {
		c.shortsFiltered.WithLabelValues(source).Add(float64(count))
	}
}

func (c *Collector) RecordDurationLookupFailure() {
	c.durationFailure.Inc()
}

func (c *Collector) RecordRelayAttempt(relay string, ok bool) {
	c.relayAttempts.WithLabelValues(relay, outcome(ok)).Inc()
}

func (c *Collector) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.cacheLookups.WithLabelValues(result).Inc()
}

func (c *Collector) RecordFetchLatency(source string, d time.Duration) {
	c.fetchLatency.WithLabelValues(source).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
