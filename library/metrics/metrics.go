// Package metrics prometheus collectors of twitter api
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// TweetViews views recorded by kind, guest or user
	TweetViews = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "twitter_tweet_views_total",
		Help: "Total tweet views recorded",
	}, []string{"kind"})
	// FeedDuration latency of assembling paginated views
	FeedDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "twitter_feed_duration_seconds",
		Help:    "Feed assembling duration seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"view"})
	// VisibilityDropped candidates removed by the in-process visibility check
	VisibilityDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "twitter_visibility_dropped_total",
		Help: "Candidates returned by storage but rejected by visibility check",
	}, []string{"view"})
	// HTTPRequests requests served by route and status
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "twitter_http_requests_total",
		Help: "Total http requests",
	}, []string{"route", "status"})
)

func init() {
	prometheus.MustRegister(TweetViews, FeedDuration, VisibilityDropped, HTTPRequests)
}

// ObserveFeed records a feed assembling duration
func ObserveFeed(view string, start time.Time) {
	FeedDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
}

// Middleware counts requests by matched route
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
