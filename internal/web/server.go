// Package web gin server
package web

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/leducanh112/Twitter-API/internal/web/twitter/controller"
	"github.com/leducanh112/Twitter-API/library/auth"
	"github.com/leducanh112/Twitter-API/library/log"
	"github.com/leducanh112/Twitter-API/library/metrics"
	"github.com/leducanh112/Twitter-API/library/throttle"
)

// Options dependencies of the http server
type Options struct {
	Tweets *controller.Tweets
	Auth   *auth.Auth
	// Throttle limit write requests, nil disables throttling
	Throttle *throttle.Throttle
	// CORSDomains allowed origin domains, subdomains included
	CORSDomains []string
}

// NewServer build gin engine with every route registered
func NewServer(opt *Options) *gin.Engine {
	server := gin.New()
	server.Use(
		gin.Recovery(),
		gmw.NewLoggerMiddleware(
			gmw.WithLogger(log.Logger.Named("gin")),
		),
		metrics.Middleware(),
		newCORSMiddleware(opt.CORSDomains),
	)

	status := newStatusHandler()
	server.GET("/health", status)
	server.HEAD("/health", status)
	server.OPTIONS("/health", status)
	server.GET("/metrics", gin.WrapH(metrics.Handler()))

	routes := controller.Routes{
		Optional: opt.Auth.Optional(),
		Required: opt.Auth.Required(),
	}
	if opt.Throttle != nil {
		routes.Throttle = opt.Throttle.Middleware(throttleKey)
	}
	opt.Tweets.RegisterRoutes(server, routes)

	return server
}

// RunServer serve until ctx is done
func RunServer(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Logger.Info("listening on http", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "http server exit")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown http server")
	}

	log.Logger.Info("http server stopped")
	return nil
}

// throttleKey throttle by requester, fallback to client ip
func throttleKey(c *gin.Context) string {
	if uid := auth.GetUserID(c); uid != nil {
		return "user:" + uid.Hex()
	}

	return "ip:" + c.ClientIP()
}

func newStatusHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("Allow", "GET, HEAD, OPTIONS")
		switch ctx.Request.Method {
		case http.MethodGet:
			ctx.String(http.StatusOK, "ok")
		default:
			ctx.Status(http.StatusOK)
		}
	}
}

// isAllowedOrigin origin host is one of domains or their subdomain
func isAllowedOrigin(origin string, domains []string) bool {
	parsed, err := url.Parse(strings.TrimSpace(origin))
	if err != nil {
		return false
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return false
	}

	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" && (host == d || strings.HasSuffix(host, "."+d)) {
			return true
		}
	}

	return false
}

func newCORSMiddleware(domains []string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		origin := ctx.Request.Header.Get("Origin")
		allowed := origin != "" && isAllowedOrigin(origin, domains)

		if allowed {
			ctx.Header("Access-Control-Allow-Origin", origin)
			ctx.Header("Access-Control-Allow-Credentials", "true")
			ctx.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS, HEAD")
			ctx.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, Origin, X-Requested-With")
			ctx.Header("Access-Control-Max-Age", "86400")
			ctx.Header("Vary", "Origin")

			if ctx.Request.Method == http.MethodOptions {
				ctx.AbortWithStatus(http.StatusNoContent)
				return
			}
		} else if origin != "" && ctx.Request.Method == http.MethodOptions {
			// deny preflight from disallowed origins
			ctx.AbortWithStatus(http.StatusForbidden)
			return
		}

		ctx.Next()
	}
}
