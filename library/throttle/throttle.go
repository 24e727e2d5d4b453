// Package throttle limits write requests, both in total and per user
package throttle

import (
	"net/http"
	"sync"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// MsgTooManyRequests response message when throttled
const MsgTooManyRequests = "Too many requests"

// Config configuration for Throttle
type Config struct {
	TotalNPerSec, TotalBurst       int
	EachUserNPerSec, EachUserBurst int
}

// Throttle token buckets of all requests and of each user
type Throttle struct {
	sync.Mutex
	cfg   *Config
	total *rate.Limiter
	users *sync.Map
}

// New create new Throttle
func New(cfg *Config) (*Throttle, error) {
	if cfg.TotalNPerSec <= 0 || cfg.EachUserNPerSec <= 0 {
		return nil, errors.New("NPerSec must bigger than 0")
	}
	if cfg.TotalBurst < cfg.TotalNPerSec || cfg.EachUserBurst < cfg.EachUserNPerSec {
		return nil, errors.New("burst must not be smaller than NPerSec")
	}

	return &Throttle{
		cfg:   cfg,
		total: rate.NewLimiter(rate.Limit(cfg.TotalNPerSec), cfg.TotalBurst),
		users: new(sync.Map),
	}, nil
}

// Allow is key allowed to write now
func (t *Throttle) Allow(key string) bool {
	return t.userLimiter(key).Allow() && t.total.Allow()
}

func (t *Throttle) userLimiter(key string) *rate.Limiter {
	if l, ok := t.users.Load(key); ok {
		return l.(*rate.Limiter)
	}

	t.Lock()
	defer t.Unlock()
	if l, ok := t.users.Load(key); ok {
		return l.(*rate.Limiter)
	}

	l := rate.NewLimiter(rate.Limit(t.cfg.EachUserNPerSec), t.cfg.EachUserBurst)
	t.users.Store(key, l)
	return l
}

// KeyFunc extract throttle key from request
type KeyFunc func(c *gin.Context) string

// Middleware reject throttled requests with 429
func (t *Throttle) Middleware(key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		k := key(c)
		if t.Allow(k) {
			c.Next()
			return
		}

		gmw.GetLogger(c).Warn("deny by throttle",
			zap.String("key", k),
			zap.String("path", c.FullPath()))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": MsgTooManyRequests})
	}
}
