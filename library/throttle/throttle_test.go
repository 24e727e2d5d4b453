package throttle

import (
	"net/http"
	"net/http/httptest"
	"testing"

	gmw "github.com/Laisky/gin-middlewares/v7"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/leducanh112/Twitter-API/library/log"
)

func TestNew(t *testing.T) {
	_, err := New(&Config{TotalNPerSec: 0, TotalBurst: 1, EachUserNPerSec: 1, EachUserBurst: 1})
	require.Error(t, err)

	_, err = New(&Config{TotalNPerSec: 10, TotalBurst: 5, EachUserNPerSec: 1, EachUserBurst: 1})
	require.Error(t, err)

	_, err = New(&Config{TotalNPerSec: 10, TotalBurst: 10, EachUserNPerSec: 1, EachUserBurst: 2})
	require.NoError(t, err)
}

func TestThrottle_Allow(t *testing.T) {
	th, err := New(&Config{TotalNPerSec: 1, TotalBurst: 3, EachUserNPerSec: 1, EachUserBurst: 2})
	require.NoError(t, err)

	require.True(t, th.Allow("alice"))
	require.True(t, th.Allow("alice"))
	require.False(t, th.Allow("alice"), "user burst exhausted")

	require.True(t, th.Allow("bob"))
	require.False(t, th.Allow("carol"), "total burst exhausted")
}

func TestThrottle_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	th, err := New(&Config{TotalNPerSec: 100, TotalBurst: 100, EachUserNPerSec: 1, EachUserBurst: 1})
	require.NoError(t, err)

	router := gin.New()
	router.Use(gmw.NewLoggerMiddleware(gmw.WithLogger(log.Logger.Named("throttle_test"))))
	router.POST("/likes", th.Middleware(func(c *gin.Context) string {
		return c.GetHeader("X-User")
	}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func(user string) int {
		req := httptest.NewRequest(http.MethodPost, "/likes", nil)
		req.Header.Set("X-User", user)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusOK, do("alice"))
	require.Equal(t, http.StatusTooManyRequests, do("alice"))
	require.Equal(t, http.StatusOK, do("bob"))
}
