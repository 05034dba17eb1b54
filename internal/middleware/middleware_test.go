package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/javajoker/delivery-storefront/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSession(t *testing.T) {
	var seen string
	r := gin.New()
	r.Use(Session())
	r.GET("/", func(c *gin.Context) {
		seen = c.GetString(SessionContextKey)
		c.Status(http.StatusOK)
	})

	w := serve(r, nil)
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(SessionHeader))

	existing := uuid.NewString()
	w = serve(r, map[string]string{SessionHeader: existing})
	assert.Equal(t, existing, seen)
	assert.Equal(t, existing, w.Header().Get(SessionHeader))

	serve(r, map[string]string{SessionHeader: "../../etc/passwd"})
	assert.NotEqual(t, "../../etc/passwd", seen, "malformed ids are replaced")
}

func TestI18nMiddleware(t *testing.T) {
	var lang string
	r := gin.New()
	r.Use(I18nMiddleware([]string{"pt_BR", "en"}))
	r.GET("/", func(c *gin.Context) {
		lang = c.GetString("lang")
		c.Status(http.StatusOK)
	})

	serve(r, nil)
	assert.Equal(t, "pt_BR", lang)

	serve(r, map[string]string{"Accept-Language": "en-US,en;q=0.9"})
	assert.Equal(t, "en", lang)

	serve(r, map[string]string{"Accept-Language": "pt-BR,pt;q=0.9,en;q=0.8"})
	assert.Equal(t, "pt_BR", lang)

	serve(r, map[string]string{"Accept-Language": ";;;"})
	assert.Equal(t, "pt_BR", lang)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(0.001), 2)
	defer rl.Stop()

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, nil).Code)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS(config.CORSConfig{AllowedOrigins: []string{"https://loja.example"}}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, map[string]string{"Origin": "https://loja.example"})
	assert.Equal(t, "https://loja.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, map[string]string{"Origin": "https://evil.example"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
