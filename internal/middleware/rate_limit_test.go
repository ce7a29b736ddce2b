package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"lacave_back_end/internal/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) {
	t.Helper()
	srv := miniredis.RunT(t)
	database.Redis = redis.NewClient(&redis.Options{Addr: srv.Addr()})
	database.RedisClient = database.Redis
	t.Cleanup(func() {
		database.Redis = nil
		database.RedisClient = nil
	})
}

func postJSON(t *testing.T, mw gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/", mw, func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestLoginRateLimit_BloqueApresEchecs(t *testing.T) {
	setupRedis(t)

	for i := 0; i < LoginMaxAttempts; i++ {
		RecordFailedLogin("jean@example.com")
	}

	w := postJSON(t, LoginRateLimit(), `{"email":"jean@example.com","password":"x"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Le cooldown est posé : la tentative suivante reste bloquée
	w = postJSON(t, LoginRateLimit(), `{"email":"jean@example.com","password":"x"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Un autre email n'est pas affecté
	w = postJSON(t, LoginRateLimit(), `{"email":"marie@example.com","password":"x"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginRateLimit_RemiseAZero(t *testing.T) {
	setupRedis(t)

	RecordFailedLogin("jean@example.com")
	RecordFailedLogin("jean@example.com")

	w := postJSON(t, LoginRateLimit(), `{"email":"jean@example.com","password":"x"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	ClearLoginAttempts("jean@example.com")
	w = postJSON(t, LoginRateLimit(), `{"email":"jean@example.com","password":"x"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginRateLimit_PreserveLeBody(t *testing.T) {
	setupRedis(t)
	gin.SetMode(gin.TestMode)

	var got struct {
		Email string `json:"email"`
	}
	r := gin.New()
	r.POST("/", LoginRateLimit(), func(c *gin.Context) {
		require.NoError(t, c.ShouldBindJSON(&got))
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"email":"jean@example.com","password":"x"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jean@example.com", got.Email)
}

func TestRegisterRateLimit(t *testing.T) {
	setupRedis(t)

	for i := 0; i < RegisterMaxAttempts; i++ {
		w := postJSON(t, RegisterRateLimit(), `{"email":"jean@example.com","password":"x"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := postJSON(t, RegisterRateLimit(), `{"email":"jean@example.com","password":"x"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Chaque email a son propre compteur
	w = postJSON(t, RegisterRateLimit(), `{"email":"marie@example.com","password":"x"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterRateLimit_SansEmail(t *testing.T) {
	setupRedis(t)

	// Corps illisible : on laisse passer, le handler validera lui-même
	w := postJSON(t, RegisterRateLimit(), `pas-du-json`)
	assert.Equal(t, http.StatusOK, w.Code)
}
