package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordan-pw/minesweeper/internal/config"
)

func TestWrapOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Wrap(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mark("inner"), mark("outer"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/game?x=1", nil))

	assert.Contains(t, buf.String(), `"status_code":418`)
	assert.Contains(t, buf.String(), `"uri":"/v1/game?x=1"`)
	assert.Contains(t, buf.String(), `"method":"POST"`)
}

func TestCors(t *testing.T) {
	h := Cors([]string{"http://good.test"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Origin", "http://good.test")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, "http://good.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	r.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	h = Cors([]string{"*"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, "http://evil.test", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSession(t *testing.T) {
	j, err := config.NewJWT(config.JwtConfig{TokenLifetime: config.Duration{Duration: time.Hour}})
	require.NoError(t, err)
	token, err := j.Issue("abc")
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	var seen *config.SessionClaims
	mux := http.NewServeMux()
	mux.Handle("GET /game/{id}", Session(logger, j)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			seen, _ = SessionClaimsFrom(r.Context())
		},
	)))

	tests := []struct {
		name   string
		path   string
		auth   string
		cookie string
		status int
	}{
		{"bearer", "/game/abc", "Bearer " + token, "", http.StatusOK},
		{"cookie", "/game/abc", "", token, http.StatusOK},
		{"missing", "/game/abc", "", "", http.StatusUnauthorized},
		{"garbage", "/game/abc", "Bearer nope", "", http.StatusUnauthorized},
		{"other game", "/game/xyz", "Bearer " + token, "", http.StatusUnauthorized},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			seen = nil
			r := httptest.NewRequest(http.MethodGet, test.path, nil)
			if test.auth != "" {
				r.Header.Set("Authorization", test.auth)
			}
			if test.cookie != "" {
				r.AddCookie(&http.Cookie{Name: config.SessionCookie, Value: test.cookie})
			}
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, r)

			assert.Equal(t, test.status, w.Code)
			if test.status == http.StatusOK {
				require.NotNil(t, seen)
				assert.Equal(t, "abc", seen.GameID)
			} else {
				assert.Nil(t, seen)
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}
