package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tradelink_server/utils"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func authedRouter(t *testing.T) (*mux.Router, *http.Request) {
	t.Helper()

	r := mux.NewRouter()
	r.Use(JWTAuth(testSecret))
	r.HandleFunc("/whoami", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(UserID(r.Context()) + ":" + Role(r.Context())))
	}).Methods("GET")

	return r, httptest.NewRequest("GET", "/whoami", nil)
}

func TestJWTAuthValidToken(t *testing.T) {
	router, req := authedRouter(t)

	token, err := utils.GenerateToken(testSecret, "user-1", "tradesman", time.Hour)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1:tradesman", rec.Body.String())
}

func TestJWTAuthMissingHeader(t *testing.T) {
	router, req := authedRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	router, req := authedRouter(t)
	req.Header.Set("Authorization", "Token abc")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthBadToken(t *testing.T) {
	router, req := authedRouter(t)
	req.Header.Set("Authorization", "Bearer garbage")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	router, req := authedRouter(t)

	token, err := utils.GenerateToken("other-secret", "user-1", "client", time.Hour)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
