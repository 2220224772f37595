package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuthContext_ForwardsBearerToken(t *testing.T) {
	var headers map[string]string
	h := AuthContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = OutboundHeaders(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/owner", nil)
	req.Header.Set("Authorization", "bearer abc.def")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "Bearer abc.def", headers["Authorization"])
}

func TestAuthContext_IgnoresOtherSchemes(t *testing.T) {
	var ok bool
	h := AuthContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok = GetToken(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/owner", nil)
	req.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.False(t, ok)
}

func TestNavigationID_ReusesIncomingHeader(t *testing.T) {
	var got string
	h := NavigationID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetNavigationID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "nav-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "nav-42", got)
	assert.Equal(t, "nav-42", rec.Header().Get(RequestIDHeader))
}

func TestNavigationID_GeneratesWhenMissing(t *testing.T) {
	var got string
	h := NavigationID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetNavigationID(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, got)
	assert.Len(t, got, 36)
}

func TestRequestLogger_NilPassthrough(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	RequestLogger(nil)(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)

	called = false
	rec := httptest.NewRecorder()
	RequestLogger(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
