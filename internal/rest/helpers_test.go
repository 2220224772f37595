package rest_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func httpTestServer(t *testing.T, fn http.HandlerFunc) string {
	t.Helper()
	ts := httptest.NewServer(fn)
	t.Cleanup(ts.Close)
	return ts.URL
}
