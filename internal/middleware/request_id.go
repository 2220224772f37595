package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"

	navigationKey ctxKey = "navigation_id"
)

// NavigationID identifica una navegación de punta a punta: se reutiliza el
// X-Request-ID entrante o se genera uno, y se reenvía al API.
func NavigationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), navigationKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetNavigationID(ctx context.Context) string {
	v, _ := ctx.Value(navigationKey).(string)
	return v
}

// OutboundHeaders arma los headers a propagar hacia el API.
func OutboundHeaders(ctx context.Context) map[string]string {
	h := map[string]string{}
	if id := GetNavigationID(ctx); id != "" {
		h[RequestIDHeader] = id
	}
	if token, ok := GetToken(ctx); ok {
		h["Authorization"] = "Bearer " + token
	}
	return h
}
