package screens

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"petclinic-web/internal/entity"
	"petclinic-web/internal/middleware"
)

// resolvedKey es una key distinta por tipo de entidad.
type resolvedKey[T any] struct{}

// Resolved devuelve el dato de ruta dejado por el middleware de resolución.
func Resolved[T any](ctx context.Context) (entity.Resolution[T], bool) {
	v, ok := ctx.Value(resolvedKey[T]{}).(entity.Resolution[T])
	return v, ok
}

func withResolved[T any](ctx context.Context, res entity.Resolution[T]) context.Context {
	return context.WithValue(ctx, resolvedKey[T]{}, res)
}

// httpNavigator redirige la navegación actual.
type httpNavigator struct {
	w http.ResponseWriter
	r *http.Request
}

func (n httpNavigator) RedirectTo(_ context.Context, path string) {
	http.Redirect(n.w, n.r, path, http.StatusFound)
}

// resolveMiddleware corre el resolver antes de construir la pantalla.
// - found/new: sigue con la entidad (o nil) en el contexto
// - redirected: el navigator ya escribió el 302, la pantalla no se ejecuta
// - error: se aborta la navegación
func resolveMiddleware[T any](name string, res *entity.Resolver[T], deps Deps) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := deps.logger().With(
				zap.String("entity", name),
				zap.String("navigation_id", middleware.GetNavigationID(r.Context())),
			)

			out, err := res.Resolve(r.Context(), httpNavigator{w: w, r: r}, chi.URLParam(r, "id"))
			if err != nil {
				switch {
				case errors.Is(err, entity.ErrInvalidID):
					deps.Metrics.ObserveResolution(name, "invalid")
					writeError(w, http.StatusBadRequest, "invalid id")
				case errors.Is(err, context.Canceled):
					// navegación cancelada: se descarta el resultado
					deps.Metrics.ObserveResolution(name, "canceled")
					log.Debug("resolution discarded", zap.Error(err))
				case errors.Is(err, context.DeadlineExceeded):
					deps.Metrics.ObserveResolution(name, "error")
					log.Error("resolution timed out", zap.Error(err))
					writeError(w, http.StatusGatewayTimeout, "upstream timeout")
				default:
					deps.Metrics.ObserveResolution(name, "error")
					log.Error("resolution failed", zap.Error(err))
					writeError(w, http.StatusBadGateway, "upstream error")
				}
				return
			}

			deps.Metrics.ObserveResolution(name, out.Outcome.String())

			if out.Outcome == entity.OutcomeRedirected {
				log.Debug("route resolved", zap.Stringer("outcome", out.Outcome), zap.String("redirect", res.NotFoundPath()))
				return
			}
			log.Debug("route resolved", zap.Stringer("outcome", out.Outcome))
			next.ServeHTTP(w, r.WithContext(withResolved(r.Context(), out)))
		})
	}
}
