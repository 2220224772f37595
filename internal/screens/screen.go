package screens

import (
	"context"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"petclinic-web/internal/entity"
	"petclinic-web/internal/platform/metrics"
)

const DefaultPageSize = 20

// DataSource es lo que una pantalla necesita del colaborador de datos.
// rest.Client[T] lo implementa.
type DataSource[T entity.Identifiable] interface {
	entity.Finder[T]
	Query(ctx context.Context, req entity.PageRequest) (entity.Page[T], error)
	Search(ctx context.Context, req entity.PageRequest) (entity.Page[T], error)
	Create(ctx context.Context, e T) (T, error)
	Update(ctx context.Context, e T) (T, error)
	PartialUpdate(ctx context.Context, e T) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Screen describe las pantallas CRUD de una entidad.
type Screen[T entity.Identifiable] struct {
	Name  string // segmento de ruta: "owner", "pet-type", ...
	Title string // "Owners"
	Data  DataSource[T]

	// Opcionales.
	Validate func(T) error
	Options  func(ctx context.Context, current *T) (any, error)
}

// Deps es lo compartido por todas las pantallas.
type Deps struct {
	Logger       *zap.Logger
	Metrics      *metrics.Metrics
	NotFoundPath string
	PageSize     int
}

func (d Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

func (d Deps) pageSize() int {
	if d.PageSize <= 0 {
		return DefaultPageSize
	}
	return d.PageSize
}

func (d Deps) notFoundPath() string {
	if p := strings.TrimSpace(d.NotFoundPath); p != "" {
		return p
	}
	return entity.DefaultNotFoundPath
}

// Mount registra las rutas de la entidad bajo /<Name>:
//
//	GET  /             listado paginado
//	GET  /new          formulario de alta      (resolver: nil)
//	POST /new          guardar alta
//	GET  /{id}/view    detalle                 (resolver)
//	GET  /{id}/edit    formulario de edición   (resolver)
//	POST /{id}/edit    guardar (PUT)
//	PATCH /{id}/edit   guardar parcial (PATCH)
//	GET  /{id}/delete  confirmación de borrado (resolver)
//	POST /{id}/delete  borrar
func Mount[T entity.Identifiable](r chi.Router, s Screen[T], deps Deps) {
	h := &handlers[T]{screen: s, deps: deps}
	resolver := entity.NewResolver[T](s.Data, entity.WithNotFoundPath(deps.notFoundPath()))
	resolve := resolveMiddleware(s.Name, resolver, deps)

	r.Route("/"+s.Name, func(sr chi.Router) {
		sr.Get("/", h.list)

		sr.With(resolve).Get("/new", h.edit)
		sr.Post("/new", h.create)

		sr.Route("/{id}", func(ir chi.Router) {
			ir.With(resolve).Get("/view", h.detail)
			ir.With(resolve).Get("/edit", h.edit)
			ir.Post("/edit", h.update)
			ir.Patch("/edit", h.partialUpdate)
			ir.With(resolve).Get("/delete", h.confirmDelete)
			ir.Post("/delete", h.delete)
		})
	})
}
