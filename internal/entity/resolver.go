package entity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultNotFoundPath es el destino compartido por todas las entidades.
const DefaultNotFoundPath = "/404"

// Finder es la parte del colaborador de datos que usa el resolver.
// (nil, nil) o un error que matchee ErrNotFound significan "cuerpo vacío".
type Finder[T any] interface {
	Find(ctx context.Context, id int64) (*T, error)
}

// Navigator ejecuta la redirección cuando la entidad no existe.
type Navigator interface {
	RedirectTo(ctx context.Context, path string)
}

type Outcome int

const (
	// OutcomeNew: no vino id, la vista arranca en modo "crear".
	OutcomeNew Outcome = iota
	// OutcomeFound: la entidad se obtuvo y viaja como dato de ruta.
	OutcomeFound
	// OutcomeRedirected: se redirigió a not-found; la vista destino no se construye.
	OutcomeRedirected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNew:
		return "new"
	case OutcomeFound:
		return "found"
	case OutcomeRedirected:
		return "redirected"
	default:
		return "unknown"
	}
}

// Resolution es el resultado terminal de una resolución.
// Entity solo es distinto de nil cuando Outcome == OutcomeFound.
type Resolution[T any] struct {
	Outcome Outcome
	Entity  *T
}

type Resolver[T any] struct {
	finder       Finder[T]
	notFoundPath string
}

type ResolverOption func(*resolverOptions)

type resolverOptions struct {
	notFoundPath string
}

func WithNotFoundPath(path string) ResolverOption {
	return func(o *resolverOptions) {
		if p := strings.TrimSpace(path); p != "" {
			o.notFoundPath = p
		}
	}
}

func NewResolver[T any](finder Finder[T], opts ...ResolverOption) *Resolver[T] {
	o := resolverOptions{notFoundPath: DefaultNotFoundPath}
	for _, opt := range opts {
		opt(&o)
	}
	return &Resolver[T]{
		finder:       finder,
		notFoundPath: o.notFoundPath,
	}
}

// NotFoundPath es el destino de las redirecciones de este resolver.
func (r *Resolver[T]) NotFoundPath() string {
	return r.notFoundPath
}

// Resolve adapta el parámetro crudo de la ruta: "" = ausente.
func (r *Resolver[T]) Resolve(ctx context.Context, nav Navigator, rawID string) (Resolution[T], error) {
	id, err := ParseID(rawID)
	if err != nil {
		return Resolution[T]{}, err
	}
	return r.ResolveID(ctx, nav, id)
}

// ResolveID hace a lo sumo un Find. Sin reintentos ni cache entre resoluciones.
// Si ctx terminó cuando el Find vuelve, el resultado se descarta y no se redirige.
// Con nav nil no se redirige: OutcomeRedirected queda como señal y el caller
// navega por su cuenta a NotFoundPath().
func (r *Resolver[T]) ResolveID(ctx context.Context, nav Navigator, id *int64) (Resolution[T], error) {
	if id == nil {
		return Resolution[T]{Outcome: OutcomeNew}, nil
	}

	found, err := r.finder.Find(ctx, *id)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Resolution[T]{}, ctxErr
	}
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return Resolution[T]{}, err
		}
		found = nil
	}

	if found == nil {
		if nav != nil {
			nav.RedirectTo(ctx, r.notFoundPath)
		}
		return Resolution[T]{Outcome: OutcomeRedirected}, nil
	}

	return Resolution[T]{Outcome: OutcomeFound, Entity: found}, nil
}

// ParseID interpreta el id opcional de la ruta.
func ParseID(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return &id, nil
}
