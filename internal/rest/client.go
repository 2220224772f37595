package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"petclinic-web/internal/entity"
	"petclinic-web/internal/platform/httpclient"
)

const TotalCountHeader = "X-Total-Count"

var (
	// ErrMissingID: update/patch sobre una entidad sin id.
	ErrMissingID = errors.New("entity id required")
)

// HeaderFunc devuelve headers extra por request (token, request id).
type HeaderFunc func(ctx context.Context) map[string]string

// Client es el colaborador de acceso a datos de una entidad, sobre /api/<recurso>.
// Una sola implementación genérica; cada entidad solo cambia T y el path.
type Client[T entity.Identifiable] struct {
	http         *httpclient.Client
	resourcePath string
	headers      HeaderFunc
}

type Option func(*options)

type options struct {
	headers HeaderFunc
}

func WithHeaders(fn HeaderFunc) Option {
	return func(o *options) { o.headers = fn }
}

func New[T entity.Identifiable](c *httpclient.Client, resourcePath string, opts ...Option) *Client[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Client[T]{
		http:         c,
		resourcePath: "/" + strings.Trim(resourcePath, "/"),
		headers:      o.headers,
	}
}

func (c *Client[T]) ResourcePath() string {
	return c.resourcePath
}

func (c *Client[T]) Create(ctx context.Context, e T) (T, error) {
	var out T
	_, err := c.do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   c.resourcePath,
		In:     e,
		Out:    &out,
	})
	return out, err
}

// Update reemplaza la entidad completa (PUT /{id}).
func (c *Client[T]) Update(ctx context.Context, e T) (T, error) {
	return c.write(ctx, http.MethodPut, "application/json", e)
}

// PartialUpdate envía solo los campos presentes (PATCH /{id}, merge-patch).
func (c *Client[T]) PartialUpdate(ctx context.Context, e T) (T, error) {
	return c.write(ctx, http.MethodPatch, "application/merge-patch+json", e)
}

func (c *Client[T]) write(ctx context.Context, method, contentType string, e T) (T, error) {
	var out T
	id := e.GetID()
	if id == nil {
		return out, ErrMissingID
	}
	_, err := c.do(ctx, httpclient.Request{
		Method:      method,
		Path:        c.itemPath(*id),
		ContentType: contentType,
		In:          e,
		Out:         &out,
	})
	return out, err
}

// Find devuelve (nil, nil) si el body vino vacío.
func (c *Client[T]) Find(ctx context.Context, id int64) (*T, error) {
	var out T
	resp, err := c.do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   c.itemPath(id),
		Out:    &out,
	})
	if err != nil {
		return nil, err
	}
	if resp.Empty {
		return nil, nil
	}
	return &out, nil
}

func (c *Client[T]) Query(ctx context.Context, req entity.PageRequest) (entity.Page[T], error) {
	return c.list(ctx, c.resourcePath, req)
}

// Search usa /_search. Un error del índice
// degrada a una página vacía en lugar de fallar la pantalla.
func (c *Client[T]) Search(ctx context.Context, req entity.PageRequest) (entity.Page[T], error) {
	page, err := c.list(ctx, c.resourcePath+"/_search", req)
	if err != nil {
		if ctx.Err() != nil {
			return entity.Page[T]{}, ctx.Err()
		}
		return entity.Page[T]{Items: []T{}}, nil
	}
	return page, nil
}

func (c *Client[T]) Delete(ctx context.Context, id int64) error {
	_, err := c.do(ctx, httpclient.Request{
		Method: http.MethodDelete,
		Path:   c.itemPath(id),
	})
	return err
}

func (c *Client[T]) list(ctx context.Context, path string, req entity.PageRequest) (entity.Page[T], error) {
	var items []T
	resp, err := c.do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  req.Values(),
		Out:    &items,
	})
	if err != nil {
		return entity.Page[T]{}, err
	}
	if items == nil {
		items = []T{}
	}

	total := int64(len(items))
	if raw := resp.Header.Get(TotalCountHeader); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			total = n
		}
	}
	return entity.Page[T]{Items: items, Total: total}, nil
}

// do agrega los headers salientes. Un 404 de cualquier operación matchea
// entity.ErrNotFound y conserva el *httpclient.HTTPError.
func (c *Client[T]) do(ctx context.Context, req httpclient.Request) (httpclient.Response, error) {
	if c.headers != nil {
		req.Headers = c.headers(ctx)
	}
	resp, err := c.http.DoJSON(ctx, req)
	if err != nil && httpclient.StatusOf(err) == http.StatusNotFound {
		return resp, fmt.Errorf("%s %s: %w: %w", req.Method, req.Path, entity.ErrNotFound, err)
	}
	return resp, err
}

func (c *Client[T]) itemPath(id int64) string {
	return c.resourcePath + "/" + strconv.FormatInt(id, 10)
}
