package screens

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"petclinic-web/internal/entity"
	"petclinic-web/internal/middleware"
	"petclinic-web/internal/platform/httpclient"
	"petclinic-web/internal/rest"
)

type handlers[T entity.Identifiable] struct {
	screen Screen[T]
	deps   Deps
}

func (h *handlers[T]) log(r *http.Request) *zap.Logger {
	return h.deps.logger().With(
		zap.String("entity", h.screen.Name),
		zap.String("navigation_id", middleware.GetNavigationID(r.Context())),
	)
}

func (h *handlers[T]) basePath() string {
	return "/" + h.screen.Name
}

func (h *handlers[T]) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := intParam(q, "page", 0)
	if err != nil || page < 0 {
		writeError(w, http.StatusBadRequest, "page must be a non-negative integer")
		return
	}
	size, err := intParam(q, "size", h.deps.pageSize())
	if err != nil || size <= 0 {
		writeError(w, http.StatusBadRequest, "size must be a positive integer")
		return
	}
	sort := entity.ParseSort(q.Get("sort"))
	search := strings.TrimSpace(q.Get("search"))

	req := entity.PageRequest{
		Page: page,
		Size: size,
		Sort: []string{sort.String()},
	}
	// Desempate estable por id.
	if sort.Field != "id" {
		req.Sort = append(req.Sort, "id")
	}

	var result entity.Page[T]
	if search != "" {
		req.Query = search
		result, err = h.screen.Data.Search(r.Context(), req)
	} else {
		result, err = h.screen.Data.Query(r.Context(), req)
	}
	if err != nil {
		h.upstreamError(w, r, "list failed", err)
		return
	}

	view := ListView[T]{
		Title:  h.screen.Title,
		Items:  result.Items,
		Total:  result.Total,
		Page:   page,
		Size:   size,
		Sort:   sort.String(),
		Search: search,
		Links:  pageLinks(h.basePath(), page, size, result.Total, sort.String(), search),
	}
	if raw := q.Get("deleted"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			view.Deleted = &id
		}
	}

	WriteJSON(w, http.StatusOK, view)
}

func (h *handlers[T]) detail(w http.ResponseWriter, r *http.Request) {
	res, ok := Resolved[T](r.Context())
	if !ok || res.Entity == nil {
		// /{id}/view siempre trae id; sin entidad no hay nada que mostrar
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	WriteJSON(w, http.StatusOK, DetailView[T]{Title: h.screen.Title, Entity: *res.Entity})
}

// edit arma el formulario; con entidad nil es un alta.
func (h *handlers[T]) edit(w http.ResponseWriter, r *http.Request) {
	res, _ := Resolved[T](r.Context())

	view := UpdateView[T]{
		Title:    h.screen.Title,
		Creating: res.Entity == nil,
		Entity:   res.Entity,
	}

	opts, err := h.options(r.Context(), res.Entity)
	if err != nil {
		h.upstreamError(w, r, "load form options failed", err)
		return
	}
	view.Options = opts

	WriteJSON(w, http.StatusOK, view)
}

func (h *handlers[T]) create(w http.ResponseWriter, r *http.Request) {
	e, ok := h.decode(w, r)
	if !ok {
		return
	}
	if e.GetID() != nil {
		h.formError(w, r, http.StatusBadRequest, &e, "a new entity cannot already have an id")
		return
	}
	h.save(w, r, e, h.screen.Data.Create)
}

func (h *handlers[T]) update(w http.ResponseWriter, r *http.Request) {
	e, ok := h.decodeExisting(w, r)
	if !ok {
		return
	}
	h.save(w, r, e, h.screen.Data.Update)
}

func (h *handlers[T]) partialUpdate(w http.ResponseWriter, r *http.Request) {
	e, ok := h.decodeExisting(w, r)
	if !ok {
		return
	}
	h.save(w, r, e, h.screen.Data.PartialUpdate)
}

func (h *handlers[T]) save(w http.ResponseWriter, r *http.Request, e T, op func(context.Context, T) (T, error)) {
	if h.screen.Validate != nil {
		if err := h.screen.Validate(e); err != nil {
			h.formError(w, r, http.StatusBadRequest, &e, err.Error())
			return
		}
	}

	saved, err := op(r.Context(), e)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, rest.ErrMissingID):
			status = http.StatusBadRequest
		case httpclient.StatusOf(err) >= 400 && httpclient.StatusOf(err) < 500:
			status = httpclient.StatusOf(err)
		}
		h.log(r).Warn("save failed", zap.Error(err))
		h.formError(w, r, status, &e, "save failed")
		return
	}

	if id := saved.GetID(); id != nil {
		h.log(r).Debug("entity saved", zap.Int64("id", *id))
	}

	// Éxito: volver al estado anterior (el listado).
	http.Redirect(w, r, h.basePath(), http.StatusSeeOther)
}

func (h *handlers[T]) confirmDelete(w http.ResponseWriter, r *http.Request) {
	res, ok := Resolved[T](r.Context())
	if !ok || res.Entity == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	WriteJSON(w, http.StatusOK, DeleteView[T]{
		Title:    h.screen.Title,
		Question: fmt.Sprintf("Are you sure you want to delete %s %s?", h.screen.Name, chi.URLParam(r, "id")),
		Entity:   *res.Entity,
	})
}

func (h *handlers[T]) delete(w http.ResponseWriter, r *http.Request) {
	id, err := entity.ParseID(chi.URLParam(r, "id"))
	if err != nil || id == nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.screen.Data.Delete(r.Context(), *id); err != nil {
		h.upstreamError(w, r, "delete failed", err)
		return
	}

	http.Redirect(w, r, h.basePath()+"?deleted="+strconv.FormatInt(*id, 10), http.StatusSeeOther)
}

func (h *handlers[T]) decode(w http.ResponseWriter, r *http.Request) (T, bool) {
	var e T
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return e, false
	}
	return e, true
}

// decodeExisting exige que el id del body coincida con el de la ruta.
func (h *handlers[T]) decodeExisting(w http.ResponseWriter, r *http.Request) (T, bool) {
	var zero T
	id, err := entity.ParseID(chi.URLParam(r, "id"))
	if err != nil || id == nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return zero, false
	}

	e, ok := h.decode(w, r)
	if !ok {
		return zero, false
	}
	bodyID := e.GetID()
	if bodyID == nil {
		h.formError(w, r, http.StatusBadRequest, &e, "invalid id: id is null")
		return zero, false
	}
	if *bodyID != *id {
		h.formError(w, r, http.StatusBadRequest, &e, "invalid id: body and path differ")
		return zero, false
	}
	return e, true
}

func (h *handlers[T]) options(ctx context.Context, current *T) (any, error) {
	if h.screen.Options == nil {
		return nil, nil
	}
	return h.screen.Options(ctx, current)
}

// formError devuelve el formulario con isSaving=false y los errores.
// Si no se pueden recargar las opciones, se devuelve igual sin ellas.
func (h *handlers[T]) formError(w http.ResponseWriter, r *http.Request, status int, e *T, msg string) {
	view := UpdateView[T]{
		Title:    h.screen.Title,
		Creating: e == nil || (*e).GetID() == nil,
		IsSaving: false,
		Entity:   e,
		Errors:   []string{msg},
	}
	if opts, err := h.options(r.Context(), e); err == nil {
		view.Options = opts
	}
	WriteJSON(w, status, view)
}

func (h *handlers[T]) upstreamError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if r.Context().Err() != nil {
		return
	}
	switch {
	case errors.Is(err, entity.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
		return
	case errors.Is(err, context.DeadlineExceeded):
		h.log(r).Error(msg, zap.Error(err))
		writeError(w, http.StatusGatewayTimeout, "upstream timeout")
		return
	}
	h.log(r).Error(msg, zap.Error(err))
	writeError(w, http.StatusBadGateway, "upstream error")
}

func intParam(q url.Values, key string, def int) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// pageLinks arma first/prev/next/last como el header Link del API.
func pageLinks(base string, page, size int, total int64, sort, search string) map[string]string {
	last := 0
	if total > 0 {
		last = int((total - 1) / int64(size))
	}

	link := func(p int) string {
		v := url.Values{}
		v.Set("page", strconv.Itoa(p))
		v.Set("size", strconv.Itoa(size))
		v.Set("sort", sort)
		if search != "" {
			v.Set("search", search)
		}
		return base + "?" + v.Encode()
	}

	links := map[string]string{
		"first": link(0),
		"last":  link(last),
	}
	if page > 0 {
		links["prev"] = link(page - 1)
	}
	if page < last {
		links["next"] = link(page + 1)
	}
	return links
}
