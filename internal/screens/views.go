package screens

import (
	"encoding/json"
	"net/http"
)

type ListView[T any] struct {
	Title  string            `json:"title"`
	Items  []T               `json:"items"`
	Total  int64             `json:"total"`
	Page   int               `json:"page"`
	Size   int               `json:"size"`
	Sort   string            `json:"sort"`
	Search string            `json:"search,omitempty"`
	Links  map[string]string `json:"links"`

	Deleted *int64 `json:"deleted,omitempty"`
}

type DetailView[T any] struct {
	Title  string `json:"title"`
	Entity T      `json:"entity"`
}

// UpdateView: Entity nil = creando.
type UpdateView[T any] struct {
	Title    string   `json:"title"`
	Creating bool     `json:"creating"`
	IsSaving bool     `json:"isSaving"`
	Entity   *T       `json:"entity"`
	Options  any      `json:"options,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

type DeleteView[T any] struct {
	Title    string `json:"title"`
	Question string `json:"question"`
	Entity   T      `json:"entity"`
}

type errorView struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, errorView{Status: status, Message: msg})
}

// NotFound es la pantalla destino de las redirecciones del resolver.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "the page you requested does not exist")
}
