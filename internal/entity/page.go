package entity

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"

	// DefaultSort equivale al defaultSort de las rutas de listado.
	DefaultSort = "id," + SortAsc
)

// PageRequest son las opciones de query/search hacia el API.
type PageRequest struct {
	Page      int
	Size      int
	Sort      []string // "campo,asc|desc"
	Query     string   // solo para search
	Eagerload *bool
}

// Values arma el query string. Los campos en cero no se envían.
func (p PageRequest) Values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Size > 0 {
		v.Set("size", strconv.Itoa(p.Size))
	}
	for _, s := range p.Sort {
		if s = strings.TrimSpace(s); s != "" {
			v.Add("sort", s)
		}
	}
	if q := strings.TrimSpace(p.Query); q != "" {
		v.Set("query", q)
	}
	if p.Eagerload != nil {
		v.Set("eagerload", strconv.FormatBool(*p.Eagerload))
	}
	return v
}

// Page es una página de resultados; Total viene de X-Total-Count.
type Page[T any] struct {
	Items []T
	Total int64
}

// Sort es un criterio de orden ya parseado.
type Sort struct {
	Field     string
	Direction string
}

func (s Sort) String() string {
	return s.Field + "," + s.Direction
}

// ParseSort interpreta "campo,dir". Dirección inválida o ausente => asc.
func ParseSort(raw string) Sort {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ParseSort(DefaultSort)
	}
	field, dir, _ := strings.Cut(raw, ",")
	field = strings.TrimSpace(field)
	if field == "" {
		field = "id"
	}
	dir = strings.ToLower(strings.TrimSpace(dir))
	if dir != SortDesc {
		dir = SortAsc
	}
	return Sort{Field: field, Direction: dir}
}
