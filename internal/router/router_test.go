package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"petclinic-web/internal/apitest"
	"petclinic-web/internal/config"
	"petclinic-web/internal/domain/clinic"
	"petclinic-web/internal/entity"
	"petclinic-web/internal/router"
)

type env struct {
	web *httptest.Server
	api *apitest.Clinic

	mu      sync.Mutex
	headers []http.Header // headers recibidos por el API
}

func newEnv(t *testing.T) *env {
	t.Helper()

	e := &env{api: apitest.NewClinic()}
	apiTS := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.mu.Lock()
		e.headers = append(e.headers, r.Header.Clone())
		e.mu.Unlock()
		e.api.ServeHTTP(w, r)
	}))
	t.Cleanup(apiTS.Close)

	h, err := router.NewRouter(router.Options{
		API:      config.APIConfig{BaseURL: apiTS.URL, Timeout: 2 * time.Second},
		PageSize: 20,
	})
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	e.web = httptest.NewServer(h)
	t.Cleanup(e.web.Close)
	return e
}

func (e *env) lastAPIHeader() http.Header {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.headers) == 0 {
		return nil
	}
	return e.headers[len(e.headers)-1]
}

func TestHTTP_EndToEnd_OwnerLifecycle(t *testing.T) {
	e := newEnv(t)

	// 1) Alta de owner desde el formulario
	{
		st, body, hdr := doReq(t, e.web.URL, "POST", "/owner/new", nil, map[string]any{
			"firstName": "George",
			"lastName":  "Franklin",
			"city":      "Madison",
		})
		if st != http.StatusSeeOther {
			t.Fatalf("expected 303 create owner, got %d body=%s", st, string(body))
		}
		if loc := hdr.Get("Location"); loc != "/owner" {
			t.Fatalf("expected redirect to /owner, got %q", loc)
		}
	}

	// 2) Listado
	var ownerID int64
	{
		st, body, _ := doReq(t, e.web.URL, "GET", "/owner/", nil, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list owners, got %d body=%s", st, string(body))
		}
		var list struct {
			Total int64          `json:"total"`
			Items []clinic.Owner `json:"items"`
		}
		_ = json.Unmarshal(body, &list)
		if list.Total != 1 || len(list.Items) != 1 || list.Items[0].ID == nil {
			t.Fatalf("unexpected owner list: %s", string(body))
		}
		ownerID = *list.Items[0].ID
	}
	ownerPath := fmt.Sprintf("/owner/%d", ownerID)

	// 3) Detalle: un solo fetch, con token y navigation id reenviados al API
	{
		st, body, hdr := doReq(t, e.web.URL, "GET", ownerPath+"/view", map[string]string{
			"Authorization": "Bearer tok-1",
			"X-Request-ID":  "nav-1",
		}, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 view owner, got %d body=%s", st, string(body))
		}
		if !strings.Contains(string(body), `"lastName":"Franklin"`) {
			t.Fatalf("view owner: unexpected body=%s", string(body))
		}
		if got := hdr.Get("X-Request-ID"); got != "nav-1" {
			t.Fatalf("expected navigation id echoed, got %q", got)
		}
		if n := e.api.Calls("GET", fmt.Sprintf("/api/owners/%d", ownerID)); n != 1 {
			t.Fatalf("expected exactly 1 fetch, got %d", n)
		}
		apiHdr := e.lastAPIHeader()
		if apiHdr.Get("Authorization") != "Bearer tok-1" || apiHdr.Get("X-Request-ID") != "nav-1" {
			t.Fatalf("headers not forwarded to api: %v", apiHdr)
		}
	}

	// 4) Edición parcial
	{
		st, body, _ := doReq(t, e.web.URL, "PATCH", ownerPath+"/edit", nil, map[string]any{
			"id":   ownerID,
			"city": "Monona",
		})
		if st != http.StatusSeeOther {
			t.Fatalf("expected 303 patch owner, got %d body=%s", st, string(body))
		}
		_, body, _ = doReq(t, e.web.URL, "GET", ownerPath+"/edit", nil, nil)
		if !strings.Contains(string(body), `"city":"Monona"`) || !strings.Contains(string(body), `"lastName":"Franklin"`) {
			t.Fatalf("patch not applied: %s", string(body))
		}
	}

	// 5) Baja
	{
		st, body, hdr := doReq(t, e.web.URL, "POST", ownerPath+"/delete", nil, nil)
		if st != http.StatusSeeOther {
			t.Fatalf("expected 303 delete owner, got %d body=%s", st, string(body))
		}
		if loc := hdr.Get("Location"); loc != fmt.Sprintf("/owner?deleted=%d", ownerID) {
			t.Fatalf("unexpected delete redirect %q", loc)
		}
	}

	// 6) Ya no existe: redirige a /404
	{
		st, _, hdr := doReq(t, e.web.URL, "GET", ownerPath+"/view", nil, nil)
		if st != http.StatusFound {
			t.Fatalf("expected 302 after delete, got %d", st)
		}
		if loc := hdr.Get("Location"); loc != "/404" {
			t.Fatalf("expected redirect to /404, got %q", loc)
		}
		st, _, _ = doReq(t, e.web.URL, "GET", "/404", nil, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 page, got %d", st)
		}
	}
}

func TestHTTP_PetEditOptions_IncludeAssignedType(t *testing.T) {
	e := newEnv(t)
	ctx := testContext(t)

	// 21 tipos: el último queda fuera de la primera página (20)
	var last clinic.PetType
	for i := 1; i <= 21; i++ {
		pt, err := e.api.PetTypes.Create(ctx, clinic.PetType{Name: fmt.Sprintf("type-%d", i)})
		if err != nil {
			t.Fatalf("seed pet type: %v", err)
		}
		last = pt
	}
	birth := entity.NewDate(2020, time.September, 7)
	pet, err := e.api.Pets.Create(ctx, clinic.Pet{Name: "Leo", BirthDate: &birth, Type: &last})
	if err != nil {
		t.Fatalf("seed pet: %v", err)
	}

	st, body, _ := doReq(t, e.web.URL, "GET", fmt.Sprintf("/pet/%d/edit", *pet.ID), nil, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 edit pet, got %d body=%s", st, string(body))
	}

	if !strings.Contains(string(body), `"birthDate":"2020-09-07"`) {
		t.Fatalf("expected birthDate in form, body=%s", string(body))
	}

	var view struct {
		Creating bool              `json:"creating"`
		Options  clinic.PetOptions `json:"options"`
	}
	_ = json.Unmarshal(body, &view)
	if view.Creating {
		t.Fatalf("expected edit mode, body=%s", string(body))
	}
	if len(view.Options.PetTypes) != 21 {
		t.Fatalf("expected 21 pet type options, got %d", len(view.Options.PetTypes))
	}
	if first := view.Options.PetTypes[0]; first.ID == nil || *first.ID != *last.ID {
		t.Fatalf("expected assigned type first, got %+v", first)
	}
}

func TestHTTP_DeleteMissingOwner(t *testing.T) {
	e := newEnv(t)

	st, body, hdr := doReq(t, e.web.URL, "POST", "/owner/99/delete", nil, nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 deleting missing owner, got %d body=%s", st, string(body))
	}
	if hdr.Get("Location") != "" {
		t.Fatalf("expected no redirect, got %q", hdr.Get("Location"))
	}
}

func TestHTTP_SingleNavigationIDReachesAPI(t *testing.T) {
	e := newEnv(t)

	st, body, hdr := doReq(t, e.web.URL, "GET", "/owner/", nil, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list owners, got %d body=%s", st, string(body))
	}
	id := hdr.Get("X-Request-ID")
	if id == "" {
		t.Fatalf("expected generated navigation id in response")
	}
	if got := e.lastAPIHeader().Get("X-Request-ID"); got != id {
		t.Fatalf("expected api to receive %q, got %q", id, got)
	}
}

func TestHTTP_UpstreamFailureAbortsNavigation(t *testing.T) {
	e := newEnv(t)
	e.api.Fail("/api/visits/3", http.StatusInternalServerError)

	st, _, hdr := doReq(t, e.web.URL, "GET", "/visit/3/view", nil, nil)
	if st != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", st)
	}
	if hdr.Get("Location") != "" {
		t.Fatalf("expected no redirect on transport failure")
	}
	if n := e.api.Calls("GET", "/api/visits/3"); n != 1 {
		t.Fatalf("expected no retry, got %d calls", n)
	}
}

func TestHTTP_HealthIndexAndMetrics(t *testing.T) {
	e := newEnv(t)

	st, body, _ := doReq(t, e.web.URL, "GET", "/health", nil, nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("health: %d %s", st, string(body))
	}

	st, body, _ = doReq(t, e.web.URL, "GET", "/", nil, nil)
	if st != http.StatusOK || !strings.Contains(string(body), `"path":"vet-specialty"`) {
		t.Fatalf("index: %d %s", st, string(body))
	}

	_, _, _ = doReq(t, e.web.URL, "GET", "/specialty/new", nil, nil)
	st, body, _ = doReq(t, e.web.URL, "GET", "/metrics", nil, nil)
	if st != http.StatusOK || !strings.Contains(string(body), "petclinic_route_resolutions_total") {
		t.Fatalf("metrics: %d %s", st, string(body))
	}
}

func TestNewRouter_InvalidBaseURL(t *testing.T) {
	_, err := router.NewRouter(router.Options{API: config.APIConfig{BaseURL: "::bad"}})
	if err == nil {
		t.Fatalf("expected error for invalid base url")
	}
}

var noRedirect = &http.Client{
	CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
}

func doReq(t *testing.T, baseURL, method, path string, headers map[string]string, body any) (int, []byte, http.Header) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := noRedirect.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody, res.Header
}
