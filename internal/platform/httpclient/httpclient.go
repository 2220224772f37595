package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultTimeout = 10 * time.Second

	// MaxBody es el límite de lectura de una respuesta.
	MaxBody = 1 << 20

	maxErrorBody = 1 << 10
)

var ErrBodyTooLarge = errors.New("httpclient: response body too large")

// Client envuelve *resty.Client con helpers comunes para adapters.
type Client struct {
	HTTP    *resty.Client
	BaseURL string // opcional; si se define, DoJSON puede recibir paths relativos

	// Observe se llama al terminar cada request (métricas). Puede ser nil.
	Observe func(method string, status int, elapsed time.Duration)
}

// New crea un Client con timeout razonable.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		HTTP: resty.New().SetTimeout(timeout),
	}
}

// NewWithBaseURL crea un Client con BaseURL + timeout.
func NewWithBaseURL(baseURL string, timeout time.Duration) (*Client, error) {
	return NewWithTransport(baseURL, timeout, nil)
}

// NewWithTransport es NewWithBaseURL con un Transport inyectable (tests). tr nil = default.
func NewWithTransport(baseURL string, timeout time.Duration, tr http.RoundTripper) (*Client, error) {
	c := New(timeout)
	if tr != nil {
		c.HTTP.SetTransport(tr)
	}
	if strings.TrimSpace(baseURL) == "" {
		return c, nil
	}
	_, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	c.BaseURL = strings.TrimRight(baseURL, "/")
	return c, nil
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// StatusOf devuelve el status de un *HTTPError envuelto, o 0.
func StatusOf(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}

// Request describe una llamada JSON.
// - Query: parámetros de query (opcional)
// - In: body a enviar (opcional). Si nil => no body.
// - Out: donde decodificar JSON (opcional). Si nil => ignora body.
type Request struct {
	Method      string
	Path        string // URL absoluta o path relativo si BaseURL está seteado
	Query       url.Values
	Headers     map[string]string
	ContentType string // default application/json
	In          any
	Out         any
}

// Response expone lo que los adapters necesitan además del body.
type Response struct {
	StatusCode int
	Header     http.Header
	Empty      bool // true si el body vino vacío o "null"
}

// DoJSON hace un request JSON. Retorna *HTTPError si status no es 2xx.
func (c *Client) DoJSON(ctx context.Context, in Request) (Response, error) {
	if c == nil || c.HTTP == nil {
		return Response{}, errors.New("httpclient: nil client")
	}

	fullURL, err := c.resolveURL(in.Path)
	if err != nil {
		return Response{}, err
	}

	req := c.HTTP.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetHeader("Accept", "application/json")

	if len(in.Query) > 0 {
		req.SetQueryParamsFromValues(in.Query)
	}
	if in.In != nil {
		ct := in.ContentType
		if ct == "" {
			ct = "application/json"
		}
		b, err := json.Marshal(in.In)
		if err != nil {
			return Response{}, fmt.Errorf("httpclient: marshal json: %w", err)
		}
		req.SetHeader("Content-Type", ct).SetBody(b)
	}

	// Extra headers
	for k, v := range in.Headers {
		if strings.TrimSpace(k) == "" || v == "" {
			continue
		}
		req.SetHeader(k, v)
	}

	start := time.Now()
	resp, err := req.Execute(in.Method, fullURL)
	if err != nil {
		c.observe(in.Method, 0, time.Since(start))
		return Response{}, fmt.Errorf("httpclient: do request: %w", err)
	}
	c.observe(in.Method, resp.StatusCode(), time.Since(start))

	var raw []byte
	if rc := resp.RawBody(); rc != nil {
		defer rc.Close()
		raw, err = readAtMost(rc, MaxBody)
		if err != nil && !errors.Is(err, ErrBodyTooLarge) {
			return Response{}, fmt.Errorf("httpclient: read body: %w", err)
		}
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		msg := strings.TrimSpace(string(raw))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return Response{}, &HTTPError{
			StatusCode: resp.StatusCode(),
			Body:       msg,
		}
	}

	if err != nil {
		return Response{}, err
	}

	out := Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
	}

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		out.Empty = true
		return out, nil
	}
	if in.Out == nil {
		return out, nil
	}
	if err := json.Unmarshal(raw, in.Out); err != nil {
		return Response{}, fmt.Errorf("httpclient: unmarshal json: %w", err)
	}

	return out, nil
}

func (c *Client) observe(method string, status int, elapsed time.Duration) {
	if c.Observe != nil {
		c.Observe(method, status, elapsed)
	}
}

func (c *Client) resolveURL(pathOrURL string) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	if pathOrURL == "" {
		return "", errors.New("httpclient: empty url")
	}

	// Si ya es URL absoluta, úsala tal cual.
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL, nil
	}

	// Si no es absoluta, requiere BaseURL.
	if strings.TrimSpace(c.BaseURL) == "" {
		return "", errors.New("httpclient: relative path requires BaseURL")
	}

	if !strings.HasPrefix(pathOrURL, "/") {
		pathOrURL = "/" + pathOrURL
	}
	return c.BaseURL + pathOrURL, nil
}

// readAtMost lee hasta max bytes; si el body es más largo devuelve lo leído
// junto con ErrBodyTooLarge.
func readAtMost(r io.Reader, max int64) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return raw, err
	}
	if int64(len(raw)) > max {
		return raw[:max], ErrBodyTooLarge
	}
	return raw, nil
}
