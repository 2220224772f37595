package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"petclinic-web/internal/config"
	"petclinic-web/internal/domain/clinic"
	"petclinic-web/internal/entity"
	"petclinic-web/internal/middleware"
	"petclinic-web/internal/platform/httpclient"
	"petclinic-web/internal/platform/metrics"
	"petclinic-web/internal/rest"
	"petclinic-web/internal/screens"
)

type Options struct {
	API          config.APIConfig
	NotFoundPath string
	PageSize     int

	Logger  *zap.Logger      // puede ser nil
	Metrics *metrics.Metrics // si es nil se crea uno

	// Opcional: Transport hacia el API (tests).
	Transport http.RoundTripper
}

// OptionsFromConfig toma lo que el router necesita de la config cargada.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		API:          cfg.API,
		NotFoundPath: cfg.NotFoundPath,
		PageSize:     cfg.PageSize,
	}
}

type index struct {
	Entities []clinic.Route `json:"entities"`
}

func NewRouter(opts Options) (http.Handler, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}

	api, err := httpclient.NewWithTransport(opts.API.BaseURL, opts.API.Timeout, opts.Transport)
	if err != nil {
		return nil, err
	}
	api.Observe = opts.Metrics.ObserveAPI

	r := chi.NewRouter()

	// Un solo id por navegación (X-Request-ID), el mismo que viaja al API.
	r.Use(middleware.NavigationID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.AuthContext)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", opts.Metrics.Handler())

	deps := screens.Deps{
		Logger:       opts.Logger,
		Metrics:      opts.Metrics,
		NotFoundPath: opts.NotFoundPath,
		PageSize:     opts.PageSize,
	}
	notFound := deps.NotFoundPath
	if notFound == "" {
		notFound = entity.DefaultNotFoundPath
	}
	r.Get(notFound, screens.NotFound)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		screens.WriteJSON(w, http.StatusOK, index{Entities: clinic.Routes})
	})

	// Un colaborador por entidad, todos reenviando token y navigation id.
	svc := clinic.NewServices(api, rest.WithHeaders(middleware.OutboundHeaders))
	clinic.RegisterRoutes(r, svc, deps)

	return r, nil
}
