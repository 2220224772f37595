package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los collectors del web tier.
// Cada instancia usa su propio registry para no chocar entre tests.
type Metrics struct {
	registry    *prometheus.Registry
	resolutions *prometheus.CounterVec
	apiDuration *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "petclinic",
			Name:      "route_resolutions_total",
			Help:      "Route resolutions by entity and outcome.",
		}, []string{"entity", "outcome"}),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "petclinic",
			Name:      "api_request_duration_seconds",
			Help:      "Latency of calls to the REST API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}

	reg.MustRegister(m.resolutions, m.apiDuration)
	return m
}

// ObserveResolution registra un resultado ("new", "found", "redirected", "error", ...).
func (m *Metrics) ObserveResolution(entity, outcome string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(entity, outcome).Inc()
}

// ObserveAPI tiene la firma de httpclient.Client.Observe. status 0 = error de transporte.
func (m *Metrics) ObserveAPI(method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.apiDuration.WithLabelValues(method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry se expone para tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
