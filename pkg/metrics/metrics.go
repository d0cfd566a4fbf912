// Package metrics expone la instrumentación Prometheus del servicio.
//
// Las métricas HTTP las alimenta el middleware de interfaces/http; las del
// libro de consumos, los casos de uso. Todo se publica en GET /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hotel"

// Resultados de una operación del libro de consumos.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

var (
	// RequestDuration duración de peticiones HTTP por método, ruta y estado.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// ConsumptionOps cuenta create/update/delete del libro de consumos por resultado.
	ConsumptionOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "consumption_operations_total",
			Help:      "Consumption ledger operations by outcome.",
		},
		[]string{"op", "result"},
	)

	// ProductStock último stock conocido por producto, actualizado en cada mutación.
	ProductStock = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "product_stock",
			Help:      "Available stock per product after the last ledger mutation.",
		},
		[]string{"product_id"},
	)

	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Room summary cache hits.",
	})
	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Room summary cache misses.",
	})
)

// Registry registro propio (no el global de prometheus).
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	Registry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		ConsumptionOps,
		ProductStock,
		CacheHits,
		CacheMisses,
	)
}

// ObserveLedger registra el resultado de una operación del libro.
// rejected indica un rechazo de negocio (validación, stock, no encontrado).
func ObserveLedger(op string, err error, rejected bool) {
	result := ResultOK
	switch {
	case err != nil && rejected:
		result = ResultRejected
	case err != nil:
		result = ResultError
	}
	ConsumptionOps.WithLabelValues(op, result).Inc()
}

// SetStock publica el stock actual de un producto.
func SetStock(productID string, stock int) {
	ProductStock.WithLabelValues(productID).Set(float64(stock))
}

// Handler expone el registro en formato Prometheus/OpenMetrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
