// Package metrics registra los colectores Prometheus del servicio.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "estoque"

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Peticiones HTTP por método, ruta y código.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Latencia de las peticiones HTTP.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	StockAdjustments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_adjustments_total",
		Help:      "Cambios de cantidad aplicados, por tipo de movimiento.",
	}, []string{"type"})

	AlertsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alerts_emitted_total",
		Help:      "Alertas creadas, por tipo.",
	}, []string{"type"})

	SalesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_recorded_total",
		Help:      "Cabeceras de venta creadas.",
	})

	SaleItemsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sale_items_recorded_total",
		Help:      "Líneas de venta registradas.",
	})
)
