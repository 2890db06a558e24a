package observability

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// meterCollector exposes the int64 sums held by an OpenTelemetry reader as Prometheus
// metrics. It is an unchecked collector: names are only known after a collection.
type meterCollector struct {
	reader    sdkmetric.Reader
	namespace string
}

// NewMeterCollector adapts reader for registration on a Prometheus registry.
// Counters such as dogs.service.listed become <namespace>_dogs_service_listed_total.
func NewMeterCollector(reader sdkmetric.Reader, namespace string) prometheus.Collector {
	return &meterCollector{reader: reader, namespace: namespace}
}

func (c *meterCollector) Describe(chan<- *prometheus.Desc) {}

func (c *meterCollector) Collect(ch chan<- prometheus.Metric) {
	var rm metricdata.ResourceMetrics
	if err := c.reader.Collect(context.Background(), &rm); err != nil {
		ch <- prometheus.NewInvalidMetric(prometheus.NewDesc(c.namespace+"_otel_collect_error", "OpenTelemetry collection failed.", nil, nil), err)
		return
	}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			name := prometheus.BuildFQName(c.namespace, "", promName(m.Name))
			valueType := prometheus.GaugeValue
			if sum.IsMonotonic {
				name += "_total"
				valueType = prometheus.CounterValue
			}
			for _, dp := range sum.DataPoints {
				labels := make([]string, 0, dp.Attributes.Len())
				values := make([]string, 0, dp.Attributes.Len())
				for iter := dp.Attributes.Iter(); iter.Next(); {
					kv := iter.Attribute()
					labels = append(labels, promName(string(kv.Key)))
					values = append(values, kv.Value.Emit())
				}
				desc := prometheus.NewDesc(name, m.Description, labels, nil)
				metric, err := prometheus.NewConstMetric(desc, valueType, float64(dp.Value), values...)
				if err != nil {
					ch <- prometheus.NewInvalidMetric(desc, err)
					continue
				}
				ch <- metric
			}
		}
	}
}

func promName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
