// Package metrics exposes the secret container counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/systmms/fixedsecret/pkg/secret"
)

const namespace = "fixedsecret"

// statsFunc is replaced in tests
var statsFunc = secret.Stats

// Collectors returns the container metrics. They read secret.Stats on
// every scrape, so they never fall out of step with the counters.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "containers_live",
			Help:      "Number of secret containers currently holding key material",
		}, func() float64 { return float64(statsFunc().Live()) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "containers_created_total",
			Help:      "Total number of secret containers created, including move targets",
		}, func() float64 { return float64(statsFunc().Created) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "containers_destroyed_total",
			Help:      "Total number of secret containers zeroed by Destroy",
		}, func() float64 { return float64(statsFunc().Destroyed) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "containers_moved_total",
			Help:      "Total number of secret containers whose contents were moved to a new owner",
		}, func() float64 { return float64(statsFunc().Moved) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "containers_reclaimed_total",
			Help:      "Total number of secret containers zeroed by the garbage collector because Destroy was never called",
		}, func() float64 { return float64(statsFunc().Reclaimed) }),
	}
}

// Register registers the container metrics with reg
func Register(reg prometheus.Registerer) error {
	for _, c := range Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Sample is one gathered metric value
type Sample struct {
	Name  string
	Value float64
}

// Gather collects the current values from g, in registry order
func Gather(g prometheus.Gatherer) ([]Sample, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}

	var samples []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var value float64
			switch {
			case m.GetGauge() != nil:
				value = m.GetGauge().GetValue()
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			default:
				continue
			}
			samples = append(samples, Sample{Name: mf.GetName(), Value: value})
		}
	}
	return samples, nil
}
