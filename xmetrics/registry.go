// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"fmt"
	"sync"

	"github.com/go-kit/kit/metrics"
	gokitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusProvider is a Prometheus-specific version of go-kit's metrics.Provider.  Use this interface
// when interacting directly with Prometheus.
type PrometheusProvider interface {
	NewCounterVec(string) *prometheus.CounterVec
	NewGaugeVec(string) *prometheus.GaugeVec
	NewHistogramVec(string) *prometheus.HistogramVec
}

// Registry is the core abstraction for this package.  It is a Prometheus registry and a go-kit metrics.Provider all in one.
//
// For any metric that is already defined the provider returns a new go-kit wrapper for that metric.  Metrics that
// were not preregistered are created ad hoc, without labels, and cached for subsequent calls.
type Registry interface {
	PrometheusProvider
	provider.Provider
	prometheus.Gatherer
	prometheus.Registerer
}

type registry struct {
	*prometheus.Registry

	namespace string
	subsystem string

	lock  sync.Mutex
	cache map[string]prometheus.Collector
}

// collector returns the cached vector with the given name, creating and registering an
// unlabeled one of the given type if none exists.  A cached vector of a different type panics,
// matching prometheus' own Must* semantics.
func (r *registry) collector(name, metricType string) prometheus.Collector {
	r.lock.Lock()
	defer r.lock.Unlock()

	if existing, ok := r.cache[name]; ok {
		return existing
	}

	c, err := NewCollector(Metric{Name: name, Type: metricType}, r.namespace, r.subsystem)
	if err != nil {
		panic(err)
	}

	if err := r.Registry.Register(c); err != nil {
		already, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			panic(err)
		}

		c = already.ExistingCollector
	}

	r.cache[name] = c
	return c
}

func (r *registry) NewCounterVec(name string) *prometheus.CounterVec {
	counterVec, ok := r.collector(name, CounterType).(*prometheus.CounterVec)
	if !ok {
		panic(fmt.Errorf("the metric %s is not a counter", name))
	}

	return counterVec
}

func (r *registry) NewCounter(name string) metrics.Counter {
	return gokitprometheus.NewCounter(r.NewCounterVec(name))
}

func (r *registry) NewGaugeVec(name string) *prometheus.GaugeVec {
	gaugeVec, ok := r.collector(name, GaugeType).(*prometheus.GaugeVec)
	if !ok {
		panic(fmt.Errorf("the metric %s is not a gauge", name))
	}

	return gaugeVec
}

func (r *registry) NewGauge(name string) metrics.Gauge {
	return gokitprometheus.NewGauge(r.NewGaugeVec(name))
}

func (r *registry) NewHistogramVec(name string) *prometheus.HistogramVec {
	histogramVec, ok := r.collector(name, HistogramType).(*prometheus.HistogramVec)
	if !ok {
		panic(fmt.Errorf("the metric %s is not a histogram", name))
	}

	return histogramVec
}

func (r *registry) NewHistogram(name string, _ int) metrics.Histogram {
	return gokitprometheus.NewHistogram(r.NewHistogramVec(name))
}

func (r *registry) Stop() {
}

// NewRegistry creates a Registry from the given Options, preregistering the metrics of each module
// followed by the Options' own Metrics.  Metrics are looked up by their bare Name, so two modules may
// not define the same Name even under different namespaces or subsystems.  Options metrics may
// override a module metric of the same Name and type.
func NewRegistry(o *Options, modules ...Module) (Registry, error) {
	r := &registry{
		Registry:  o.registry(),
		namespace: o.namespace(),
		subsystem: o.subsystem(),
		cache:     make(map[string]prometheus.Collector),
	}

	var (
		merged = make(map[string]Metric)
		order  []string
	)

	add := func(allowOverride bool, m Metric) error {
		if len(m.Name) == 0 {
			return errNoMetricName
		}

		if existing, ok := merged[m.Name]; ok {
			if !allowOverride {
				return fmt.Errorf("duplicate metric with name: %s", m.Name)
			}

			if existing.Type != m.Type {
				return fmt.Errorf("metric %s was expected to be of type %s, but was of type %s", m.Name, existing.Type, m.Type)
			}
		} else {
			order = append(order, m.Name)
		}

		merged[m.Name] = m
		return nil
	}

	for _, module := range modules {
		for _, m := range module() {
			if err := add(false, m); err != nil {
				return nil, err
			}
		}
	}

	for _, m := range o.metrics() {
		if err := add(true, m); err != nil {
			return nil, err
		}
	}

	for _, name := range order {
		m := merged[name]
		c, err := NewCollector(m, r.namespace, r.subsystem)
		if err != nil {
			return nil, err
		}

		if err := r.Registry.Register(c); err != nil {
			return nil, fmt.Errorf("error while preregistering metric %s: %w", m.fqn(r.namespace, r.subsystem), err)
		}

		r.cache[m.Name] = c
	}

	return r, nil
}

// MustNewRegistry is like NewRegistry, except that it panics when NewRegistry would return an error.
func MustNewRegistry(o *Options, modules ...Module) Registry {
	r, err := NewRegistry(o, modules...)
	if err != nil {
		panic(err)
	}

	return r
}
