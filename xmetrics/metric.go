// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	CounterType   = "counter"
	GaugeType     = "gauge"
	HistogramType = "histogram"
)

var errNoMetricName = errors.New("a name is required for a metric")

// Module is a function type that returns prebuilt metrics.  Packages that expose
// metrics supply a Module, typically a function named Metrics.
type Module func() []Metric

// Metric describes a single metric that will be preregistered.  This type loosely
// corresponds with Prometheus' Opts struct.
type Metric struct {
	// Name is the required name of this metric.
	Name string

	// Type is the required type of metric.  This value must be one of the constants defined in this package.
	Type string

	// Namespace is the namespace of this metric.  The enclosing Options' Namespace
	// is used if this is not supplied.
	Namespace string

	// Subsystem is the subsystem of this metric.  The enclosing Options' Subsystem
	// is used if this is not supplied.
	Subsystem string

	// Help is the help string for this metric.  If not supplied, the metric's name is used.
	Help string

	// ConstLabels are the Prometheus ConstLabels for this metric.  This field is optional.
	ConstLabels map[string]string

	// LabelNames are the Prometheus label names for this metric.  This field is optional.
	LabelNames []string

	// Buckets describes the observation buckets for a histogram.  Ignored for other metric types.
	Buckets []float64
}

// fqn returns the fully-qualified prometheus name of this metric, applying the given
// defaults for namespace and subsystem.
func (m Metric) fqn(namespace, subsystem string) string {
	if len(m.Namespace) > 0 {
		namespace = m.Namespace
	}

	if len(m.Subsystem) > 0 {
		subsystem = m.Subsystem
	}

	return prometheus.BuildFQName(namespace, subsystem, m.Name)
}

// NewCollector creates a Prometheus vector from a Metric descriptor.  The namespace and subsystem
// are the defaults used when the Metric does not carry its own.
func NewCollector(m Metric, namespace, subsystem string) (prometheus.Collector, error) {
	if len(m.Name) == 0 {
		return nil, errNoMetricName
	}

	if len(m.Namespace) > 0 {
		namespace = m.Namespace
	}

	if len(m.Subsystem) > 0 {
		subsystem = m.Subsystem
	}

	help := m.Help
	if len(help) == 0 {
		help = m.Name
	}

	switch m.Type {
	case CounterType:
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        m.Name,
			Help:        help,
			ConstLabels: prometheus.Labels(m.ConstLabels),
		}, m.LabelNames), nil

	case GaugeType:
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        m.Name,
			Help:        help,
			ConstLabels: prometheus.Labels(m.ConstLabels),
		}, m.LabelNames), nil

	case HistogramType:
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        m.Name,
			Help:        help,
			Buckets:     m.Buckets,
			ConstLabels: prometheus.Labels(m.ConstLabels),
		}, m.LabelNames), nil

	default:
		return nil, fmt.Errorf("unsupported metric type %q for metric %s", m.Type, m.Name)
	}
}
