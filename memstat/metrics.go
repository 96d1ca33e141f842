// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package memstat

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/xmidt-org/procmem/xmetrics"
)

// Names for our metrics
const (
	ReadCounter = "memstat_reads"
)

// labels
const (
	SourceLabel  = "source"
	OutcomeLabel = "outcome"
)

// values of SourceLabel
const (
	memcgSource    = "memcg"
	procStatSource = "procfs_stat"
	statusSource   = "procfs_status"
	cmdlineSource  = "procfs_cmdline"
)

// values of OutcomeLabel
const (
	successOutcome   = "success"
	missingOutcome   = "missing"
	errorOutcome     = "error"
	malformedOutcome = "malformed"
)

// Metrics returns the Metrics relevant to this package
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name:       ReadCounter,
			Type:       xmetrics.CounterType,
			Help:       "Count of memory accounting reads by kernel source and outcome",
			LabelNames: []string{SourceLabel, OutcomeLabel},
		},
	}
}

// Measures describes the defined metrics that will be used by a Reader
type Measures struct {
	Reads metrics.Counter
}

// NewMeasures realizes desired metrics
func NewMeasures(p provider.Provider) Measures {
	return Measures{
		Reads: p.NewCounter(ReadCounter),
	}
}

func (m Measures) read(source, outcome string) {
	m.Reads.With(SourceLabel, source, OutcomeLabel, outcome).Add(1.0)
}
