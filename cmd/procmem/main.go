// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/pflag"
	"github.com/xmidt-org/procmem/memstat"
	"go.uber.org/zap"
)

// report is the JSON document written for one process.  Snapshot is null when neither
// the memory cgroup nor procfs had anything to offer.
type report struct {
	PID                   int               `json:"pid"`
	UID                   int               `json:"uid"`
	Cmdline               string            `json:"cmdline"`
	Memcg                 bool              `json:"memcg"`
	Snapshot              *memstat.Snapshot `json:"snapshot"`
	RSSHighWaterMarkBytes uint64            `json:"rssHighWaterMarkBytes"`
}

func newReport(r *memstat.Reader, uid, pid int) report {
	rep := report{
		PID:                   pid,
		UID:                   uid,
		Cmdline:               r.ReadCmdline(pid),
		Memcg:                 r.HasMemcg(),
		RSSHighWaterMarkBytes: r.ReadRSSHighWaterMark(pid),
	}

	if s, ok := r.ReadMemoryStat(uid, pid); ok {
		rep.Snapshot = &s
	}

	return rep
}

func writeMetrics(g prometheus.Gatherer, output io.Writer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}

	encoder := expfmt.NewEncoder(output, expfmt.FmtText)
	for _, mf := range families {
		if err := encoder.Encode(mf); err != nil {
			return err
		}
	}

	return nil
}

func procmem(arguments []string, stdout, stderr io.Writer) int {
	flagSet := newFlagSet(stderr)
	if err := flagSet.Parse(arguments); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}

		return 2
	}

	pid, _ := flagSet.GetInt(PidFlag)
	uid, _ := flagSet.GetInt(UIDFlag)
	dumpMetrics, _ := flagSet.GetBool(MetricsFlag)
	if pid <= 0 {
		fmt.Fprintf(stderr, "--%s must be a positive process id\n", PidFlag)
		flagSet.PrintDefaults()
		return 2
	}

	v, err := newViper(flagSet)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger, err := newLogger(v, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	defer logger.Sync()

	registry, err := newRegistry(v, memstat.Metrics)
	if err != nil {
		logger.Error("could not create metrics registry", zap.Error(err))
		return 1
	}

	o, err := memstat.NewOptions(logger, v)
	if err != nil {
		logger.Error("could not read memstat options", zap.Error(err))
		return 1
	}

	o.MetricsProvider = registry
	logger.Debug("reading process", zap.Int("pid", pid), zap.Int("uid", uid))

	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(newReport(memstat.NewReader(o), uid, pid)); err != nil {
		logger.Error("could not write report", zap.Error(err))
		return 1
	}

	if dumpMetrics {
		if err := writeMetrics(registry, stderr); err != nil {
			logger.Error("could not write metrics", zap.Error(err))
			return 1
		}
	}

	return 0
}

func main() {
	os.Exit(procmem(os.Args[1:], os.Stdout, os.Stderr))
}
