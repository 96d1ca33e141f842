// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package memstat

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/c9s/goprocinfo/linux"
	"go.uber.org/zap"
)

// Reader reads memory accounting for processes.  A Reader is immutable once created
// and is safe for concurrent use.
type Reader struct {
	logger     *zap.Logger
	measures   Measures
	memcgRoot  string
	procRoot   string
	pageSize   uint64
	jiffyNanos uint64
	hasMemcg   func() bool
}

// NewReader creates a Reader from the given, possibly nil, Options.
func NewReader(o *Options) *Reader {
	return &Reader{
		logger:     o.logger(),
		measures:   NewMeasures(o.metricsProvider()),
		memcgRoot:  o.memcgRoot(),
		procRoot:   o.procRoot(),
		pageSize:   o.pageSize(),
		jiffyNanos: o.jiffyNanos(),
		hasMemcg:   sync.OnceValue(o.perAppMemcg),
	}
}

// HasMemcg reports whether this Reader reads snapshots from per-application memory cgroups.
// The answer is computed on first use and never changes afterwards.
func (r *Reader) HasMemcg() bool {
	return r.hasMemcg()
}

func (r *Reader) memcgPath(uid, pid int) string {
	return filepath.Join(r.memcgRoot, "uid_"+strconv.Itoa(uid), "pid_"+strconv.Itoa(pid), "memory.stat")
}

func (r *Reader) procPath(pid int, name string) string {
	return filepath.Join(r.procRoot, strconv.Itoa(pid), name)
}

// ReadMemoryStat reads a Snapshot for the process pid, owned by uid.  The per-application memory
// cgroup is used when available, procfs otherwise.  It returns false if nothing could be read.
func (r *Reader) ReadMemoryStat(uid, pid int) (Snapshot, bool) {
	if r.HasMemcg() {
		return r.ReadMemcg(uid, pid)
	}

	return r.ReadProcfs(pid)
}

// ReadMemcg reads a Snapshot from the memory cgroup of the process pid, owned by uid.
func (r *Reader) ReadMemcg(uid, pid int) (Snapshot, bool) {
	contents, ok := r.readFile(memcgSource, r.memcgPath(uid, pid))
	if !ok {
		return Snapshot{}, false
	}

	s, ok := ParseMemcg(contents)
	if !ok {
		r.measures.read(memcgSource, malformedOutcome)
		return Snapshot{}, false
	}

	r.measures.read(memcgSource, successOutcome)
	return s, true
}

// ReadProcfs reads a Snapshot from /proc/<pid>/stat.
func (r *Reader) ReadProcfs(pid int) (Snapshot, bool) {
	path := r.procPath(pid, "stat")
	contents, ok := r.readFile(procStatSource, path)
	if !ok {
		return Snapshot{}, false
	}

	s, err := parseProcStat(contents, r.pageSize, r.jiffyNanos)
	if err != nil {
		if !errors.Is(err, errEmptyStat) && !errors.Is(err, errShortStat) {
			r.logger.Error("failed to parse value", zap.String("path", path), zap.Error(err))
		} else {
			r.logger.Debug("unrecognized stat contents", zap.String("path", path), zap.Error(err))
		}

		r.measures.read(procStatSource, malformedOutcome)
		return Snapshot{}, false
	}

	r.measures.read(procStatSource, successOutcome)
	return s, true
}

// ReadRSSHighWaterMark returns the peak resident set size of the process pid, in bytes, from
// the VmHWM field of /proc/<pid>/status.  It returns 0 if the value is not available.
func (r *Reader) ReadRSSHighWaterMark(pid int) uint64 {
	contents, ok := r.readFile(statusSource, r.procPath(pid, "status"))
	if !ok {
		return 0
	}

	hwm := ParseVmHWM(contents)
	if hwm == 0 {
		r.measures.read(statusSource, malformedOutcome)
	} else {
		r.measures.read(statusSource, successOutcome)
	}

	return hwm
}

// ReadCmdline returns the command line of the process pid, with its NUL separators replaced
// by spaces, e.g. "/system/bin/statsd".  It returns an empty string if the command line is
// not available.
func (r *Reader) ReadCmdline(pid int) string {
	path := r.procPath(pid, "cmdline")
	cmdline, err := linux.ReadProcessCmdline(path)
	if err != nil {
		r.readFailed(cmdlineSource, path, err)
		return ""
	}

	// ReadProcessCmdline drops a lone one-byte argument, and an argv with no
	// terminating NUL, so an empty result is checked against the raw contents.
	if len(cmdline) == 0 {
		if raw, err := os.ReadFile(path); err == nil {
			cmdline = CollapseCmdline(string(raw))
		}
	}

	r.measures.read(cmdlineSource, successOutcome)
	return cmdline
}
