// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package memstat

import "sync"

// DefaultReader returns the process-wide Reader built from default Options.  It is created
// on first use.
var DefaultReader = sync.OnceValue(func() *Reader {
	return NewReader(nil)
})

// HasMemcg reports whether DefaultReader uses per-application memory cgroups.
func HasMemcg() bool {
	return DefaultReader().HasMemcg()
}

// ReadMemoryStat reads a Snapshot for a process using DefaultReader.
func ReadMemoryStat(uid, pid int) (Snapshot, bool) {
	return DefaultReader().ReadMemoryStat(uid, pid)
}

// ReadRSSHighWaterMark reads the peak resident set size of a process using DefaultReader.
func ReadRSSHighWaterMark(pid int) uint64 {
	return DefaultReader().ReadRSSHighWaterMark(pid)
}

// ReadCmdline reads the command line of a process using DefaultReader.
func ReadCmdline(pid int) string {
	return DefaultReader().ReadCmdline(pid)
}
