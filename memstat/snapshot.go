// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package memstat

// Source identifies the kernel interface a Snapshot was read from.
type Source string

const (
	// SourceMemcg indicates a snapshot parsed from a per-application memory cgroup.
	SourceMemcg Source = "memcg"

	// SourceProcfs indicates a snapshot parsed from /proc/<pid>/stat.
	SourceProcfs Source = "procfs"
)

// Snapshot is the memory state of a single process at the time it was read.
// Fields that the Source cannot supply are left at zero.
type Snapshot struct {
	// PageFaults is the number of minor page faults.
	PageFaults uint64 `json:"pageFaults"`

	// MajorPageFaults is the number of page faults which required disk I/O.
	MajorPageFaults uint64 `json:"majorPageFaults"`

	// RSSBytes is the anonymous and swap cache memory, in bytes.
	RSSBytes uint64 `json:"rssBytes"`

	// CacheBytes is the page cache memory, in bytes.  Only SourceMemcg supplies this.
	CacheBytes uint64 `json:"cacheBytes"`

	// SwapBytes is the swap usage, in bytes.  Only SourceMemcg supplies this.
	SwapBytes uint64 `json:"swapBytes"`

	// StartTimeNanos is the time the process started, in nanoseconds since boot.
	// Only SourceProcfs supplies this.
	StartTimeNanos uint64 `json:"startTimeNanos"`

	// Source is the kernel interface this snapshot was read from.
	Source Source `json:"source"`
}
