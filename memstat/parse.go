// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package memstat

import (
	"errors"
	"fmt"
	"math/bits"
	"regexp"
	"strconv"
	"strings"
)

const bytesInKilobyte = 1024

// positions within /proc/<pid>/stat, zero-based, with comm counted as one field
const (
	pgfaultIndex    = 9
	pgmajfaultIndex = 11
	startTimeIndex  = 21
	rssInPagesIndex = 23

	minStatFields = rssInPagesIndex + 1
)

var (
	pgfaultPattern    = memcgPattern("total_pgfault")
	pgmajfaultPattern = memcgPattern("total_pgmajfault")
	rssPattern        = memcgPattern("total_rss")
	cachePattern      = memcgPattern("total_cache")
	swapPattern       = memcgPattern("total_swap")

	vmHWMPattern = regexp.MustCompile(`VmHWM:\s*(\d+)\s*kB`)

	errEmptyStat = errors.New("empty stat contents")
	errShortStat = errors.New("too few fields in stat contents")
	errOverflow  = errors.New("value overflows uint64")
)

// memcgPattern matches one key of a memory.stat file anywhere in the text.  Each key is searched
// for on its own so that the order of keys, and keys missing on some kernels, do not matter.  The
// key must not be the tail of a longer identifier, and must be followed by blanks and a value.
func memcgPattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[^A-Za-z0-9_])` + regexp.QuoteMeta(key) + `[ \t]+(\d+)`)
}

// multiply returns a*b, or false if the product does not fit in a uint64.
func multiply(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi == 0
}

// findUint returns the first integer captured by p, or 0 if there is no match.
func findUint(p *regexp.Regexp, contents string) uint64 {
	match := p.FindStringSubmatch(contents)
	if match == nil {
		return 0
	}

	value, err := strconv.ParseUint(match[1], 10, 64)
	if err != nil {
		return 0
	}

	return value
}

// ParseMemcg extracts a Snapshot from the contents of a memory cgroup's memory.stat file.
// Counters absent from the contents are zero.  Only empty contents fail.
func ParseMemcg(contents string) (Snapshot, bool) {
	if len(contents) == 0 {
		return Snapshot{}, false
	}

	return Snapshot{
		PageFaults:      findUint(pgfaultPattern, contents),
		MajorPageFaults: findUint(pgmajfaultPattern, contents),
		RSSBytes:        findUint(rssPattern, contents),
		CacheBytes:      findUint(cachePattern, contents),
		SwapBytes:       findUint(swapPattern, contents),
		Source:          SourceMemcg,
	}, true
}

// statFields splits the contents of /proc/<pid>/stat.  The comm field runs from the first '('
// to the last ')' and is kept as a single field, since a command name may itself contain
// spaces or parentheses.
func statFields(contents string) []string {
	open := strings.IndexByte(contents, '(')
	closing := strings.LastIndexByte(contents, ')')
	if open < 0 || closing < open {
		return strings.Fields(contents)
	}

	fields := strings.Fields(contents[:open])
	fields = append(fields, contents[open:closing+1])
	return append(fields, strings.Fields(contents[closing+1:])...)
}

func parseStatField(fields []string, index int) (uint64, error) {
	value, err := strconv.ParseUint(fields[index], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("stat field %d: %w", index, err)
	}

	return value, nil
}

// parseProcStat does the work of ParseProcStat, reporting why a parse failed.
func parseProcStat(contents string, pageSize, jiffyNanos uint64) (Snapshot, error) {
	if len(contents) == 0 {
		return Snapshot{}, errEmptyStat
	}

	fields := statFields(contents)
	if len(fields) < minStatFields {
		return Snapshot{}, errShortStat
	}

	var (
		s   = Snapshot{Source: SourceProcfs}
		err error
		rss uint64
		st  uint64
	)

	if s.PageFaults, err = parseStatField(fields, pgfaultIndex); err != nil {
		return Snapshot{}, err
	}

	if s.MajorPageFaults, err = parseStatField(fields, pgmajfaultIndex); err != nil {
		return Snapshot{}, err
	}

	if rss, err = parseStatField(fields, rssInPagesIndex); err != nil {
		return Snapshot{}, err
	}

	if st, err = parseStatField(fields, startTimeIndex); err != nil {
		return Snapshot{}, err
	}

	var ok bool
	if s.RSSBytes, ok = multiply(rss, pageSize); !ok {
		return Snapshot{}, fmt.Errorf("stat field %d: %d pages: %w", rssInPagesIndex, rss, errOverflow)
	}

	if s.StartTimeNanos, ok = multiply(st, jiffyNanos); !ok {
		return Snapshot{}, fmt.Errorf("stat field %d: %d ticks: %w", startTimeIndex, st, errOverflow)
	}

	return s, nil
}

// ParseProcStat extracts a Snapshot from the contents of /proc/<pid>/stat.  Resident pages are
// converted to bytes using pageSize, and the start time from clock ticks to nanoseconds using
// jiffyNanos.  Unlike ParseMemcg, any unparseable field fails the whole parse because the
// fields are positional.
func ParseProcStat(contents string, pageSize, jiffyNanos uint64) (Snapshot, bool) {
	s, err := parseProcStat(contents, pageSize, jiffyNanos)
	return s, err == nil
}

// CollapseCmdline turns the raw contents of /proc/<pid>/cmdline into a single line, with each
// NUL separator replaced by a space and surrounding whitespace trimmed.
func CollapseCmdline(contents string) string {
	return strings.TrimSpace(strings.ReplaceAll(contents, "\x00", " "))
}

// ParseVmHWM returns the peak resident set size, in bytes, from the contents of
// /proc/<pid>/status.  Zero means no usable VmHWM line was found.
func ParseVmHWM(contents string) uint64 {
	hwm, ok := multiply(findUint(vmHWMPattern, contents), bytesInKilobyte)
	if !ok {
		return 0
	}

	return hwm
}
