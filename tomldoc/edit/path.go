package edit

import (
	"math"
	"strconv"
	"strings"
)

const (
	// Separator splits an address into path segments.
	Separator = "/"

	// ArrayOfTablesSentinel ends a table header path to append a new table
	// to an array of tables.
	ArrayOfTablesSentinel = "[[]]"

	// AppendSentinel ends a dotted path to push onto the array at that key.
	AppendSentinel = "[]"
)

// SplitPath splits an address into segments.
func SplitPath(p string) []string {
	return strings.Split(p, Separator)
}

// ParseIndex parses a segment as a non-negative array index.
func ParseIndex(seg string) (int, bool) {
	n, err := strconv.ParseUint(seg, 10, 64)
	if err != nil || n > math.MaxInt {
		return 0, false
	}
	return int(n), true
}

// splitLast separates the final segment from the rest.
func splitLast(segs []string) ([]string, string) {
	return segs[:len(segs)-1], segs[len(segs)-1]
}

// trimSentinel drops a trailing sentinel segment and reports whether it
// was there.
func trimSentinel(segs []string, sentinel string) ([]string, bool) {
	if n := len(segs); n > 0 && segs[n-1] == sentinel {
		return segs[:n-1], true
	}
	return segs, false
}

func childPath(path []string, seg string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, seg)
}
