package update

import (
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Ordering is the outcome of comparing two version strings. Indeterminate
// means at least one segment was not numeric; the caller falls back to plain
// tag equality in that case.
type Ordering int

const (
	OrderIndeterminate Ordering = iota
	OrderLess
	OrderEqual
	OrderGreater
)

func (o Ordering) String() string {
	switch o {
	case OrderLess:
		return "less"
	case OrderEqual:
		return "equal"
	case OrderGreater:
		return "greater"
	default:
		return "indeterminate"
	}
}

// CompareVersions orders a against b numerically, segment by segment.
// A leading v/V is ignored and missing trailing segments count as zero, so
// "v1.2" equals "1.2.0". Any segment that is not an integer degrades the
// whole comparison to OrderIndeterminate.
func CompareVersions(a, b string) Ordering {
	as := versionSegments(a)
	bs := versionSegments(b)
	if as == nil || bs == nil {
		return OrderIndeterminate
	}

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		var av, bv int
		if i < len(as) {
			av = as[i]
		}
		if i < len(bs) {
			bv = bs[i]
		}
		switch {
		case av < bv:
			return OrderLess
		case av > bv:
			return OrderGreater
		}
	}
	return OrderEqual
}

func versionSegments(v string) []int {
	v = strings.TrimSpace(v)
	if len(v) > 0 && (v[0] == 'v' || v[0] == 'V') {
		v = v[1:]
	}
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ".")
	segments := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil
		}
		segments[i] = n
	}
	return segments
}

// NormalizeTag parses a release tag into its semver form without the leading
// v, or returns "" when the tag is not a valid version. "v1.2" normalizes to
// "1.2.0".
func NormalizeTag(tag string) string {
	tag = strings.TrimSpace(tag)
	tag = strings.TrimPrefix(strings.TrimPrefix(tag, "v"), "V")
	if tag == "" {
		return ""
	}
	canonical := semver.Canonical("v" + tag)
	if canonical == "" {
		return ""
	}
	return strings.TrimPrefix(canonical, "v")
}
