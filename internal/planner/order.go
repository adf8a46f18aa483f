package planner

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/backmassage/partsinstall/internal/naming"
)

// DefaultSortThreshold mirrors config.DefaultSortThreshold for callers that
// don't carry a Config.
const DefaultSortThreshold = 10

// PartNumber extracts the numeric suffix of path: the final extension is
// split on "." and the first segment that parses as a uint32 wins.
func PartNumber(path string) (uint32, error) {
	name, ok := naming.FileName(path)
	if !ok {
		return 0, fmt.Errorf("%s: %w", path, ErrNoPartNumber)
	}
	ext, ok := naming.Ext(name)
	if !ok {
		return 0, fmt.Errorf("%s: %w", naming.DisplayName(name), ErrNoPartNumber)
	}
	for _, seg := range strings.Split(ext, ".") {
		if n, ok := naming.ParseNumber(seg); ok {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%s: %w", naming.DisplayName(name), ErrNoPartNumber)
}

// ComparePartNumbers orders two paths by numeric suffix (x.7z.002 < x.7z.011).
func ComparePartNumbers(a, b string) (int, error) {
	na, err := PartNumber(a)
	if err != nil {
		return 0, err
	}
	nb, err := PartNumber(b)
	if err != nil {
		return 0, err
	}
	return cmp.Compare(na, nb), nil
}

// Order returns parts in ascending numeric order when there are more than
// threshold of them; otherwise parts are returned unchanged. A part without a
// numeric suffix makes the order undecidable and yields ErrNoPartNumber.
func Order(parts []Part, threshold int) ([]Part, error) {
	if threshold < 1 {
		threshold = DefaultSortThreshold
	}
	if len(parts) <= threshold {
		return parts, nil
	}
	for _, p := range parts {
		if !p.HasNumber {
			return nil, fmt.Errorf("cannot order %d parts: %s: %w",
				len(parts), naming.DisplayName(p.Name), ErrNoPartNumber)
		}
	}
	sorted := slices.Clone(parts)
	slices.SortStableFunc(sorted, func(a, b Part) int {
		return cmp.Compare(a.Number, b.Number)
	})
	return sorted, nil
}

// FinalExtension picks the archive extension out of a part's file name: the
// first dot-separated segment after the stem that is not purely numeric.
// App.7z.001 -> "7z". Empty segments are skipped.
func FinalExtension(name string) (string, error) {
	segs := strings.Split(name, ".")
	if ext, ok := firstNonNumeric(segs[1:]); ok {
		return ext, nil
	}
	return "", fmt.Errorf("%s: %w", naming.DisplayName(name), ErrNoExtension)
}

// partExtension is FinalExtension for a part named after appName. Dots inside
// the app name are part of the name: Test.App.7z.001 -> "7z". Names that
// merely start with appName (App-v2.7z.001) use the plain rule.
func partExtension(appName, name string) (string, error) {
	rest, ok := strings.CutPrefix(name, appName)
	if !ok || appName == "" || !strings.HasPrefix(rest, ".") {
		return FinalExtension(name)
	}
	if ext, ok := firstNonNumeric(strings.Split(rest, ".")); ok {
		return ext, nil
	}
	return "", fmt.Errorf("%s: %w", naming.DisplayName(name), ErrNoExtension)
}

func firstNonNumeric(segs []string) (string, bool) {
	for _, seg := range segs {
		if seg == "" {
			continue
		}
		if _, numeric := naming.ParseNumber(seg); !numeric {
			return seg, true
		}
	}
	return "", false
}
