package dailyts

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var dailyFileRE = regexp.MustCompile(`(?i)^(\w+)_daily_crop_(\d+)\.csv$`)

// File is one discovered daily output file.
type File struct {
	Path    string
	Station string
	Crop    int
}

// Discover lists the daily crop files in dir, sorted by path.
func Discover(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing daily files: %w", err)
	}

	var files []File
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := dailyFileRE.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		crop, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		files = append(files, File{Path: filepath.Join(dir, e.Name()), Station: m[1], Crop: crop})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// Selector decides which discovered files are processed.
type Selector struct {
	// Keep, when non-empty, limits processing to these crop numbers.
	Keep []int
	// Skip crop numbers are never processed.
	Skip []int
}

// DefaultSkip are crop numbers left out unless overridden.
var DefaultSkip = []int{44, 45, 46}

// Include reports whether f should be processed and, if not, why.
func (s Selector) Include(f File) (bool, string) {
	switch {
	case f.Station == "temp":
		return false, "temporary station"
	case contains(s.Skip, f.Crop):
		return false, "crop number in skip list"
	case len(s.Keep) > 0 && !contains(s.Keep, f.Crop):
		return false, "crop number not in keep list"
	}
	return true, ""
}

func contains(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// ParseIntSet parses a list such as "1,3,5-7" into sorted unique integers.
// An empty string yields an empty set.
func ParseIntSet(s string) ([]int, error) {
	seen := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		a, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid crop list entry %q", part)
		}
		b := a
		if isRange {
			if b, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, fmt.Errorf("invalid crop list entry %q", part)
			}
		}
		if b < a {
			a, b = b, a
		}
		for i := a; i <= b; i++ {
			seen[i] = true
		}
	}

	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Ints(out)
	return out, nil
}
