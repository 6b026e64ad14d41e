package dailyts

import "sort"

// fullYearDays is the minimum number of days for a boundary year to be kept.
const fullYearDays = 365

// Window is the inclusive range of years retained from a series.
type Window struct {
	Start, End int
}

// FilterYears drops the first (spin-up) year, then drops the first and last
// remaining years when they have fewer than 365 days, then applies the
// optional start and end years (zero means unbounded). The returned window
// spans the years actually retained; ok is false when none are left.
func FilterYears(recs []Record, startYear, endYear int) (out []Record, w Window, ok bool) {
	if len(recs) == 0 {
		return nil, Window{}, false
	}

	counts := make(map[int]int)
	for _, r := range recs {
		counts[r.Year()]++
	}
	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)

	drop := map[int]bool{years[0]: true}
	if rest := years[1:]; len(rest) > 0 {
		first, last := rest[0], rest[len(rest)-1]
		if counts[first] < fullYearDays {
			drop[first] = true
		}
		if counts[last] < fullYearDays {
			drop[last] = true
		}
	}

	for _, r := range recs {
		y := r.Year()
		switch {
		case drop[y]:
		case startYear != 0 && y < startYear:
		case endYear != 0 && y > endYear:
		default:
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, Window{}, false
	}

	w = Window{Start: out[0].Year(), End: out[0].Year()}
	for _, r := range out[1:] {
		w.Start = min(w.Start, r.Year())
		w.End = max(w.End, r.Year())
	}
	return out, w, true
}
