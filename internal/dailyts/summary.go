package dailyts

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// YearSummary aggregates one year of a series. Means skip days where the
// coefficient is undefined.
type YearSummary struct {
	Year       int
	Days       int
	MeanKc     float64
	MeanKcb    float64
	PMETo      float64
	ETact      float64
	ETpot      float64
	PPT        float64
	Irrigation float64
}

// Summarize returns one summary per year, in year order. recs must be sorted
// by date.
func Summarize(recs []Record) []YearSummary {
	var out []YearSummary
	for start := 0; start < len(recs); {
		year := recs[start].Year()
		end := start
		for end < len(recs) && recs[end].Year() == year {
			end++
		}
		out = append(out, summarizeYear(year, recs[start:end]))
		start = end
	}
	return out
}

func summarizeYear(year int, recs []Record) YearSummary {
	kc := make([]float64, 0, len(recs))
	kcb := make([]float64, 0, len(recs))
	column := func(f func(Record) float64) []float64 {
		out := make([]float64, len(recs))
		for i, r := range recs {
			out[i] = f(r)
		}
		return out
	}
	for _, r := range recs {
		if !math.IsNaN(r.Kc) {
			kc = append(kc, r.Kc)
		}
		if !math.IsNaN(r.Kcb) {
			kcb = append(kcb, r.Kcb)
		}
	}

	return YearSummary{
		Year:       year,
		Days:       len(recs),
		MeanKc:     mean(kc),
		MeanKcb:    mean(kcb),
		PMETo:      floats.Sum(column(func(r Record) float64 { return r.PMETo })),
		ETact:      floats.Sum(column(func(r Record) float64 { return r.ETact })),
		ETpot:      floats.Sum(column(func(r Record) float64 { return r.ETpot })),
		PPT:        floats.Sum(column(func(r Record) float64 { return r.PPT })),
		Irrigation: floats.Sum(column(func(r Record) float64 { return r.Irrigation })),
	}
}

func mean(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return stat.Mean(x, nil)
}
