package dailyts

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
)

var seriesHeader = []string{
	"Date", "Year", "DOY", "PMETo", "ETact", "ETpot", "ETbas", "Kc", "Kcb",
	"PPT", "Irrigation", "Season", "Runoff", "DPerc",
}

var summaryHeader = []string{
	"Year", "Days", "Kc_mean", "Kcb_mean", "PMETo", "ETact", "ETpot", "PPT", "Irrigation",
}

// OutputName is the base name shared by a file's series and summary outputs.
func OutputName(station string, crop int, w Window) string {
	return fmt.Sprintf("%s_crop_%02d_%d-%d", station, crop, w.Start, w.End)
}

// WriteSeries writes the derived daily series. Undefined coefficients are
// written as empty cells.
func WriteSeries(path string, recs []Record) error {
	rows := make([][]string, 0, len(recs)+1)
	rows = append(rows, seriesHeader)
	for _, r := range recs {
		rows = append(rows, []string{
			r.Date.Format("2006-01-02"),
			strconv.Itoa(r.Year()),
			strconv.Itoa(r.DOY),
			formatFloat(r.PMETo),
			formatFloat(r.ETact),
			formatFloat(r.ETpot),
			formatFloat(r.ETbas),
			formatFloat(r.Kc),
			formatFloat(r.Kcb),
			formatFloat(r.PPT),
			formatFloat(r.Irrigation),
			formatFloat(r.Season),
			formatFloat(r.Runoff),
			formatFloat(r.DPerc),
		})
	}
	return writeCSV(path, rows)
}

// WriteSummary writes one row per year.
func WriteSummary(path string, sums []YearSummary) error {
	rows := make([][]string, 0, len(sums)+1)
	rows = append(rows, summaryHeader)
	for _, s := range sums {
		rows = append(rows, []string{
			strconv.Itoa(s.Year),
			strconv.Itoa(s.Days),
			formatFloat(s.MeanKc),
			formatFloat(s.MeanKcb),
			formatFloat(s.PMETo),
			formatFloat(s.ETact),
			formatFloat(s.ETpot),
			formatFloat(s.PPT),
			formatFloat(s.Irrigation),
		})
	}
	return writeCSV(path, rows)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
