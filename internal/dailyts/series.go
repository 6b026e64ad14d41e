package dailyts

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// Record is one day of crop ET output plus the derived coefficients.
type Record struct {
	Date       time.Time
	DOY        int
	PMETo      float64
	PPT        float64
	ETact      float64
	ETpot      float64
	ETbas      float64
	Irrigation float64
	Season     float64
	Runoff     float64
	DPerc      float64

	// Kc is ETact/ETpot and Kcb is ETbas/ETpot; NaN when ETpot is zero.
	Kc  float64
	Kcb float64
}

// Year returns the calendar year of the record.
func (r Record) Year() int { return r.Date.Year() }

// Series is the content of one daily crop file.
type Series struct {
	CropName string
	Records  []Record
}

var requiredColumns = []string{
	"Date", "DOY", "PMETo", "PPT", "ETact", "ETpot", "ETbas",
	"Irrigation", "Season", "Runoff", "DPerc",
}

var dateLayouts = []string{"2006-01-02", "2006/01/02", "1/2/2006", "2006-01-02 15:04:05"}

// ReadSeries reads a daily crop file and derives Kc and Kcb for every day.
func ReadSeries(path string) (Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return Series{}, err
	}
	defer f.Close()

	s, err := parseSeries(f)
	if err != nil {
		return Series{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func parseSeries(r io.Reader) (Series, error) {
	br := bufio.NewReader(r)
	first, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return Series{}, err
	}
	_, name, ok := strings.Cut(first, "-")
	if !ok {
		return Series{}, fmt.Errorf("first line %q has no crop name", strings.TrimSpace(first))
	}

	cr := csv.NewReader(br)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return Series{}, fmt.Errorf("reading header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return Series{}, fmt.Errorf("missing column %q", c)
		}
	}

	s := Series{CropName: strings.TrimSpace(name)}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Series{}, err
		}
		line, _ := cr.FieldPos(0)
		rec, err := parseRecord(row, cols)
		if err != nil {
			return Series{}, fmt.Errorf("line %d: %w", line+1, err)
		}
		s.Records = append(s.Records, rec)
	}
	return s, nil
}

func parseRecord(row []string, cols map[string]int) (Record, error) {
	var errs []error
	get := func(name string) string {
		i := cols[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	num := func(name string) float64 {
		v, err := strconv.ParseFloat(get(name), 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
		return v
	}

	rec := Record{
		PMETo:      num("PMETo"),
		PPT:        num("PPT"),
		ETact:      num("ETact"),
		ETpot:      num("ETpot"),
		ETbas:      num("ETbas"),
		Irrigation: num("Irrigation"),
		Season:     num("Season"),
		Runoff:     num("Runoff"),
		DPerc:      num("DPerc"),
	}
	rec.DOY = int(num("DOY"))
	date, err := parseDate(get("Date"))
	if err != nil {
		errs = append(errs, err)
	}
	rec.Date = date

	if err := errors.Join(errs...); err != nil {
		return Record{}, err
	}
	rec.Kc = ratio(rec.ETact, rec.ETpot)
	rec.Kcb = ratio(rec.ETbas, rec.ETpot)
	return rec, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("date %q: unrecognized format", s)
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return num / den
}
