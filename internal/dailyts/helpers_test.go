package dailyts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// dailyCSV renders a daily crop file covering [from, to] inclusive. ETpot
// is 5, ETact 4 and ETbas 3 every day, except ETpot is 0 on Jan 1.
func dailyCSV(cropName string, from, to time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Crop 03 - %s\n", cropName)
	b.WriteString("# generated for tests\n")
	b.WriteString("Date,DOY,PMETo,PPT,ETact,ETpot,ETbas,Irrigation,Season,Runoff,DPerc\n")
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		etpot := "5"
		if d.YearDay() == 1 {
			etpot = "0"
		}
		fmt.Fprintf(&b, "%s,%d,6,1,4,%s,3,0.5,1,0,0\n", d.Format("2006-01-02"), d.YearDay(), etpot)
	}
	return b.String()
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// records builds one record per day in [from, to].
func records(from, to time.Time) []Record {
	var out []Record
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, Record{Date: d, DOY: d.YearDay(), ETact: 4, ETpot: 5, ETbas: 3, Kc: 0.8, Kcb: 0.6})
	}
	return out
}
