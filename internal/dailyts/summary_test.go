package dailyts

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSummarize(t *testing.T) {
	recs := records(day(2001, 12, 30), day(2002, 1, 2))
	recs[2].Kc, recs[2].Kcb = math.NaN(), math.NaN()
	recs[3].Kc, recs[3].Kcb = 1.0, 0.8
	for i := range recs {
		recs[i].PPT = float64(i)
		recs[i].Irrigation = 2
		recs[i].PMETo = 6
	}

	want := []YearSummary{
		{Year: 2001, Days: 2, MeanKc: 0.8, MeanKcb: 0.6, PMETo: 12, ETact: 8, ETpot: 10, PPT: 1, Irrigation: 4},
		{Year: 2002, Days: 2, MeanKc: 1.0, MeanKcb: 0.8, PMETo: 12, ETact: 8, ETpot: 10, PPT: 5, Irrigation: 4},
	}

	got := Summarize(recs)
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarize_AllUndefined(t *testing.T) {
	recs := records(day(2001, 1, 1), day(2001, 1, 1))
	recs[0].Kc, recs[0].Kcb = math.NaN(), math.NaN()

	want := []YearSummary{{Year: 2001, Days: 1, MeanKc: math.NaN(), MeanKcb: math.NaN(), ETact: 4, ETpot: 5}}
	got := Summarize(recs)
	if diff := cmp.Diff(want, got, cmpopts.EquateNaNs()); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarize_Empty(t *testing.T) {
	if got := Summarize(nil); len(got) != 0 {
		t.Fatalf("expected no summaries, got %d", len(got))
	}
}
