package dailyts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// ErrNoFiles is returned when the input folder holds no daily crop files.
var ErrNoFiles = errors.New("no daily crop files found")

// Options controls one run over a project's daily output.
type Options struct {
	InputDir  string
	OutputDir string
	// StartYear and EndYear bound the retained years; zero means unbounded.
	StartYear int
	EndYear   int
	Selector  Selector
	Overwrite bool
}

// Output describes the artifacts written for one input file.
type Output struct {
	File        File
	CropName    string
	Window      Window
	SeriesPath  string
	SummaryPath string
	Summary     []YearSummary
}

// Report is the outcome of a run.
type Report struct {
	Outputs []Output
	Skipped int
}

// Processor runs the daily timeseries preparation.
type Processor struct {
	logger *slog.Logger
}

// NewProcessor creates a Processor.
func NewProcessor(logger *slog.Logger) *Processor {
	return &Processor{logger: logger}
}

// Run processes every selected file in opts.InputDir.
func (p *Processor) Run(ctx context.Context, opts Options) (Report, error) {
	if opts.StartYear != 0 && opts.EndYear != 0 && opts.EndYear < opts.StartYear {
		return Report{}, fmt.Errorf("end year %d is before start year %d", opts.EndYear, opts.StartYear)
	}
	if fi, err := os.Stat(opts.InputDir); err != nil || !fi.IsDir() {
		return Report{}, fmt.Errorf("input folder %s could not be found", opts.InputDir)
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return Report{}, fmt.Errorf("creating output folder: %w", err)
	}

	files, err := Discover(opts.InputDir)
	if err != nil {
		return Report{}, err
	}
	if len(files) == 0 {
		return Report{}, fmt.Errorf("%w in %s", ErrNoFiles, opts.InputDir)
	}

	var rep Report
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		log := p.logger.With("file", filepath.Base(f.Path), "station", f.Station, "crop", f.Crop)

		if ok, reason := opts.Selector.Include(f); !ok {
			log.Debug("skipping file", "reason", reason)
			rep.Skipped++
			continue
		}

		out, ok, err := p.processFile(f, opts, log)
		if err != nil {
			return rep, err
		}
		if !ok {
			rep.Skipped++
			continue
		}
		rep.Outputs = append(rep.Outputs, out)
	}
	return rep, nil
}

func (p *Processor) processFile(f File, opts Options, log *slog.Logger) (Output, bool, error) {
	s, err := ReadSeries(f.Path)
	if err != nil {
		return Output{}, false, err
	}
	log.Debug("read daily series", "crop_name", s.CropName, "days", len(s.Records))

	recs, w, ok := FilterYears(s.Records, opts.StartYear, opts.EndYear)
	if !ok {
		log.Warn("no complete years left after filtering, skipping")
		return Output{}, false, nil
	}

	name := OutputName(f.Station, f.Crop, w)
	out := Output{
		File:        f,
		CropName:    s.CropName,
		Window:      w,
		SeriesPath:  filepath.Join(opts.OutputDir, name+".csv"),
		SummaryPath: filepath.Join(opts.OutputDir, name+"_summary.csv"),
		Summary:     Summarize(recs),
	}

	if !opts.Overwrite && fileExists(out.SeriesPath) && fileExists(out.SummaryPath) {
		log.Info("output exists, keeping", "path", out.SeriesPath)
		return out, true, nil
	}
	if err := WriteSeries(out.SeriesPath, recs); err != nil {
		return Output{}, false, err
	}
	if err := WriteSummary(out.SummaryPath, out.Summary); err != nil {
		return Output{}, false, err
	}

	for _, y := range out.Summary {
		log.Info("year summary",
			"crop_name", s.CropName,
			"year", y.Year,
			"kc_mean", y.MeanKc,
			"kcb_mean", y.MeanKcb,
			"etact_mm", y.ETact,
			"ppt_mm", y.PPT,
			"irrigation_mm", y.Irrigation,
		)
	}
	return out, true, nil
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
