// Command dailykc prepares crop ET daily output for plotting. For every
// <station>_daily_crop_<NN>.csv file in the project's daily output folder it
// derives Kc and Kcb, trims partial years, and writes a daily series CSV and
// a per-year summary CSV.
//
// Usage:
//
//	go run ./cmd/dailykc \
//	  -ini project.ini \
//	  -start 2000-01-01 -end 2015-12-31 \
//	  -crops 1,3,7-9
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/couchcryptid/cropet-service/internal/config"
	"github.com/couchcryptid/cropet-service/internal/dailyts"
	"github.com/couchcryptid/cropet-service/internal/observability"
)

const dateLayout = "2006-01-02"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	iniPath := flag.String("ini", "", "project INI file")
	start := flag.String("start", "", "start date (YYYY-MM-DD); only the year is used")
	end := flag.String("end", "", "end date (YYYY-MM-DD); only the year is used")
	crops := flag.String("crops", "", "comma separated crop numbers and ranges to process, e.g. 1,3,5-7")
	skip := flag.String("skip", "44-46", "crop numbers to skip")
	overwrite := flag.Bool("overwrite", false, "rewrite outputs that already exist")
	debug := flag.Bool("debug", false, "debug level logging")
	flag.Parse()

	if *iniPath == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -ini")
	}

	logger := observability.NewCLILogger(*debug)

	project, err := config.LoadProject(*iniPath)
	if err != nil {
		return err
	}

	startYear, err := yearOf(*start)
	if err != nil {
		return fmt.Errorf("-start: %w", err)
	}
	endYear, err := yearOf(*end)
	if err != nil {
		return fmt.Errorf("-end: %w", err)
	}
	keep, err := dailyts.ParseIntSet(*crops)
	if err != nil {
		return fmt.Errorf("-crops: %w", err)
	}
	skipList, err := dailyts.ParseIntSet(*skip)
	if err != nil {
		return fmt.Errorf("-skip: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := dailyts.NewProcessor(logger).Run(ctx, dailyts.Options{
		InputDir:  project.DailyInputDir,
		OutputDir: project.OutputDir,
		StartYear: startYear,
		EndYear:   endYear,
		Selector:  dailyts.Selector{Keep: keep, Skip: skipList},
		Overwrite: *overwrite,
	})
	if err != nil {
		return err
	}

	log.Printf("wrote %d outputs to %s (%d files skipped)", len(report.Outputs), project.OutputDir, report.Skipped)
	return nil
}

// yearOf returns the year of a YYYY-MM-DD date, or 0 for an empty string.
func yearOf(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return 0, fmt.Errorf("date %q must be YYYY-MM-DD", s)
	}
	return t.Year(), nil
}
