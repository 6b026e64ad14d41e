// Command validate parses a crop parameter file and runs sanity checks over
// every crop: value ranges, initial versus maximum sizes, and season
// derivation. It prints a pass/fail report, optionally followed by the parsed
// records as JSON.
//
// Usage:
//
//	go run ./cmd/validate -file data/CropParams.txt [-json]
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/couchcryptid/cropet-service/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	path := flag.String("file", "", "path to the crop parameter file")
	dumpJSON := flag.Bool("json", false, "print the parsed records as JSON")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}
	os.Exit(run(*path, *dumpJSON))
}

func run(path string, dumpJSON bool) int {
	fmt.Println("=== Crop Parameter Validation ===")
	fmt.Println()

	table, err := domain.ReadCropParameters(path)
	if err != nil {
		if errors.Is(err, domain.ErrFormat) {
			fmt.Fprintf(os.Stderr, "FATAL: malformed crop parameter file: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		}
		return 2
	}

	phases := []*phase{
		validateRanges(table),
		validateGrowth(table),
		validateSeasons(table),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Crops: %d (ids %v)\n", table.Len(), table.IDs())

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if dumpJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(table.Records()); err != nil {
			fmt.Fprintf(os.Stderr, "encode records: %v\n", err)
			return 2
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}
