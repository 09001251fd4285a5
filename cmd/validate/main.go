// Command validate checks a balance spreadsheet export against the parcel map
// offline: CSV structure, duplicate parcel numbers after normalization, and
// how the spreadsheet joins to the map shapes.
//
// Usage:
//
//	go run ./cmd/validate -csv data/balances.csv -svg data/map.svg
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/couchcryptid/parcel-balance-map/internal/domain"
	"github.com/couchcryptid/parcel-balance-map/internal/observability"
	"github.com/couchcryptid/parcel-balance-map/internal/presentation"
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
	csvPath := flag.String("csv", "", "path to the balance spreadsheet CSV export")
	svgPath := flag.String("svg", "", "path to the parcel map SVG")
	flag.Parse()

	if *csvPath == "" || *svgPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(os.Stdout, *csvPath, *svgPath); code != 0 {
		os.Exit(code)
	}
}

func run(out io.Writer, csvPath, svgPath string) int {
	fmt.Fprintln(out, "=== Parcel Balance Map Validation ===")
	fmt.Fprintln(out)

	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(out, "FATAL: load CSV: %v\n", err)
		return 1
	}
	text := strings.TrimPrefix(string(raw), "\ufeff")

	svg, err := os.ReadFile(svgPath)
	if err != nil {
		fmt.Fprintf(out, "FATAL: load SVG: %v\n", err)
		return 1
	}
	shapes, err := presentation.NewShapes(svg)
	if err != nil {
		fmt.Fprintf(out, "FATAL: parse SVG: %v\n", err)
		return 1
	}

	rows, stats := domain.ParseCSVWithStats(text)
	ds := domain.BuildDataset(rows)

	app := presentation.NewApp(presentation.NewCachedScale(1, observability.NewMetricsForTesting()))
	app.PublishDataset(ds)
	app.PublishShapes(shapes)

	phases := []*phase{
		validateStructure(text, stats),
		validateNumbers(rows),
		validateJoin(app),
	}

	fmt.Fprintln(out)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Records: %d CSV rows, %d parcels, %d shapes, balances %.2f..%.2f\n",
		stats.Rows, ds.Len(), shapes.Len(), ds.MinBalance(), ds.MaxBalance())

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// ── Phases ──

func validateStructure(text string, stats domain.ParseStats) *phase {
	p := &phase{name: "CSV structure"}

	header := strings.SplitN(text, "\n", 2)[0]
	cols := make(map[string]bool)
	for _, h := range strings.Split(header, ",") {
		cols[strings.TrimSpace(h)] = true
	}
	for _, required := range []string{domain.ColNumber, domain.ColBalance} {
		if !cols[required] {
			p.errorf("header has no %q column", required)
		}
	}

	if stats.Malformed > 0 {
		p.errorf("%d of %d lines have a field count different from the header", stats.Malformed, stats.DataLines)
	}
	if stats.Rows == 0 {
		p.errorf("no data rows")
	}
	return p
}

func validateNumbers(rows []domain.Row) *phase {
	p := &phase{name: "Parcel numbers"}

	seen := make(map[string]string, len(rows))
	for i, row := range rows {
		rec := domain.RecordFromRow(row)
		if rec.Number == "" {
			p.errorf("row %d: empty number", i+1)
			continue
		}
		id := domain.NormalizePlaceID(rec.Number)
		if prev, ok := seen[id]; ok {
			p.errorf("row %d: number %q duplicates %q (both normalize to %q)", i+1, rec.Number, prev, id)
			continue
		}
		seen[id] = rec.Number
	}
	return p
}

func validateJoin(app *presentation.App) *phase {
	p := &phase{name: "Spreadsheet / map join"}

	rec, err := app.Reconcile()
	if err != nil {
		p.errorf("reconcile: %v", err)
		return p
	}
	for _, place := range rec.ShapesWithoutRecord {
		p.errorf("shape %q has no spreadsheet row", place)
	}
	for _, id := range rec.RecordsWithoutShape {
		p.errorf("parcel %q is not on the map", id)
	}
	return p
}
