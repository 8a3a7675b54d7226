// Command validate checks a reference table of ozone values against the
// model. Each row holds a location, an observation timestamp and the expected
// concentration in matm-cm. The whole table is recomputed in one batched
// estimate, and any row that differs by more than the tolerance is reported.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -table cmd/validate/testdata/reference.csv \
//	  -tolerance 0.001
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/ozone-etl/ozone"
)

// Bounds implied by the coefficient tables: the bracket term is always
// positive and at most 150+40+20.
const (
	minOzone = 235.0
	maxOzone = 445.0
)

var requiredColumns = []string{"lat", "lon", "timestamp", "expected"}

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// referenceRow is one parsed table row.
type referenceRow struct {
	lineNum   int
	lat, lon  float64
	timestamp string
	expected  float64
}

func main() {
	table := flag.String("table", "", "CSV reference table with lat,lon,timestamp,expected columns")
	tolerance := flag.Float64("tolerance", 0.001, "maximum absolute difference in matm-cm")
	flag.Parse()

	if *table == "" || *tolerance < 0 {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*table, *tolerance, os.Stdout); code != 0 {
		os.Exit(code)
	}
}

func run(tablePath string, tolerance float64, out io.Writer) int {
	fmt.Fprintln(out, "=== Ozone Reference Validation ===")
	fmt.Fprintln(out)

	f, err := os.Open(tablePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: open table: %v\n", err)
		return 1
	}
	defer f.Close()

	parsing := &phase{name: "Phase 1: Table Parsing"}
	rows, err := loadTable(f, parsing)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load table: %v\n", err)
		return 1
	}

	phases := []*phase{
		parsing,
		validateAgreement(rows, tolerance),
		validateBounds(rows),
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
	fmt.Fprintf(out, "Rows: %d checked, tolerance %g matm-cm\n", len(rows), tolerance)

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

// ── Data loading ──

// loadTable reads the reference CSV. Rows with unparseable numbers are
// recorded on p and skipped; a missing header column is fatal.
func loadTable(r io.Reader, p *phase) ([]referenceRow, error) {
	all, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(all) < 2 {
		return nil, fmt.Errorf("no data rows")
	}

	colIdx := map[string]int{}
	for i, h := range all[0] {
		colIdx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	rows := make([]referenceRow, 0, len(all)-1)
	for i, rec := range all[1:] {
		lineNum := i + 2
		get := func(col string) string {
			idx := colIdx[col]
			if idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}

		lat, errLat := strconv.ParseFloat(get("lat"), 64)
		lon, errLon := strconv.ParseFloat(get("lon"), 64)
		expected, errExp := strconv.ParseFloat(get("expected"), 64)
		switch {
		case errLat != nil:
			p.errorf("line %d: invalid lat %q", lineNum, get("lat"))
			continue
		case errLon != nil:
			p.errorf("line %d: invalid lon %q", lineNum, get("lon"))
			continue
		case errExp != nil:
			p.errorf("line %d: invalid expected %q", lineNum, get("expected"))
			continue
		}

		rows = append(rows, referenceRow{
			lineNum:   lineNum,
			lat:       lat,
			lon:       lon,
			timestamp: get("timestamp"),
			expected:  expected,
		})
	}
	return rows, nil
}

// ── Phase 2: Model Agreement ──

func validateAgreement(rows []referenceRow, tolerance float64) *phase {
	p := &phase{name: "Phase 2: Model Agreement"}
	if len(rows) == 0 {
		p.errorf("no valid rows to check")
		return p
	}

	lats := make([]float64, len(rows))
	lons := make([]float64, len(rows))
	stamps := make([]string, len(rows))
	for i, r := range rows {
		lats[i], lons[i], stamps[i] = r.lat, r.lon, r.timestamp
	}

	got, err := ozone.Estimate(ozone.Series(lats...), ozone.Series(lons...), ozone.Texts(stamps))
	if err != nil {
		// One bad timestamp fails the whole batch; fall back to per-row so
		// every offending line is reported.
		return validateAgreementByRow(p, rows, tolerance)
	}

	for i, r := range rows {
		compare(p, r, got[i], tolerance)
	}
	return p
}

func validateAgreementByRow(p *phase, rows []referenceRow, tolerance float64) *phase {
	for _, r := range rows {
		got, err := ozone.Estimate(ozone.Scalar(r.lat), ozone.Scalar(r.lon), ozone.Text(r.timestamp))
		if err != nil {
			p.errorf("line %d: %v", r.lineNum, err)
			continue
		}
		compare(p, r, got[0], tolerance)
	}
	return p
}

func compare(p *phase, r referenceRow, got, tolerance float64) {
	if diff := math.Abs(got - r.expected); diff > tolerance {
		p.errorf("line %d (lat=%g lon=%g %s): expected %.6f, got %.6f (diff %.6f)",
			r.lineNum, r.lat, r.lon, r.timestamp, r.expected, got, diff)
	}
}

// ── Phase 3: Physical Bounds ──
// Expected values outside the model's range cannot come from the model.

func validateBounds(rows []referenceRow) *phase {
	p := &phase{name: "Phase 3: Physical Bounds"}
	for _, r := range rows {
		if r.expected < minOzone || r.expected > maxOzone {
			p.errorf("line %d: expected %.6f outside [%g, %g]", r.lineNum, r.expected, minOzone, maxOzone)
		}
		if r.lat == 0 && r.expected != minOzone {
			p.errorf("line %d: equator row must be exactly %g, got %.6f", r.lineNum, minOzone, r.expected)
		}
	}
	return p
}
