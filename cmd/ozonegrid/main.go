// Command ozonegrid tabulates estimated total-column ozone over a regular
// latitude/longitude grid for a single date and writes it as CSV.
//
// Usage:
//
//	go run ./cmd/ozonegrid \
//	  -date 2020-06-15 \
//	  -lat-step 10 \
//	  -lon-step 30 \
//	  -out data/grid_200615.csv
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/ozone-etl/ozone"
)

// gridOptions are the parsed command line flags.
type gridOptions struct {
	date    string
	latStep float64
	lonStep float64
	out     string
}

// gridPoint is one row of the output table.
type gridPoint struct {
	lat, lon float64
	ozone    float64
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	t, err := ozone.ParseTimestamp(opts.date)
	if err != nil {
		return fmt.Errorf("invalid -date: %w", err)
	}
	day := ozone.DayOfYear(t)

	points, err := computeGrid(opts.date, opts.latStep, opts.lonStep)
	if err != nil {
		return err
	}

	w := stdout
	if opts.out != "" {
		if err := os.MkdirAll(filepath.Dir(opts.out), 0o755); err != nil {
			return err
		}
		f, err := os.Create(opts.out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if err := writeCSV(w, points, day); err != nil {
		return fmt.Errorf("writing grid: %w", err)
	}

	lo, hi := extremes(points)
	log.Printf("day %d: %d points, ozone %.2f..%.2f matm-cm", day, len(points), lo.ozone, hi.ozone)
	log.Printf("minimum at lat=%g lon=%g, maximum at lat=%g lon=%g", lo.lat, lo.lon, hi.lat, hi.lon)
	if opts.out != "" {
		log.Printf("wrote grid: %s", opts.out)
	}
	return nil
}

func parseFlags(args []string) (gridOptions, error) {
	var opts gridOptions
	fs := flag.NewFlagSet("ozonegrid", flag.ContinueOnError)
	fs.StringVar(&opts.date, "date", "", "observation date, any common date format")
	fs.Float64Var(&opts.latStep, "lat-step", 10, "latitude spacing in degrees")
	fs.Float64Var(&opts.lonStep, "lon-step", 30, "longitude spacing in degrees")
	fs.StringVar(&opts.out, "out", "", "output CSV path (default stdout)")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.date == "" {
		fs.Usage()
		return opts, errors.New("missing required flag: -date")
	}
	if opts.latStep <= 0 || opts.latStep > 180 {
		return opts, fmt.Errorf("-lat-step must be in (0, 180], got %g", opts.latStep)
	}
	if opts.lonStep <= 0 || opts.lonStep > 360 {
		return opts, fmt.Errorf("-lon-step must be in (0, 360], got %g", opts.lonStep)
	}
	return opts, nil
}

// computeGrid evaluates every grid node with one batched estimate. Latitudes
// run from -90 to 90 and longitudes from -180 to 180, both inclusive when the
// step divides the range.
func computeGrid(date string, latStep, lonStep float64) ([]gridPoint, error) {
	latAxis := axis(-90, 90, latStep)
	lonAxis := axis(-180, 180, lonStep)

	lats := make([]float64, 0, len(latAxis)*len(lonAxis))
	lons := make([]float64, 0, len(latAxis)*len(lonAxis))
	for _, lat := range latAxis {
		for _, lon := range lonAxis {
			lats = append(lats, lat)
			lons = append(lons, lon)
		}
	}

	values, err := ozone.Estimate(ozone.Series(lats...), ozone.Series(lons...), ozone.Text(date))
	if err != nil {
		return nil, err
	}

	points := make([]gridPoint, len(values))
	for i, v := range values {
		points[i] = gridPoint{lat: lats[i], lon: lons[i], ozone: v}
	}
	return points, nil
}

// axis returns start, start+step, ... up to and including end. Values are
// computed by index so float error does not accumulate.
func axis(start, end, step float64) []float64 {
	var out []float64
	for i := 0; ; i++ {
		v := start + float64(i)*step
		if v > end+1e-9 {
			break
		}
		out = append(out, v)
	}
	return out
}

func writeCSV(w io.Writer, points []gridPoint, day int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"lat", "lon", "day_of_year", "ozone_matm_cm"}); err != nil {
		return err
	}
	dayText := strconv.Itoa(day)
	for _, p := range points {
		row := []string{
			strconv.FormatFloat(p.lat, 'f', -1, 64),
			strconv.FormatFloat(p.lon, 'f', -1, 64),
			dayText,
			strconv.FormatFloat(p.ozone, 'f', 4, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func extremes(points []gridPoint) (lo, hi gridPoint) {
	for i, p := range points {
		if i == 0 || p.ozone < lo.ozone {
			lo = p
		}
		if i == 0 || p.ozone > hi.ozone {
			hi = p
		}
	}
	return lo, hi
}
