package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_ReferenceTablePasses(t *testing.T) {
	var out bytes.Buffer
	code := run(filepath.Join("testdata", "reference.csv"), 0.001, &out)

	assert.Equal(t, 0, code, out.String())
	assert.Contains(t, out.String(), "All validations passed.")
	assert.Contains(t, out.String(), "Rows: 9 checked")
}

func TestRun_MismatchFails(t *testing.T) {
	path := writeTable(t, "lat,lon,timestamp,expected\n"+
		"0,0,2020-01-01,235\n"+
		"-45.038,169.684,2024-07-01,300.0\n")

	var out bytes.Buffer
	code := run(path, 0.001, &out)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "Validation FAILED.")
	assert.Contains(t, out.String(), "line 3")
	assert.Contains(t, out.String(), "expected 300.000000")
}

func TestRun_LooseToleranceAcceptsRoundedValues(t *testing.T) {
	path := writeTable(t, "lat,lon,timestamp,expected\n"+
		"-45.038,169.684,2024-07-01,305.26\n")

	var out bytes.Buffer
	assert.Equal(t, 0, run(path, 0.01, &out), out.String())
	assert.Equal(t, 1, run(path, 0.001, &out))
}

func TestRun_BadTimestampIsReportedPerRow(t *testing.T) {
	path := writeTable(t, "lat,lon,timestamp,expected\n"+
		"0,0,2020-01-01,235\n"+
		"10,10,someday,300\n")

	var out bytes.Buffer
	code := run(path, 0.001, &out)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "line 3: ozone: parse timestamp")
	assert.NotContains(t, out.String(), "line 2:")
}

func TestRun_MissingFile(t *testing.T) {
	assert.Equal(t, 1, run(filepath.Join(t.TempDir(), "nope.csv"), 0.001, &bytes.Buffer{}))
}

func TestLoadTable(t *testing.T) {
	t.Run("invalid numbers are recorded and skipped", func(t *testing.T) {
		p := &phase{name: "parse"}
		rows, err := loadTable(strings.NewReader("lat,lon,timestamp,expected\n"+
			"north,0,2020-01-01,235\n"+
			"0,east,2020-01-01,235\n"+
			"0,0,2020-01-01,lots\n"+
			"1,2,2020-01-01,240\n"), p)

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 5, rows[0].lineNum)
		assert.Len(t, p.errors, 3)
	})

	t.Run("header order does not matter", func(t *testing.T) {
		p := &phase{}
		rows, err := loadTable(strings.NewReader("Expected,Timestamp,Lon,Lat\n235,2020-01-01,7,0\n"), p)

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 7.0, rows[0].lon)
		assert.True(t, p.passed())
	})

	t.Run("missing column is fatal", func(t *testing.T) {
		_, err := loadTable(strings.NewReader("lat,lon,expected\n0,0,235\n"), &phase{})
		assert.ErrorContains(t, err, `missing column "timestamp"`)
	})

	t.Run("header only is fatal", func(t *testing.T) {
		_, err := loadTable(strings.NewReader("lat,lon,timestamp,expected\n"), &phase{})
		assert.Error(t, err)
	})
}

func TestValidateBounds(t *testing.T) {
	p := validateBounds([]referenceRow{
		{lineNum: 2, lat: 0, expected: 235},
		{lineNum: 3, lat: 0, expected: 240},
		{lineNum: 4, lat: 10, expected: 500},
		{lineNum: 5, lat: -10, expected: 200},
	})

	require.Len(t, p.errors, 3)
	assert.Contains(t, p.errors[0], "line 3")
	assert.Contains(t, p.errors[1], "line 4")
	assert.Contains(t, p.errors[2], "line 5")
}
