package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		csv      string
		svg      string
		wantCode int
		contains []string
	}{
		{
			name:     "clean",
			csv:      "\ufeffnumber,balance\n12a,-10\n7,5\n",
			svg:      `<svg><path data-place="12А"/><path data-place="7"/></svg>`,
			wantCode: 0,
			contains: []string{"All validations passed.", "2 parcels, 2 shapes"},
		},
		{
			name:     "duplicates and unmatched",
			csv:      "number,balance\n12a,-10\n12А,5\n8,1,2\n3,0\n",
			svg:      `<svg><path data-place="12a"/><path data-place="44"/></svg>`,
			wantCode: 1,
			contains: []string{
				`number "12А" duplicates "12a"`,
				`shape "44" has no spreadsheet row`,
				`parcel "3" is not on the map`,
				"1 of 5 lines have a field count different from the header",
				"Validation FAILED.",
			},
		},
		{
			name:     "missing balance column",
			csv:      "number,size\n1,6\n",
			svg:      `<svg><path data-place="1"/></svg>`,
			wantCode: 1,
			contains: []string{`header has no "balance" column`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			csvPath := writeFile(t, dir, "balances.csv", tt.csv)
			svgPath := writeFile(t, dir, "map.svg", tt.svg)

			var out bytes.Buffer
			assert.Equal(t, tt.wantCode, run(&out, csvPath, svgPath))
			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}

func TestRun_BadSVG(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeFile(t, dir, "balances.csv", "number,balance\n1,0\n")
	svgPath := writeFile(t, dir, "map.svg", "<html/>")

	var out bytes.Buffer
	assert.Equal(t, 1, run(&out, csvPath, svgPath))
	assert.Contains(t, out.String(), "FATAL: parse SVG")
}
