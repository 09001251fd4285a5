package presentation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/couchcryptid/parcel-balance-map/internal/domain"
	"github.com/couchcryptid/parcel-balance-map/internal/observability"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func searchApp(numbers ...string) *App {
	var b strings.Builder
	b.WriteString("number,balance\n")
	for _, n := range numbers {
		fmt.Fprintf(&b, "%s,0\n", n)
	}
	app := NewApp(NewCachedScale(8, observability.NewMetricsForTesting()))
	app.PublishDataset(domain.BuildDataset(domain.ParseCSV(b.String())))
	return app
}

func suggestionNumbers(s []Suggestion) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = v.Number
	}
	return out
}

func TestSearch_OrdersByNumberThenCollation(t *testing.T) {
	app := searchApp("12в", "120", "12", "2", "12б", "Дом 12")

	got := suggestionNumbers(app.Search("12"))
	// "Дом 12" has no numeric prefix and sorts first as 0.
	want := []string{"Дом 12", "12", "12б", "12в", "120"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Search mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_MatchesNormalizedID(t *testing.T) {
	app := searchApp("12a", "13")

	// Cyrillic query matches the normalized id of a number typed with a Latin letter.
	hits := app.Search("12а")
	if assert.Len(t, hits, 1) {
		assert.Equal(t, "12а", hits[0].ID)
		assert.Equal(t, "12a", hits[0].Number)
	}
}

func TestSearch_CaseAndWhitespace(t *testing.T) {
	app := searchApp("7Б", "8")

	hits := app.Search("  7б ")
	assert.Equal(t, []string{"7Б"}, suggestionNumbers(hits))
}

func TestSearch_Limit(t *testing.T) {
	numbers := make([]string, 0, 120)
	for i := 120; i >= 1; i-- {
		numbers = append(numbers, fmt.Sprint(i))
	}
	app := searchApp(numbers...)

	hits := app.Search("1")
	assert.Len(t, hits, MaxSuggestions)
	assert.Equal(t, "1", hits[0].Number)
	assert.Equal(t, "10", hits[1].Number)
}

func TestSearch_EmptyAndMisses(t *testing.T) {
	app := searchApp("1", "2")

	assert.Empty(t, app.Search(""))
	assert.Empty(t, app.Search("   "))
	assert.Empty(t, app.Search("99"))
}

func TestNumericPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12a", 12},
		{"007", 7},
		{"", 0},
		{"а12", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, numericPrefix(tt.in), tt.in)
	}
}
