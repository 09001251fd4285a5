package presentation

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// MaxSuggestions caps the search result list.
const MaxSuggestions = 15

// Suggestion is one search hit.
type Suggestion struct {
	ID     string `json:"place_id"`
	Number string `json:"number"`
}

// Search returns parcels whose normalized id or spreadsheet number contains
// query, case-insensitively. Hits are ordered by the numeric part of the
// number, then by the number under Russian collation. An empty query or a
// missing dataset returns nothing.
func (a *App) Search(query string) []Suggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	ds := a.Dataset()
	if q == "" || ds == nil {
		return nil
	}

	var hits []Suggestion
	for _, id := range ds.IDs() {
		rec, _ := ds.Lookup(id)
		if strings.Contains(strings.ToLower(id), q) || strings.Contains(strings.ToLower(rec.Number), q) {
			hits = append(hits, Suggestion{ID: id, Number: rec.Number})
		}
	}

	// collate.Collator is not safe for concurrent use.
	col := collate.New(language.Russian)
	sort.SliceStable(hits, func(i, j int) bool {
		ni, nj := numericPrefix(hits[i].Number), numericPrefix(hits[j].Number)
		if ni != nj {
			return ni < nj
		}
		return col.CompareString(hits[i].Number, hits[j].Number) < 0
	})

	if len(hits) > MaxSuggestions {
		hits = hits[:MaxSuggestions]
	}
	return hits
}

// numericPrefix is the value of the leading digits of s, or 0 when there are
// none.
func numericPrefix(s string) float64 {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}
