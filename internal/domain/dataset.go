package domain

import (
	"math"
	"sort"
	"time"
)

// DatasetStats summarizes how a dataset was assembled.
type DatasetStats struct {
	Rows       int `json:"rows"`       // rows handed to the builder
	NoNumber   int `json:"no_number"`  // rows skipped for an empty number
	Collisions int `json:"collisions"` // rows that replaced an earlier row with the same id
	Records    int `json:"records"`    // distinct parcels
	NoBalance  int `json:"no_balance"` // records without a usable balance
}

// Dataset is the immutable, indexed result of one spreadsheet fetch.
type Dataset struct {
	records    map[string]ParcelRecord
	ids        []string // first-encounter order
	ordered    []string
	minBalance float64
	maxBalance float64
	builtAt    time.Time
	stats      DatasetStats
}

// BuildDataset assembles parsed rows into a Dataset keyed by normalized
// parcel id. Rows without a number are skipped and a later row replaces an
// earlier one with the same id. It never fails.
func BuildDataset(rows []Row) *Dataset {
	ds := &Dataset{
		records: make(map[string]ParcelRecord, len(rows)),
		builtAt: clock.Now(),
	}
	ds.stats.Rows = len(rows)

	minBalance := math.Inf(1)
	maxBalance := math.Inf(-1)

	for _, row := range rows {
		rec := RecordFromRow(row)
		if rec.Number == "" {
			ds.stats.NoNumber++
			continue
		}

		id := NormalizePlaceID(rec.Number)
		if _, exists := ds.records[id]; exists {
			ds.stats.Collisions++
		} else {
			ds.ids = append(ds.ids, id)
		}
		ds.records[id] = rec

		if rec.HasBalance() {
			minBalance = math.Min(minBalance, *rec.Balance)
			maxBalance = math.Max(maxBalance, *rec.Balance)
		}
	}

	if !math.IsInf(minBalance, 1) {
		ds.minBalance = minBalance
	}
	if !math.IsInf(maxBalance, -1) {
		ds.maxBalance = maxBalance
	}

	ds.ordered = make([]string, 0, len(ds.ids))
	for _, id := range ds.ids {
		if ds.records[id].HasBalance() {
			ds.ordered = append(ds.ordered, id)
		} else {
			ds.stats.NoBalance++
		}
	}
	sort.SliceStable(ds.ordered, func(i, j int) bool {
		return *ds.records[ds.ordered[i]].Balance < *ds.records[ds.ordered[j]].Balance
	})

	ds.stats.Records = len(ds.records)
	return ds
}

// Lookup returns the record for an already normalized id.
func (d *Dataset) Lookup(id string) (ParcelRecord, bool) {
	if d == nil {
		return ParcelRecord{}, false
	}
	rec, ok := d.records[id]
	return rec, ok
}

// LookupRaw normalizes a raw shape or spreadsheet id and looks it up.
func (d *Dataset) LookupRaw(raw string) (ParcelRecord, bool) {
	return d.Lookup(NormalizePlaceID(raw))
}

// Len returns the number of distinct parcels.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// IDs returns every normalized id in first-encounter order.
func (d *Dataset) IDs() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.ids...)
}

// OrderedByBalance returns ids with a usable balance, most indebted first.
// Equal balances keep their first-encounter order.
func (d *Dataset) OrderedByBalance() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.ordered...)
}

// MinBalance is the smallest balance seen, or 0 when there is none.
func (d *Dataset) MinBalance() float64 {
	if d == nil {
		return 0
	}
	return d.minBalance
}

// MaxBalance is the largest balance seen, or 0 when there is none.
func (d *Dataset) MaxBalance() float64 {
	if d == nil {
		return 0
	}
	return d.maxBalance
}

// BuiltAt is when the dataset was assembled.
func (d *Dataset) BuiltAt() time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.builtAt
}

// Stats reports how the dataset was assembled.
func (d *Dataset) Stats() DatasetStats {
	if d == nil {
		return DatasetStats{}
	}
	return d.stats
}

func validBalance(b *float64) bool {
	return b != nil && !math.IsNaN(*b) && !math.IsInf(*b, 0)
}
