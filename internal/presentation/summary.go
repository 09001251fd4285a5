package presentation

import (
	"time"

	"github.com/couchcryptid/parcel-balance-map/internal/domain"
	"github.com/shopspring/decimal"
)

// Summary describes the published dataset as a whole.
type Summary struct {
	Records     int                 `json:"records"`
	WithBalance int                 `json:"with_balance"`
	InDebt      int                 `json:"in_debt"`
	MinBalance  float64             `json:"min_balance"`
	MaxBalance  float64             `json:"max_balance"`
	TotalDebt   decimal.Decimal     `json:"total_debt"`
	TotalCredit decimal.Decimal     `json:"total_credit"`
	BuiltAt     time.Time           `json:"built_at"`
	Stats       domain.DatasetStats `json:"stats"`

	Shapes              int `json:"shapes"`
	ShapesWithoutRecord int `json:"shapes_without_record"`
	RecordsWithoutShape int `json:"records_without_shape"`
}

// Summary totals the dataset. TotalDebt is the sum of negative balances as a
// positive amount; TotalCredit the sum of positive balances. Shape counts are
// zero until the map is loaded.
func (a *App) Summary() (Summary, error) {
	ds := a.Dataset()
	if ds == nil {
		return Summary{}, ErrNoDataset
	}

	s := Summary{
		Records:     ds.Len(),
		MinBalance:  ds.MinBalance(),
		MaxBalance:  ds.MaxBalance(),
		TotalDebt:   decimal.Zero,
		TotalCredit: decimal.Zero,
		BuiltAt:     ds.BuiltAt(),
		Stats:       ds.Stats(),
	}
	for _, id := range ds.OrderedByBalance() {
		rec, _ := ds.Lookup(id)
		s.WithBalance++
		b := decimal.NewFromFloat(*rec.Balance)
		switch b.Sign() {
		case -1:
			s.InDebt++
			s.TotalDebt = s.TotalDebt.Sub(b)
		case 1:
			s.TotalCredit = s.TotalCredit.Add(b)
		}
	}

	if shapes := a.Shapes(); shapes != nil {
		r := reconcile(ds, shapes)
		s.Shapes = shapes.Len()
		s.ShapesWithoutRecord = len(r.ShapesWithoutRecord)
		s.RecordsWithoutShape = len(r.RecordsWithoutShape)
	}
	return s, nil
}

// Reconciliation lists the ids that fail to join between map and sheet.
type Reconciliation struct {
	// ShapesWithoutRecord holds raw map ids with no spreadsheet row, in
	// document order without duplicates.
	ShapesWithoutRecord []string `json:"shapes_without_record"`
	// RecordsWithoutShape holds normalized ids with no shape on the map, in
	// spreadsheet order.
	RecordsWithoutShape []string `json:"records_without_shape"`
}

// Reconcile compares the map with the dataset. Both must be loaded.
func (a *App) Reconcile() (Reconciliation, error) {
	ds := a.Dataset()
	if ds == nil {
		return Reconciliation{}, ErrNoDataset
	}
	shapes := a.Shapes()
	if shapes == nil {
		return Reconciliation{}, ErrNoShapes
	}
	return reconcile(ds, shapes), nil
}

func reconcile(ds *domain.Dataset, shapes *Shapes) Reconciliation {
	r := Reconciliation{
		ShapesWithoutRecord: []string{},
		RecordsWithoutShape: []string{},
	}

	onMap := make(map[string]bool, shapes.Len())
	seen := make(map[string]bool, shapes.Len())
	for _, raw := range shapes.places {
		id := domain.NormalizePlaceID(raw)
		onMap[id] = true
		if _, ok := ds.Lookup(id); ok || seen[raw] {
			continue
		}
		seen[raw] = true
		r.ShapesWithoutRecord = append(r.ShapesWithoutRecord, raw)
	}

	for _, id := range ds.IDs() {
		if !onMap[id] {
			r.RecordsWithoutShape = append(r.RecordsWithoutShape, id)
		}
	}
	return r
}
