// Package presentation is the boundary between the parcel core and whatever
// renders the map. App owns the currently published dataset and map shapes
// and answers every question the HTTP layer asks about them: colors,
// tooltips, search suggestions, summaries and reconciliation.
//
// Dataset and shapes are swapped atomically by the loader and never mutated
// afterwards, so all read methods are safe for concurrent use without locks.
// An absent dataset means "no color data": shapes render in the unknown
// color and searches return nothing.
package presentation

import (
	"errors"
	"sync/atomic"

	"github.com/couchcryptid/parcel-balance-map/internal/adapter/svgmap"
	"github.com/couchcryptid/parcel-balance-map/internal/domain"
)

var (
	// ErrNoDataset is returned when no balance dataset has been published yet.
	ErrNoDataset = errors.New("no dataset loaded")
	// ErrNoShapes is returned when the map SVG has not been loaded.
	ErrNoShapes = errors.New("no map shapes loaded")
	// ErrNotFound is returned when a parcel id has no record.
	ErrNotFound = errors.New("parcel not found")
)

// Shapes is a parsed map SVG: the document and the raw data-place ids it
// contains, in document order.
type Shapes struct {
	svg    []byte
	places []string
}

// NewShapes extracts parcel ids from an SVG document.
func NewShapes(svg []byte) (*Shapes, error) {
	places, err := svgmap.Places(svg)
	if err != nil {
		return nil, err
	}
	return &Shapes{svg: svg, places: places}, nil
}

// Places returns the raw parcel ids in document order.
func (s *Shapes) Places() []string {
	return append([]string(nil), s.places...)
}

// Len is the number of parcel shapes.
func (s *Shapes) Len() int { return len(s.places) }

// App is the application context shared by the HTTP handlers.
type App struct {
	dataset atomic.Pointer[domain.Dataset]
	shapes  atomic.Pointer[Shapes]
	scale   *CachedScale
	view    ViewConfig
}

// NewApp creates an empty App. Nothing is published until the loader runs.
func NewApp(scale *CachedScale) *App {
	return &App{scale: scale, view: DefaultViewConfig()}
}

// PublishDataset atomically replaces the dataset.
func (a *App) PublishDataset(ds *domain.Dataset) { a.dataset.Store(ds) }

// PublishShapes atomically replaces the map shapes.
func (a *App) PublishShapes(s *Shapes) { a.shapes.Store(s) }

// Dataset returns the published dataset or nil.
func (a *App) Dataset() *domain.Dataset { return a.dataset.Load() }

// Shapes returns the published shapes or nil.
func (a *App) Shapes() *Shapes { return a.shapes.Load() }

// View returns the map view constants.
func (a *App) View() ViewConfig { return a.view }

// ColorForPlace returns the fill for a raw shape id. Missing dataset, missing
// record and missing balance all give the unknown color.
func (a *App) ColorForPlace(raw string) domain.Color {
	rec, ok := a.Dataset().LookupRaw(raw)
	if !ok {
		return domain.UnknownColor
	}
	return a.scale.ColorFor(balanceOf(rec))
}

// ParcelView is everything the map shows for one parcel.
type ParcelView struct {
	ID      string              `json:"place_id"`
	Record  domain.ParcelRecord `json:"record"`
	Color   domain.Color        `json:"color"`
	Tooltip Tooltip             `json:"tooltip"`
}

// Parcel looks up a parcel by raw or normalized id.
func (a *App) Parcel(raw string) (ParcelView, error) {
	ds := a.Dataset()
	if ds == nil {
		return ParcelView{}, ErrNoDataset
	}
	id := domain.NormalizePlaceID(raw)
	rec, ok := ds.Lookup(id)
	if !ok {
		return ParcelView{}, ErrNotFound
	}
	return a.parcelView(id, rec), nil
}

// Parcels lists every parcel, most indebted first, followed by parcels
// without a balance in spreadsheet order.
func (a *App) Parcels() ([]ParcelView, error) {
	ds := a.Dataset()
	if ds == nil {
		return nil, ErrNoDataset
	}

	out := make([]ParcelView, 0, ds.Len())
	for _, id := range ds.OrderedByBalance() {
		rec, _ := ds.Lookup(id)
		out = append(out, a.parcelView(id, rec))
	}
	for _, id := range ds.IDs() {
		rec, _ := ds.Lookup(id)
		if !rec.HasBalance() {
			out = append(out, a.parcelView(id, rec))
		}
	}
	return out, nil
}

// Colors maps the normalized id of every shape on the map to its hex fill.
// Shapes without a record get the unknown color.
func (a *App) Colors() (map[string]string, error) {
	shapes := a.Shapes()
	if shapes == nil {
		return nil, ErrNoShapes
	}
	out := make(map[string]string, shapes.Len())
	for _, raw := range shapes.places {
		out[domain.NormalizePlaceID(raw)] = a.ColorForPlace(raw).Hex()
	}
	return out, nil
}

// ColoredSVG returns the map with every parcel that has a record filled in
// its balance color. Parcels without a record keep their original fill.
func (a *App) ColoredSVG() ([]byte, error) {
	shapes := a.Shapes()
	if shapes == nil {
		return nil, ErrNoShapes
	}
	ds := a.Dataset()
	return svgmap.Colorize(shapes.svg, func(raw string) (string, bool) {
		rec, ok := ds.LookupRaw(raw)
		if !ok {
			return "", false
		}
		return a.scale.ColorFor(balanceOf(rec)).Hex(), true
	})
}

func (a *App) parcelView(id string, rec domain.ParcelRecord) ParcelView {
	return ParcelView{
		ID:      id,
		Record:  rec,
		Color:   a.scale.ColorFor(balanceOf(rec)),
		Tooltip: NewTooltip(rec),
	}
}

// balanceOf returns the balance to color by, or nil when there is none.
func balanceOf(rec domain.ParcelRecord) *float64 {
	if !rec.HasBalance() {
		return nil
	}
	return rec.Balance
}
