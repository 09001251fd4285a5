package presentation

import "math"

// ViewConfig holds the map's zoom constants.
type ViewConfig struct {
	MinZoom      float64 `json:"min_zoom"`
	MaxZoom      float64 `json:"max_zoom"`
	LabelMinZoom float64 `json:"label_min_zoom"`
	ZoomStep     float64 `json:"zoom_step"`
}

// DefaultViewConfig returns the constants the map ships with.
func DefaultViewConfig() ViewConfig {
	return ViewConfig{
		MinZoom:      0.5,
		MaxZoom:      5,
		LabelMinZoom: 1.5,
		ZoomStep:     1.5,
	}
}

// Clamp limits k to the zoom range.
func (v ViewConfig) Clamp(k float64) float64 {
	return math.Min(math.Max(k, v.MinZoom), v.MaxZoom)
}

// ZoomIn returns the next scale up from k.
func (v ViewConfig) ZoomIn(k float64) float64 {
	return math.Min(k*v.ZoomStep, v.MaxZoom)
}

// ZoomOut returns the next scale down from k.
func (v ViewConfig) ZoomOut(k float64) float64 {
	return math.Max(k/v.ZoomStep, v.MinZoom)
}

// LabelsVisible reports whether parcel labels are drawn at scale k.
func (v ViewConfig) LabelsVisible(k float64) bool {
	return k >= v.LabelMinZoom
}

// FocusScale is the scale used when centering on a search hit from scale k.
func (v ViewConfig) FocusScale(k float64) float64 {
	return math.Max(v.MinZoom*2, k)
}
