package httpadapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/couchcryptid/parcel-balance-map/internal/adapter/legend"
	"github.com/couchcryptid/parcel-balance-map/internal/loader"
	"github.com/couchcryptid/parcel-balance-map/internal/presentation"
)

func (s *Server) handleParcel(w http.ResponseWriter, r *http.Request) {
	v, err := s.app.Parcel(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleParcels(w http.ResponseWriter, _ *http.Request) {
	views, err := s.app.Parcels()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleColors(w http.ResponseWriter, _ *http.Request) {
	colors, err := s.app.Colors()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, colors)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	hits := s.app.Search(r.URL.Query().Get("q"))
	if hits == nil {
		hits = []presentation.Suggestion{}
	}
	writeJSON(w, http.StatusOK, hits)
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	sum, err := s.app.Summary()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleReconcile(w http.ResponseWriter, _ *http.Request) {
	rec, err := s.app.Reconcile()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.app.View())
}

func (s *Server) handleMap(w http.ResponseWriter, _ *http.Request) {
	svg, err := s.app.ColoredSVG()
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(svg) //nolint:errcheck // client went away
}

// handleLegend renders the legend once; the color scale never changes.
func (s *Server) handleLegend() http.HandlerFunc {
	render := sync.OnceValues(func() ([]byte, error) {
		var buf bytes.Buffer
		if err := legend.WritePNG(&buf, legend.DefaultWidth, legend.DefaultHeight); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})

	return func(w http.ResponseWriter, _ *http.Request) {
		png, err := render()
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.Write(png) //nolint:errcheck // client went away
	}
}

type reloadResponse struct {
	Source        string  `json:"source"`
	Records       int     `json:"records"`
	Shapes        int     `json:"shapes"`
	Blank         int     `json:"blank_lines"`
	Malformed     int     `json:"malformed_lines"`
	DurationMS    float64 `json:"duration_ms"`
	DatasetError  string  `json:"dataset_error,omitempty"`
	ShapesError   string  `json:"shapes_error,omitempty"`
	SnapshotError string  `json:"snapshot_error,omitempty"`
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	res := s.reloader.Load(r.Context())

	resp := reloadResponse{
		Source:        res.Source,
		Records:       res.Records,
		Shapes:        res.Shapes,
		Blank:         res.ParseStats.Blank,
		Malformed:     res.ParseStats.Malformed,
		DurationMS:    float64(res.Duration.Microseconds()) / 1000,
		DatasetError:  errString(res.DatasetErr),
		ShapesError:   errString(res.ShapesErr),
		SnapshotError: errString(res.SnapshotErr),
	}

	status := http.StatusOK
	if res.Err() != nil {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, resp)
}

// writeError maps presentation errors to a status and a JSON body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, presentation.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, presentation.ErrNoDataset), errors.Is(err, presentation.ErrNoShapes):
		status = http.StatusServiceUnavailable
	default:
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

var _ Reloader = (*loader.Loader)(nil)
