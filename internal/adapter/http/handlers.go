package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/couchcryptid/metarflow-service/internal/domain"
	"github.com/couchcryptid/metarflow-service/internal/view"
	"github.com/go-chi/chi/v5"
)

// maxDecodeBody caps the raw report accepted by POST /api/decode.
const maxDecodeBody = 4 << 10

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.renderPage(w, http.StatusOK, view.RenderIndex)
}

func (s *Server) handlePrivacy(w http.ResponseWriter, _ *http.Request) {
	s.renderPage(w, http.StatusOK, view.RenderPrivacy)
}

func (s *Server) handleFavicon(w http.ResponseWriter, _ *http.Request) {
	svg, err := view.Favicon()
	if err != nil {
		s.logger.Error("read favicon", "error", err)
		http.Error(w, "Favicon not available", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(svg) //nolint:errcheck // best-effort response
}

// handleMetar fetches and decodes the latest report for ?icao= and renders
// the results page.
func (s *Server) handleMetar(w http.ResponseWriter, r *http.Request) {
	station, err := domain.NormalizeStation(r.URL.Query().Get("icao"))
	if err != nil {
		s.renderError(w, http.StatusBadRequest, err.Error())
		return
	}

	raw, err := s.fetcher.FetchMETAR(r.Context(), station)
	if err != nil {
		s.logger.Warn("fetch metar failed", "station", station, "error", err)
		s.renderError(w, http.StatusInternalServerError, "Error fetching METAR: "+err.Error())
		return
	}

	report := domain.Decode(raw, station)
	s.metrics.ReportsDecoded.WithLabelValues("web").Inc()

	data := view.NewResultsData(report)
	s.renderPage(w, http.StatusOK, func(w io.Writer) error {
		return view.RenderResults(w, data)
	})
}

// handleAPIMetar fetches and decodes the latest report for {icao} as JSON.
func (s *Server) handleAPIMetar(w http.ResponseWriter, r *http.Request) {
	station, err := domain.NormalizeStation(chi.URLParam(r, "icao"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	raw, err := s.fetcher.FetchMETAR(r.Context(), station)
	if err != nil {
		s.logger.Warn("fetch metar failed", "station", station, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "Error fetching METAR: " + err.Error()})
		return
	}

	s.metrics.ReportsDecoded.WithLabelValues("api").Inc()
	writeJSON(w, http.StatusOK, domain.Decode(raw, station))
}

// handleAPIDecode decodes a raw report posted in the request body. The
// optional ?station= query is validated like any ICAO code and used as the
// station hint.
func (s *Server) handleAPIDecode(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDecodeBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "report body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "read request body"})
		return
	}

	text := string(bytes.TrimSpace(body))
	if text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": domain.ErrEmptyReport.Error()})
		return
	}

	var station string
	if hint := r.URL.Query().Get("station"); strings.TrimSpace(hint) != "" {
		station, err = domain.NormalizeStation(hint)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}

	s.metrics.ReportsDecoded.WithLabelValues("api").Inc()
	writeJSON(w, http.StatusOK, domain.Decode(text, station))
}

func (s *Server) renderError(w http.ResponseWriter, status int, message string) {
	s.renderPage(w, status, func(w io.Writer) error {
		return view.RenderError(w, message)
	})
}

// renderPage buffers the page so a template failure still yields a clean 500.
func (s *Server) renderPage(w http.ResponseWriter, status int, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		s.logger.Error("render page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w) //nolint:errcheck // best-effort response
}
