package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/HonzaMatousek/libdivecomputer/internal/logbook"
	"github.com/HonzaMatousek/libdivecomputer/internal/parser"
	"github.com/HonzaMatousek/libdivecomputer/pkg/divecomputer"
)

// APIResponse is the standard response envelope.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ImportRequest carries a hex-encoded memory dump and its decode options.
type ImportRequest struct {
	Hex         string    `json:"hex"`
	Family      string    `json:"family,omitempty"`
	DevTime     uint32    `json:"devtime,omitempty"`
	SysTime     time.Time `json:"systime,omitempty"`
	Atmospheric float64   `json:"atmospheric_pa,omitempty"`
	Hydrostatic float64   `json:"hydrostatic_pa_per_m,omitempty"`
}

// DiveSummary is the list representation of a dive without its samples.
type DiveSummary struct {
	ID          string    `json:"id"`
	Family      string    `json:"family"`
	ImportedAt  time.Time `json:"imported_at"`
	StartTime   time.Time `json:"start_time"`
	DiveTime    float64   `json:"dive_time_s"`
	MaxDepth    float64   `json:"max_depth_m"`
	SampleCount int       `json:"sample_count"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

func (s *Server) handleFamilies(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, parser.Families())
}

func (s *Server) handleImportDive(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Hex) == "" {
		sendError(w, "hex dump is required", http.StatusBadRequest)
		return
	}

	result, err := divecomputer.ParseHexWithOptions(req.Hex, divecomputer.ParseOptions{
		Family:      req.Family,
		DevTime:     req.DevTime,
		SysTime:     req.SysTime,
		Atmospheric: req.Atmospheric,
		Hydrostatic: req.Hydrostatic,
	})
	if err != nil {
		s.log.WithError(err).Warn("dump rejected")
		s.metrics.RecordImport(req.Family, false)
		sendError(w, fmt.Sprintf("decode dump: %v", err), http.StatusBadRequest)
		return
	}

	dive, err := logbook.FromResult(result)
	if err != nil {
		s.metrics.RecordImport(result.Family, false)
		sendError(w, fmt.Sprintf("convert result: %v", err), http.StatusInternalServerError)
		return
	}
	id, err := s.store.Put(dive)
	if err != nil {
		s.metrics.RecordImport(result.Family, false)
		sendError(w, fmt.Sprintf("store dive: %v", err), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordImport(result.Family, true)
	s.log.WithFields(logrus.Fields{
		"id":     id,
		"family": result.Family,
		"bytes":  result.ByteCount,
	}).Info("dive imported")
	sendSuccess(w, map[string]string{"id": id})
}

func (s *Server) handleListDives(w http.ResponseWriter, r *http.Request) {
	dives, err := s.store.List()
	if err != nil {
		sendError(w, fmt.Sprintf("list dives: %v", err), http.StatusInternalServerError)
		return
	}

	summaries := make([]DiveSummary, 0, len(dives))
	for _, dive := range dives {
		summaries = append(summaries, DiveSummary{
			ID:          dive.ID,
			Family:      dive.Family,
			ImportedAt:  dive.ImportedAt,
			StartTime:   dive.StartTime,
			DiveTime:    dive.DiveTime,
			MaxDepth:    dive.MaxDepth,
			SampleCount: len(dive.Samples),
		})
	}
	sendSuccess(w, summaries)
}

func (s *Server) handleGetDive(w http.ResponseWriter, r *http.Request) {
	dive, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, logbook.ErrNotFound) {
			sendError(w, err.Error(), http.StatusNotFound)
			return
		}
		sendError(w, fmt.Sprintf("load dive: %v", err), http.StatusInternalServerError)
		return
	}
	sendSuccess(w, dive)
}

func (s *Server) handleDeleteDive(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, logbook.ErrNotFound) {
			sendError(w, err.Error(), http.StatusNotFound)
			return
		}
		sendError(w, fmt.Sprintf("delete dive: %v", err), http.StatusInternalServerError)
		return
	}
	sendSuccess(w, map[string]string{"message": "dive deleted"})
}

func (s *Server) handleGetSamples(w http.ResponseWriter, r *http.Request) {
	dive, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, logbook.ErrNotFound) {
			sendError(w, err.Error(), http.StatusNotFound)
			return
		}
		sendError(w, fmt.Sprintf("load dive: %v", err), http.StatusInternalServerError)
		return
	}
	samples := dive.Samples
	if samples == nil {
		samples = []divecomputer.Sample{}
	}
	sendSuccess(w, samples)
}

// sendSuccess sends a successful JSON response.
func sendSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data})
}

// sendError sends an error JSON response.
func sendError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Success: false, Error: message})
}
