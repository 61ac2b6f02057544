package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/sw33tLie/medimind/internal/utils"
	"github.com/sw33tLie/medimind/pkg/catalog"
	"github.com/sw33tLie/medimind/pkg/history"
	"github.com/sw33tLie/medimind/pkg/predictor"
	"github.com/sw33tLie/medimind/pkg/regions"
	"github.com/sw33tLie/medimind/pkg/report"
	"github.com/sw33tLie/medimind/pkg/session"
	"github.com/tidwall/gjson"
)

const exportFailedMessage = "Rapor indirilirken bir hata oluştu."

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.indexPage(q).Render(w); err != nil {
		utils.Log.Errorf("Rendering index: %v", err)
	}
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	if _, err := s.App.Select(r.FormValue("value")); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	back(w, r)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	s.App.Deselect(r.FormValue("value"))
	back(w, r)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.App.ClearSelection()
	back(w, r)
}

func (s *Server) handleRegion(w http.ResponseWriter, r *http.Request) {
	region, err := regions.Parse(r.FormValue("region"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.App.ToggleRegion(region)
	back(w, r)
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	// Failures surface through the session's error banner.
	if _, err := s.App.Submit(r.Context()); err != nil {
		utils.Log.Debugf("Submit: %v", err)
	}
	back(w, r)
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	if _, err := s.App.ToggleTheme(r.Context()); err != nil {
		utils.Log.Warnf("Could not save theme: %v", err)
	}
	back(w, r)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.App.ClearHistory(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	back(w, r)
}

func (s *Server) handleShowHistory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid history id", http.StatusBadRequest)
		return
	}
	if _, err := s.App.ShowHistory(id); err != nil {
		if errors.Is(err, history.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	back(w, r)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(path.Ext(r.URL.Path))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	// Rendered in full before anything is sent so a failure can still be
	// reported with a proper status.
	var buf bytes.Buffer
	if err := s.App.Export(r.Context(), &buf, format); err != nil {
		switch {
		case errors.Is(err, session.ErrNoResult):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, session.ErrExportBusy):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, exportFailedMessage, http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.App.ExportFilename(format)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	buf.WriteTo(w)
}

func (s *Server) handleAPISymptoms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	region, err := regions.Parse(q.Get("region"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	visible := catalog.Search(regions.Filter(region, s.App.Catalog()), q.Get("q"))
	writeJSON(w, http.StatusOK, visible)
}

// handleAPIPredict replaces the selection with the symptoms of the request
// body, {"symptoms": [...]}, and submits it.
func (s *Server) handleAPIPredict(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !gjson.ValidBytes(body) {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var values []string
	for _, v := range gjson.GetBytes(body, "symptoms").Array() {
		if v.String() != "" {
			values = append(values, v.String())
		}
	}
	if len(values) == 0 {
		writeJSONError(w, http.StatusBadRequest, session.ErrEmptySelection.Error())
		return
	}

	err = s.App.ReplaceSelection(values)
	var result *predictor.Result
	if err == nil {
		result, err = s.App.Submit(r.Context())
	}
	switch {
	case errors.Is(err, session.ErrUnknownSymptom):
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, session.ErrRequestInFlight):
		writeJSONError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeJSONError(w, http.StatusBadGateway, session.GenericErrorMessage)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAPIHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.App.History())
}

func (s *Server) handleAPIClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.App.ClearHistory(r.Context()); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
