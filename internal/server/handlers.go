package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ukaji3/flatsheet-go/pkg/flatsheet"
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/approval"
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/models"
	"github.com/ukaji3/flatsheet-go/pkg/flatsheet/output"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getColumns(w http.ResponseWriter, r *http.Request) {
	table, ok := s.load(w, r)
	if !ok {
		return
	}
	data, err := output.ColumnsToJSON(table, false)
	if err != nil {
		logger(r).WithError(err).Error("failed to render columns")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) getRows(w http.ResponseWriter, r *http.Request) {
	table, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, table.Records())
}

// getSteps returns the approval step of ?stage=&role= for every row.
func (s *Server) getSteps(w http.ResponseWriter, r *http.Request) {
	stage := r.URL.Query().Get("stage")
	role := r.URL.Query().Get("role")
	if stage == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "stage is required"})
		return
	}

	table, ok := s.load(w, r)
	if !ok {
		return
	}
	steps := make([]approval.Step, 0, len(table.Rows))
	for _, rec := range table.Records() {
		if step, found := approval.StepFields(rec, stage, role); found {
			steps = append(steps, step)
		}
	}
	writeJSON(w, http.StatusOK, steps)
}

func (s *Server) load(w http.ResponseWriter, r *http.Request) (*models.Table, bool) {
	res, err := flatsheet.Flatten(s.input, s.opts)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, flatsheet.ErrFileNotFound) {
			status = http.StatusNotFound
		}
		logger(r).WithError(err).Error("failed to flatten workbook")
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return nil, false
	}
	return res.Table, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
