package handler

import (
	"encoding/json"
	"errors"
	"futured/internal/model"
	"futured/internal/riskmodel"
	"futured/internal/service"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// PredictionHandler handles risk prediction endpoints
type PredictionHandler struct {
	predictionSvc *service.PredictionService
	syncSvc       *service.SyncService
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(predictionSvc *service.PredictionService, syncSvc *service.SyncService) *PredictionHandler {
	return &PredictionHandler{
		predictionSvc: predictionSvc,
		syncSvc:       syncSvc,
	}
}

// Score handles POST /v1/score. The body is a raw survey document; the
// result is returned without being persisted. An optional ?policy= query
// selects the banding.
func (h *PredictionHandler) Score(w http.ResponseWriter, r *http.Request) {
	var doc model.SurveyDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	policy := model.BandPolicy(r.URL.Query().Get("policy"))
	assessment, err := h.predictionSvc.ScoreDocument(r.Context(), &doc, policy)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, assessment)
}

// Predict handles POST /v1/predictions/{enrollment}
func (h *PredictionHandler) Predict(w http.ResponseWriter, r *http.Request) {
	enrollment := mux.Vars(r)["enrollment"]

	assessment, err := h.predictionSvc.PredictByEnrollment(r.Context(), enrollment)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, assessment)
}

// Get handles GET /v1/predictions/{enrollment}
func (h *PredictionHandler) Get(w http.ResponseWriter, r *http.Request) {
	enrollment := mux.Vars(r)["enrollment"]

	assessment, err := h.predictionSvc.GetByEnrollment(r.Context(), enrollment)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, assessment)
}

// List handles GET /v1/predictions
func (h *PredictionHandler) List(w http.ResponseWriter, r *http.Request) {
	assessments, err := h.predictionSvc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"assessments": assessments,
		"total":       len(assessments),
	})
}

// Sync handles POST /v1/predictions/sync. The body is optional; an empty
// one runs the batch with defaults.
func (h *PredictionHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var opts model.SyncOptions
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		opts = model.SyncOptions{}
	}

	report, err := h.syncSvc.SyncAll(r.Context(), opts)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Top handles GET /v1/predictions/top?limit=N
func (h *PredictionHandler) Top(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	assessments, err := h.predictionSvc.TopAtRisk(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"assessments": assessments,
		"total":       len(assessments),
	})
}

// writeServiceError maps service sentinels onto HTTP statuses. Missing
// students, surveys, and assessments are distinct 404s so callers can
// tell which piece is absent.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, riskmodel.ErrModelNotReady):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrSurveyNotFound),
		errors.Is(err, service.ErrAssessmentNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
