// Package server implements the HTTP surface of spec §6 over the
// attribution.Engine facade, following the teacher's plain net/http +
// encoding/json handler style (pkg/api/valuation/handler.go) rather
// than a web framework.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/b2b-attribution/engine/internal/attribution"
	"github.com/b2b-attribution/engine/internal/domain"
)

// Handler wires the attribution engine to the HTTP surface of spec §6.
type Handler struct {
	engine *attribution.Engine
}

// NewHandler constructs a Handler bound to an engine instance.
func NewHandler(engine *attribution.Engine) *Handler {
	return &Handler{engine: engine}
}

// Register attaches every route of spec §6 to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/attribution/b2b/calculate", h.handleCalculate)
	mux.HandleFunc("/attribution/b2b/channel-insights", h.handleChannelInsights)
	mux.HandleFunc("/attribution/b2b/alignment-report", h.handleAlignmentReport)
	mux.HandleFunc("/attribution/b2b/touchpoint-types", h.handleTouchpointTypes)
	mux.HandleFunc("/attribution/b2b/model-info", h.handleModelInfo)
	mux.HandleFunc("/attribution/calculate", h.handleLegacyCalculate)
	mux.HandleFunc("/attribution/b2b/calculate/progress", h.HandleCalculateProgress)
}

type envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, e envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(e); err != nil {
		log.Printf("[SERVER] failed to encode response: %v", err)
	}
}

func writeSuccess(w http.ResponseWriter, data any, message string) {
	writeJSON(w, http.StatusOK, envelope{Status: "success", Data: data, Message: message})
}

func writeError(w http.ResponseWriter, err error) {
	var fe *attribution.FacadeError
	if errors.Is(err, attribution.ErrCancelled) {
		writeJSON(w, http.StatusRequestTimeout, envelope{Status: "cancelled", Message: "request cancelled"})
		return
	}
	if errors.As(err, &fe) {
		switch fe.Class {
		case attribution.ClassValidation:
			writeJSON(w, http.StatusBadRequest, envelope{Status: "error", Message: fe.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, envelope{Status: "error", Message: fe.Error()})
		}
		return
	}
	writeJSON(w, http.StatusInternalServerError, envelope{Status: "error", Message: err.Error()})
}

// requestBody is the JSON body common to all three POST endpoints.
type requestBody struct {
	AccountIDs         []string           `json:"account_ids,omitempty"`
	DateFrom           *civilDate         `json:"date_from,omitempty"`
	DateTo             *civilDate         `json:"date_to,omitempty"`
	AttributionWeights *domain.CombineWeights `json:"attribution_weights,omitempty"`
}

// civilDate decodes a calendar date (YYYY-MM-DD) per spec §6: "Dates
// are calendar dates (midnight start inclusive, end-of-day end
// inclusive)".
type civilDate struct {
	time.Time
}

func (d *civilDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (b requestBody) toCalculateRequest() attribution.CalculateRequest {
	req := attribution.CalculateRequest{AccountIDs: b.AccountIDs, Weights: b.AttributionWeights}
	if b.DateFrom != nil {
		from := b.DateFrom.Time
		req.DateFrom = &from
	}
	if b.DateTo != nil {
		// end-of-day inclusive
		to := b.DateTo.Time.Add(24*time.Hour - time.Nanosecond)
		req.DateTo = &to
	}
	return req
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, envelope{Status: "error", Message: "method not allowed"})
		return
	}

	var body requestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Status: "error", Message: "malformed request body: " + err.Error()})
		return
	}

	result, err := h.engine.CalculateAttribution(r.Context(), body.toCalculateRequest())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, result, "B2B attribution calculated successfully")
}

func (h *Handler) handleChannelInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, envelope{Status: "error", Message: "method not allowed"})
		return
	}

	var body requestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Status: "error", Message: "malformed request body: " + err.Error()})
		return
	}

	result, err := h.engine.ChannelInsights(r.Context(), body.toCalculateRequest())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, result, "Channel performance insights generated successfully")
}

func (h *Handler) handleAlignmentReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, envelope{Status: "error", Message: "method not allowed"})
		return
	}

	var body requestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Status: "error", Message: "malformed request body: " + err.Error()})
		return
	}

	result, err := h.engine.AlignmentReport(r.Context(), body.toCalculateRequest())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, result, "Sales-marketing alignment report generated successfully")
}

func (h *Handler) handleTouchpointTypes(w http.ResponseWriter, r *http.Request) {
	info := h.engine.ModelInfo()
	writeSuccess(w, map[string]any{
		"touchpoint_type_weights": info.TouchpointTypeWeights,
		"stage_weights":           info.StageWeights,
		"quality_multipliers":     info.QualityMultipliers,
	}, "")
}

func (h *Handler) handleModelInfo(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, h.engine.ModelInfo(), "")
}

// handleLegacyCalculate is spec §6's documented legacy endpoint:
// `POST /attribution/calculate?model_name=...` accepts query-string
// filters and routes to the B2B calculate path regardless of the
// model_name requested, logging a deprecation warning each call. This
// behavior is intentionally preserved as documented (see DESIGN.md
// Open Question).
func (h *Handler) handleLegacyCalculate(w http.ResponseWriter, r *http.Request) {
	modelName := r.URL.Query().Get("model_name")
	log.Printf("[DEPRECATED] /attribution/calculate?model_name=%s routed to B2B engine regardless of requested model", modelName)

	accountIDs := r.URL.Query()["account_ids"]
	req := attribution.CalculateRequest{AccountIDs: accountIDs}

	result, err := h.engine.CalculateAttribution(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, result, "B2B attribution calculated successfully (legacy route)")
}
