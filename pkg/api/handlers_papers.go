package api

import (
	"encoding/base64"
	"net/http"

	"github.com/google/uuid"

	"github.com/PlanningInsights2025/insightpress/pkg/errors"
	"github.com/PlanningInsights2025/insightpress/pkg/paper"
	"github.com/PlanningInsights2025/insightpress/pkg/render"
)

// PapersHandler handles paper generation endpoints.
type PapersHandler struct {
	hub       *Hub
	tracker   *StatsTracker
	renderCfg *render.Config
}

// NewPapersHandler creates a papers handler. renderCfg may be nil to use
// the engine defaults; hub may be nil when no WebSocket fanout is wanted.
func NewPapersHandler(hub *Hub, tracker *StatsTracker, renderCfg *render.Config) *PapersHandler {
	if tracker == nil {
		tracker = NewStatsTracker()
	}
	return &PapersHandler{
		hub:       hub,
		tracker:   tracker,
		renderCfg: renderCfg,
	}
}

// RegisterRoutes registers paper endpoints with the router.
func (h *PapersHandler) RegisterRoutes(router *Router) {
	router.GET("/api/health", h.HandleHealth)
	router.POST("/api/papers/generate", h.HandleGenerate)
	router.GET("/api/stats", h.HandleStats)
}

// healthResponse is the payload for GET /api/health.
type healthResponse struct {
	Status  string        `json:"status"`
	Service string        `json:"service"`
	Stats   StatsSnapshot `json:"stats"`
	Clients int           `json:"clients"`
}

// HandleHealth returns service status and generation totals.
// GET /api/health
func (h *PapersHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:  "ok",
		Service: "insightpress",
		Stats:   h.tracker.Snapshot(),
	}
	if h.hub != nil {
		resp.Clients = h.hub.ClientCount()
	}
	WriteJSON(w, http.StatusOK, resp)
}

// HandleStats returns generation totals.
// GET /api/stats
func (h *PapersHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.tracker.Snapshot())
}

// generateResponse is the payload for a successful generation.
type generateResponse struct {
	SubmissionID string `json:"submissionId"`
	FileName     string `json:"fileName"`
	MimeType     string `json:"mimeType"`
	Content      string `json:"content"` // base64-encoded PDF
	PageCount    int    `json:"pageCount"`
}

// HandleGenerate runs one layout pass over the posted paper.
// POST /api/papers/generate
//
// The body is a Paper JSON document. Document/validation failures map to
// 400, layout failures to 422. The PDF comes back base64-encoded so the
// envelope stays JSON end to end.
func (h *PapersHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var p paper.Paper
	if err := ReadJSON(r, &p); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "Failed to parse paper JSON")
		return
	}

	result := render.Generate(&p, h.renderCfg)
	if !result.Success {
		h.tracker.RecordFailure()
		if h.hub != nil {
			h.hub.BroadcastNotification(&NotificationData{
				Kind:    "error",
				Message: result.Error,
				Code:    result.Code,
			})
		}
		WriteError(w, failureStatus(result.Code), "generation_failed", result.Error)
		return
	}

	h.tracker.RecordSuccess(result.PageCount)

	submissionID := uuid.NewString()
	if h.hub != nil {
		snapshot := h.tracker.Snapshot()
		h.hub.BroadcastStats(&snapshot)
		h.hub.BroadcastActivity(&ActivityData{
			SubmissionID: submissionID,
			FileName:     result.FileName,
			PageCount:    result.PageCount,
			Title:        paper.Normalize(p.Title),
		})
	}

	WriteJSON(w, http.StatusOK, generateResponse{
		SubmissionID: submissionID,
		FileName:     result.FileName,
		MimeType:     "application/pdf",
		Content:      base64.StdEncoding.EncodeToString(result.Blob),
		PageCount:    result.PageCount,
	})
}

// failureStatus maps an engine failure code to an HTTP status.
func failureStatus(code string) int {
	switch errors.CodeCategory(code) {
	case errors.CategoryDocument, errors.CategoryValidation:
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}
