package agents

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the agent endpoints on the given router.
func RegisterRoutes(r chi.Router, orch *Orchestrator, planner *Planner) {
	r.Post("/api/agents/run", handleRun(orch))
	r.Post("/api/pipeline", handlePipeline(orch, planner))
}

type runRequest struct {
	Text           string   `json:"text"`
	SelectedAgents []string `json:"selectedAgents"`
}

type runResponse struct {
	Results *ResultSet `json:"results"`
	Skipped []string   `json:"skipped,omitempty"`
}

func handleRun(orch *Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req runRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			writeError(w, http.StatusBadRequest, "text is required")
			return
		}
		// An explicit empty selection is a caller mistake; running every
		// agent is only the default when the field is absent.
		if req.SelectedAgents != nil && len(req.SelectedAgents) == 0 {
			writeError(w, http.StatusBadRequest, "selectedAgents is empty; omit the field to run every agent")
			return
		}

		results, skipped, err := orch.FanOut(r.Context(), req.Text, req.SelectedAgents)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, runResponse{Results: results, Skipped: skipped})
	}
}

type pipelineRequest struct {
	Text string `json:"text"`
}

type pipelineResponse struct {
	Result    Result         `json:"result"`
	Plan      []PipelineStep `json:"plan"`
	Rationale string         `json:"rationale,omitempty"`
}

func handlePipeline(orch *Orchestrator, planner *Planner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pipelineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			writeError(w, http.StatusBadRequest, "text is required")
			return
		}

		steps, err := planner.Plan(r.Context(), req.Text)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		result, err := orch.RunPipeline(r.Context(), req.Text, steps)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, pipelineResponse{
			Result:    result,
			Plan:      steps,
			Rationale: planner.Rationale(r.Context(), steps),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
