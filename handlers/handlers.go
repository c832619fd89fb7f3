// Package handlers provides the HTTP handlers for the medication review API:
// the two task-envelope endpoints, knowledge lookups, and the health check.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clinsafe/medreview-api/knowledge"
	"github.com/clinsafe/medreview-api/logging"
	"github.com/clinsafe/medreview-api/task"
)

// RespondWithJSON writes a JSON response.
func RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error body.
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]string{"error": message})
}

// envelopeStatusCode maps a task response status to an HTTP code. Validation
// failures are client errors; timeouts map to gateway timeout.
func envelopeStatusCode(status string) int {
	switch status {
	case task.StatusComplete:
		return http.StatusOK
	case task.StatusError:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadRequest
	}
}

// PostReview handles POST /tasks/review with a medication_review envelope.
func PostReview(dispatcher *task.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req task.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			RespondWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		resp := dispatcher.HandleReview(r.Context(), &req)
		RespondWithJSON(w, envelopeStatusCode(resp.Status), resp)
	}
}

// PostDosage handles POST /tasks/dosage with a dosage_validation envelope.
func PostDosage(dispatcher *task.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req task.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			RespondWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		resp := dispatcher.HandleDosage(r.Context(), &req)
		RespondWithJSON(w, envelopeStatusCode(resp.Status), resp)
	}
}

// drugInfo is the knowledge lookup payload for one drug.
type drugInfo struct {
	Name                 string                       `json:"name"`
	DrugClass            string                       `json:"drugClass"`
	TherapeuticClass     string                       `json:"therapeuticClass"`
	InteractionPotential string                       `json:"interactionPotential"`
	Contraindications    []knowledge.Contraindication `json:"contraindications,omitempty"`
	Guideline            *knowledge.DosingGuideline   `json:"dosingGuideline,omitempty"`
}

// GetDrug handles GET /knowledge/drugs/{name}: the merged reference view of
// one drug.
func GetDrug(container *knowledge.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := knowledge.Canonical(chi.URLParam(r, "name"))
		if name == "" {
			RespondWithError(w, http.StatusBadRequest, "drug name is required")
			return
		}

		kb := container.Get()
		info := drugInfo{
			Name:                 name,
			DrugClass:            kb.DrugClass(name),
			TherapeuticClass:     kb.TherapeuticClass(name),
			InteractionPotential: kb.InteractionPotential(name),
			Contraindications:    kb.ContraindicationsFor(name),
		}
		if g, matched, ok := kb.FindGuideline(name); ok && matched == name {
			info.Guideline = &g
		}

		if info.DrugClass == "other" && info.TherapeuticClass == "other" &&
			info.Contraindications == nil && info.Guideline == nil {
			RespondWithError(w, http.StatusNotFound, fmt.Sprintf("no reference data for %q", name))
			return
		}
		RespondWithJSON(w, http.StatusOK, info)
	}
}

// GetInteraction handles GET /knowledge/interactions/{pair} where pair is
// "drugA,drugB". 404 means no rule exists for the pair.
func GetInteraction(container *knowledge.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pair := chi.URLParam(r, "pair")
		parts := strings.SplitN(pair, ",", 2)
		if len(parts) != 2 {
			RespondWithError(w, http.StatusBadRequest, "pair must be \"drugA,drugB\"")
			return
		}
		a := knowledge.Canonical(parts[0])
		b := knowledge.Canonical(parts[1])
		if a == "" || b == "" {
			RespondWithError(w, http.StatusBadRequest, "both drug names are required")
			return
		}

		kb := container.Get()
		in, ok := kb.FindInteraction(a, b, kb.DrugClass(a), kb.DrugClass(b))
		if !ok {
			RespondWithError(w, http.StatusNotFound, fmt.Sprintf("no interaction rule for %s and %s", a, b))
			return
		}
		RespondWithJSON(w, http.StatusOK, map[string]any{
			"drugA":       a,
			"drugB":       b,
			"interaction": in,
		})
	}
}

// HealthResponse is the health endpoint payload.
type HealthResponse struct {
	Status        string         `json:"status"`
	LastUpdate    string         `json:"last_update"`
	DataAgeHours  float64        `json:"data_age_hours"`
	UptimeSeconds float64        `json:"uptime_seconds"`
	Data          map[string]any `json:"data"`
	System        map[string]any `json:"system"`
}

// HealthCheck reports service health: knowledge freshness, table sizes and
// process statistics. Data older than 25 hours degrades the status.
func HealthCheck(container *knowledge.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		kb := container.Get()
		lastUpdate := container.LastUpdated()
		dataAge := time.Since(lastUpdate)
		uptime := time.Since(container.StartTime())

		healthStatus := "healthy"
		if dataAge > 25*time.Hour {
			healthStatus = "degraded"
		}

		response := HealthResponse{
			Status:        healthStatus,
			LastUpdate:    lastUpdate.Format(time.RFC3339),
			DataAgeHours:  dataAge.Hours(),
			UptimeSeconds: uptime.Seconds(),
			Data: map[string]any{
				"api_version":         task.APIVersion,
				"pair_interactions":   len(kb.PairInteractions),
				"class_interactions":  len(kb.ClassInteractions),
				"drug_classes":        len(kb.DrugClasses),
				"therapeutic_classes": len(kb.TherapeuticClasses),
				"guidelines":          len(kb.Guidelines),
				"is_updating":         container.IsUpdating(),
			},
			System: map[string]any{
				"goroutines": runtime.NumGoroutine(),
				"memory": map[string]any{
					"alloc_mb":       int(m.Alloc / 1024 / 1024),
					"total_alloc_mb": int(m.TotalAlloc / 1024 / 1024),
					"sys_mb":         int(m.Sys / 1024 / 1024),
					"num_gc":         m.NumGC,
				},
			},
		}
		RespondWithJSON(w, http.StatusOK, response)
	}
}
