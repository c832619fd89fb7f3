// Package task implements the envelope protocol spoken with the orchestrator:
// typed request/response wrappers around the evaluation engine, per-task
// timeout enforcement on the dosage path, and response metadata.
package task

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/clinsafe/medreview-api/evaluator"
)

// Task type sentinels. Requests carrying any other value are rejected before
// computation.
const (
	TypeReview = "medication_review"
	TypeDosage = "dosage_validation"
)

// Response statuses. Validation failures report "failed"; timeouts report
// "error" so callers can tell the two apart without parsing message text.
const (
	StatusComplete = "complete"
	StatusFailed   = "failed"
	StatusError    = "error"
)

const (
	// APIVersion is stamped into every response's metadata.
	APIVersion = "1.0"
	// Source identifies this engine in response metadata.
	Source = "medreview-rules-engine"
	// DefaultTimeout bounds the dosage validation race when the request
	// carries no constraint.
	DefaultTimeout = 2 * time.Second
)

// Constraints carries per-request execution limits.
type Constraints struct {
	TimeoutMs int `json:"timeoutMs,omitempty"`
}

// Request is the inbound envelope. Input is decoded per task type.
type Request struct {
	TaskID      string          `json:"taskId"`
	TaskType    string          `json:"taskType"`
	Input       json.RawMessage `json:"input"`
	Constraints *Constraints    `json:"constraints,omitempty"`
}

// Timeout resolves the effective budget for this request.
func (r *Request) Timeout() time.Duration {
	if r.Constraints != nil && r.Constraints.TimeoutMs > 0 {
		return time.Duration(r.Constraints.TimeoutMs) * time.Millisecond
	}
	return DefaultTimeout
}

// ReviewInput is the payload of a medication_review task.
type ReviewInput struct {
	Medications    []evaluator.MedicationInput `json:"medications"`
	PatientContext *evaluator.PatientContext   `json:"patientContext,omitempty"`
}

// DrugField accepts the dosage input's drug as either a bare name string or
// an object carrying name and proposed dose.
type DrugField struct {
	Name string
	Dose string
}

// UnmarshalJSON implements the string-or-object tolerance.
func (d *DrugField) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		d.Name = s
		d.Dose = ""
		return nil
	}
	var obj struct {
		Name string `json:"name"`
		Dose string `json:"dose"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("drug must be a string or an object with name and dose")
	}
	d.Name = obj.Name
	d.Dose = obj.Dose
	return nil
}

// MarshalJSON round-trips the structured form.
func (d DrugField) MarshalJSON() ([]byte, error) {
	if d.Dose == "" {
		return json.Marshal(d.Name)
	}
	return json.Marshal(struct {
		Name string `json:"name"`
		Dose string `json:"dose"`
	}{d.Name, d.Dose})
}

// DosageInput is the payload of a dosage_validation task.
type DosageInput struct {
	Drug           DrugField                 `json:"drug"`
	Dose           string                    `json:"dose,omitempty"`
	PatientContext *evaluator.PatientContext `json:"patientContext"`
}

// EffectiveDose prefers the top-level dose over one embedded in the drug
// object.
func (in *DosageInput) EffectiveDose() string {
	if in.Dose != "" {
		return in.Dose
	}
	return in.Drug.Dose
}

// Metadata describes how a successful result was produced.
type Metadata struct {
	ProcessingTimeMs int64    `json:"processingTimeMs"`
	Confidence       float64  `json:"confidence"`
	Source           string   `json:"source"`
	APIVersion       string   `json:"apiVersion"`
	DecisionsMade    []string `json:"decisionsMade,omitempty"`
}

// FallbackRecommendations guides the caller toward manual review when the
// dosage path fails.
type FallbackRecommendations struct {
	FollowUp    string   `json:"followUp"`
	Warnings    []string `json:"warnings"`
	Limitations []string `json:"limitations"`
}

// Response is the outbound envelope. Result is present only on success;
// Error only on failure. The dosage path attaches Recommendations even on
// failure.
type Response struct {
	Status           string                   `json:"status"`
	TaskID           string                   `json:"taskId"`
	Result           any                      `json:"result,omitempty"`
	Error            string                   `json:"error,omitempty"`
	ProcessingTimeMs int64                    `json:"processingTimeMs"`
	Metadata         *Metadata                `json:"metadata,omitempty"`
	Recommendations  *FallbackRecommendations `json:"recommendations,omitempty"`
}
