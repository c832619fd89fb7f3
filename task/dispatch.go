package task

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinsafe/medreview-api/evaluator"
	"github.com/clinsafe/medreview-api/knowledge"
	"github.com/clinsafe/medreview-api/logging"
	"github.com/clinsafe/medreview-api/metrics"
)

// Dispatcher routes task envelopes to the evaluation engine. Each call binds
// to the container's current knowledge snapshot, so a background reload never
// splits one task across datasets.
type Dispatcher struct {
	container *knowledge.Container
	timeout   time.Duration
}

// NewDispatcher returns a Dispatcher over the shared knowledge container.
func NewDispatcher(container *knowledge.Container) *Dispatcher {
	return &Dispatcher{container: container, timeout: DefaultTimeout}
}

// WithTimeout overrides the default dosage budget applied when a request
// carries no explicit constraint.
func (d *Dispatcher) WithTimeout(t time.Duration) *Dispatcher {
	if t > 0 {
		d.timeout = t
	}
	return d
}

// normalizeTaskID fills in a generated ID when the request carries none, so
// every response is correlatable.
func normalizeTaskID(req *Request) string {
	if req.TaskID != "" {
		return req.TaskID
	}
	return uuid.NewString()
}

// HandleReview executes a medication_review task. Validation failures return
// a failed response; there is no timeout on this path.
func (d *Dispatcher) HandleReview(ctx context.Context, req *Request) *Response {
	start := time.Now()
	taskID := normalizeTaskID(req)

	fail := func(msg string) *Response {
		metrics.RecordEvaluation(TypeReview, StatusFailed, time.Since(start))
		return &Response{
			Status:           StatusFailed,
			TaskID:           taskID,
			Error:            msg,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		}
	}

	if req.TaskType != TypeReview {
		return fail(fmt.Sprintf("unsupported task type %q, expected %q", req.TaskType, TypeReview))
	}

	var input ReviewInput
	if err := json.Unmarshal(req.Input, &input); err != nil {
		return fail(fmt.Sprintf("invalid review input: %v", err))
	}
	if len(input.Medications) == 0 {
		return fail(evaluator.ErrNoMedications.Error())
	}

	engine := evaluator.New(d.container.Get())
	result, err := engine.Review(ctx, input.Medications, input.PatientContext)
	if err != nil {
		return fail(err.Error())
	}

	for _, risk := range result.Risks {
		metrics.RecordFinding(risk.Kind, string(risk.Severity))
	}
	metrics.RecordEvaluation(TypeReview, StatusComplete, time.Since(start))
	logging.Info("medication review completed",
		"task_id", taskID,
		"medications", len(result.Medications),
		"findings", result.Summary.TotalFindings,
		"review_status", result.Summary.ReviewStatus,
	)

	return &Response{
		Status:           StatusComplete,
		TaskID:           taskID,
		Result:           result,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		Metadata: &Metadata{
			ProcessingTimeMs: time.Since(start).Milliseconds(),
			Confidence:       reviewConfidence(result),
			Source:           Source,
			APIVersion:       APIVersion,
		},
	}
}

// reviewConfidence is the mean finding confidence, or a high default when the
// review is clean.
func reviewConfidence(result *evaluator.ReviewResult) float64 {
	if len(result.Risks) == 0 {
		return 0.95
	}
	var total float64
	for _, r := range result.Risks {
		total += r.Confidence
	}
	return total / float64(len(result.Risks))
}

// HandleDosage executes a dosage_validation task, racing the computation
// against the request's timeout budget. On timeout the response is an error
// with fallback recommendations, never a partial result.
func (d *Dispatcher) HandleDosage(ctx context.Context, req *Request) *Response {
	start := time.Now()
	taskID := normalizeTaskID(req)

	fallback := &FallbackRecommendations{
		FollowUp:    "Perform manual dosage review with a clinical pharmacist",
		Warnings:    []string{"automated dosage validation did not complete"},
		Limitations: []string{"no patient-adjusted range was computed"},
	}
	fail := func(status, msg string) *Response {
		metrics.RecordEvaluation(TypeDosage, status, time.Since(start))
		return &Response{
			Status:           status,
			TaskID:           taskID,
			Error:            msg,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
			Recommendations:  fallback,
		}
	}

	if req.TaskType != TypeDosage {
		return fail(StatusFailed, fmt.Sprintf("unsupported task type %q, expected %q", req.TaskType, TypeDosage))
	}

	var input DosageInput
	if err := json.Unmarshal(req.Input, &input); err != nil {
		return fail(StatusFailed, fmt.Sprintf("invalid dosage input: %v", err))
	}
	if input.Drug.Name == "" {
		return fail(StatusFailed, "drug is required")
	}
	if input.PatientContext == nil {
		return fail(StatusFailed, "patientContext is required")
	}

	timeout := req.Timeout()
	if req.Constraints == nil || req.Constraints.TimeoutMs <= 0 {
		timeout = d.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	engine := evaluator.New(d.container.Get())
	done := make(chan evaluator.DosageResult, 1)

	// The computation is CPU-only and effectively instantaneous; the race
	// is a safety net. Checking ctx before starting keeps an already
	// expired budget deterministic.
	if ctx.Err() == nil {
		go func() {
			done <- engine.ValidateDosage(input.Drug.Name, input.EffectiveDose(), input.PatientContext)
		}()
	}

	select {
	case result := <-done:
		metrics.RecordEvaluation(TypeDosage, StatusComplete, time.Since(start))
		logging.Info("dosage validation completed",
			"task_id", taskID,
			"drug", result.Drug,
			"status", result.Status,
		)
		return &Response{
			Status:           StatusComplete,
			TaskID:           taskID,
			Result:           result,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
			Metadata: &Metadata{
				ProcessingTimeMs: time.Since(start).Milliseconds(),
				Confidence:       result.Confidence,
				Source:           Source,
				APIVersion:       APIVersion,
				DecisionsMade:    decisionsFor(&result),
			},
		}
	case <-ctx.Done():
		logging.Warn("dosage validation timed out", "task_id", taskID, "timeout", timeout)
		return fail(StatusError, fmt.Sprintf("dosage validation timed out after %s", timeout))
	}
}

// decisionsFor summarizes the adjustment reasoning for response metadata.
func decisionsFor(result *evaluator.DosageResult) []string {
	var decisions []string
	if result.Adjustment != nil {
		decisions = append(decisions, result.Adjustment.Reasons...)
	}
	decisions = append(decisions, fmt.Sprintf("classified dose as %s", result.Status))
	return decisions
}
