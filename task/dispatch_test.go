package task

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/clinsafe/medreview-api/evaluator"
	"github.com/clinsafe/medreview-api/knowledge"
)

func reviewRequest(t *testing.T, medications ...string) *Request {
	t.Helper()
	input, err := json.Marshal(map[string]any{"medications": medications})
	if err != nil {
		t.Fatalf("Failed to build input: %v", err)
	}
	return &Request{TaskID: "t-review", TaskType: TypeReview, Input: input}
}

func dosageRequest(t *testing.T, drug, dose string) *Request {
	t.Helper()
	input, err := json.Marshal(map[string]any{
		"drug":           drug,
		"dose":           dose,
		"patientContext": map[string]any{"demographics": map[string]any{"age": 70, "weightKg": 70}},
	})
	if err != nil {
		t.Fatalf("Failed to build input: %v", err)
	}
	return &Request{TaskID: "t-dosage", TaskType: TypeDosage, Input: input}
}

func TestHandleReviewComplete(t *testing.T) {
	d := NewDispatcher(knowledge.NewContainer())

	resp := d.HandleReview(context.Background(), reviewRequest(t, "warfarin 5mg daily", "aspirin 325mg daily"))
	if resp.Status != StatusComplete {
		t.Fatalf("status = %s, want complete (error: %s)", resp.Status, resp.Error)
	}
	if resp.TaskID != "t-review" {
		t.Errorf("taskId = %s", resp.TaskID)
	}

	result, ok := resp.Result.(*evaluator.ReviewResult)
	if !ok {
		t.Fatalf("Result type = %T", resp.Result)
	}
	if result.Summary.ReviewStatus != "urgent" {
		t.Errorf("reviewStatus = %s, want urgent", result.Summary.ReviewStatus)
	}
	if resp.Metadata == nil || resp.Metadata.Source != Source || resp.Metadata.APIVersion != APIVersion {
		t.Errorf("Metadata incomplete: %+v", resp.Metadata)
	}
}

func TestHandleReviewValidationFailures(t *testing.T) {
	d := NewDispatcher(knowledge.NewContainer())

	tests := []struct {
		name    string
		req     *Request
		wantMsg string
	}{
		{
			name:    "wrong task type",
			req:     &Request{TaskType: TypeDosage, Input: json.RawMessage(`{}`)},
			wantMsg: "unsupported task type",
		},
		{
			name:    "empty medications",
			req:     reviewRequest(t),
			wantMsg: "at least one medication",
		},
		{
			name:    "malformed input",
			req:     &Request{TaskType: TypeReview, Input: json.RawMessage(`{"medications": "nope"}`)},
			wantMsg: "invalid review input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := d.HandleReview(context.Background(), tt.req)
			if resp.Status != StatusFailed {
				t.Fatalf("status = %s, want failed", resp.Status)
			}
			if !strings.Contains(resp.Error, tt.wantMsg) {
				t.Errorf("error = %q, want substring %q", resp.Error, tt.wantMsg)
			}
			if resp.Result != nil {
				t.Error("Failures must not carry a result payload")
			}
			if resp.TaskID == "" {
				t.Error("Missing task IDs must be generated")
			}
		})
	}
}

func TestHandleDosageComplete(t *testing.T) {
	d := NewDispatcher(knowledge.NewContainer())

	resp := d.HandleDosage(context.Background(), dosageRequest(t, "acetaminophen", "500mg q4-6h"))
	if resp.Status != StatusComplete {
		t.Fatalf("status = %s, want complete (error: %s)", resp.Status, resp.Error)
	}

	result, ok := resp.Result.(evaluator.DosageResult)
	if !ok {
		t.Fatalf("Result type = %T", resp.Result)
	}
	if result.RecommendedRange == nil || result.RecommendedRange.Min != 784 {
		t.Errorf("Recommended range wrong: %+v", result.RecommendedRange)
	}
	if resp.Metadata == nil || len(resp.Metadata.DecisionsMade) == 0 {
		t.Error("Dosage metadata should record the decisions made")
	}
}

func TestHandleDosageValidationFailures(t *testing.T) {
	d := NewDispatcher(knowledge.NewContainer())

	tests := []struct {
		name string
		req  *Request
	}{
		{"wrong task type", &Request{TaskType: TypeReview, Input: json.RawMessage(`{}`)}},
		{"missing drug", &Request{TaskType: TypeDosage, Input: json.RawMessage(`{"patientContext": {}}`)}},
		{"missing patient context", &Request{TaskType: TypeDosage, Input: json.RawMessage(`{"drug": "warfarin"}`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := d.HandleDosage(context.Background(), tt.req)
			if resp.Status != StatusFailed {
				t.Fatalf("status = %s, want failed", resp.Status)
			}
			if resp.Recommendations == nil {
				t.Error("Dosage failures must carry fallback recommendations")
			}
		})
	}
}

func TestHandleDosageTimeout(t *testing.T) {
	d := NewDispatcher(knowledge.NewContainer())

	// A context cancelled before dispatch deterministically exercises the
	// timeout path: the computation is never started.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp := d.HandleDosage(ctx, dosageRequest(t, "acetaminophen", "500mg q4-6h"))
	if resp.Status != StatusError {
		t.Fatalf("status = %s, want error", resp.Status)
	}
	if !strings.Contains(resp.Error, "timed out") {
		t.Errorf("error = %q, want a timeout message", resp.Error)
	}
	if resp.Result != nil {
		t.Error("Timeouts must not return partial results")
	}
	if resp.Recommendations == nil || resp.Recommendations.FollowUp == "" {
		t.Error("Timeout responses must carry fallback recommendations")
	}
}
