package task

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRequestTimeout(t *testing.T) {
	tests := []struct {
		name        string
		constraints *Constraints
		want        time.Duration
	}{
		{"no constraints", nil, DefaultTimeout},
		{"zero timeout", &Constraints{TimeoutMs: 0}, DefaultTimeout},
		{"explicit timeout", &Constraints{TimeoutMs: 500}, 500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &Request{Constraints: tt.constraints}
			if got := req.Timeout(); got != tt.want {
				t.Errorf("Timeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDrugFieldUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantName string
		wantDose string
		wantErr  bool
	}{
		{"bare string", `"acetaminophen"`, "acetaminophen", "", false},
		{"object", `{"name": "acetaminophen", "dose": "500mg q6h"}`, "acetaminophen", "500mg q6h", false},
		{"object without dose", `{"name": "warfarin"}`, "warfarin", "", false},
		{"invalid", `42`, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d DrugField
			err := json.Unmarshal([]byte(tt.payload), &d)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if d.Name != tt.wantName || d.Dose != tt.wantDose {
				t.Errorf("DrugField = %+v, want {%s %s}", d, tt.wantName, tt.wantDose)
			}
		})
	}
}

func TestDosageInputEffectiveDose(t *testing.T) {
	in := &DosageInput{Drug: DrugField{Name: "x", Dose: "embedded"}}
	if got := in.EffectiveDose(); got != "embedded" {
		t.Errorf("EffectiveDose = %q, want embedded", got)
	}
	in.Dose = "top-level"
	if got := in.EffectiveDose(); got != "top-level" {
		t.Errorf("Top-level dose must win, got %q", got)
	}
}

func TestRequestEnvelopeRoundTrip(t *testing.T) {
	payload := `{
		"taskId": "t-1",
		"taskType": "medication_review",
		"input": {"medications": ["warfarin 5mg daily"]},
		"constraints": {"timeoutMs": 1000}
	}`

	var req Request
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if req.TaskID != "t-1" || req.TaskType != TypeReview {
		t.Errorf("Envelope fields wrong: %+v", req)
	}

	var input ReviewInput
	if err := json.Unmarshal(req.Input, &input); err != nil {
		t.Fatalf("Input decode failed: %v", err)
	}
	if len(input.Medications) != 1 || input.Medications[0].Text != "warfarin 5mg daily" {
		t.Errorf("Medications decoded wrong: %+v", input.Medications)
	}
}
