package evaluator

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/clinsafe/medreview-api/knowledge"
)

func TestReviewWarfarinAspirin(t *testing.T) {
	engine := New(knowledge.Builtin())

	result, err := engine.Review(context.Background(), []MedicationInput{
		{Text: "warfarin 5mg daily"},
		{Text: "aspirin 325mg daily"},
	}, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(result.Interactions) != 1 {
		t.Fatalf("Expected 1 interaction, got %d", len(result.Interactions))
	}
	if result.Interactions[0].Severity != knowledge.SeverityCritical {
		t.Errorf("severity = %s, want critical", result.Interactions[0].Severity)
	}
	if result.Summary.ReviewStatus != "urgent" {
		t.Errorf("reviewStatus = %s, want urgent", result.Summary.ReviewStatus)
	}
	if !result.Summary.RequiresPhysicianReview {
		t.Error("Critical finding must require physician review")
	}
	if len(result.Recommendations.ImmediateActions) == 0 {
		t.Error("Critical interaction should produce an immediate action")
	}
}

func TestReviewEmptyListFails(t *testing.T) {
	engine := New(knowledge.Builtin())
	if _, err := engine.Review(context.Background(), nil, nil); !errors.Is(err, ErrNoMedications) {
		t.Errorf("Expected ErrNoMedications, got %v", err)
	}
}

func TestReviewCleanListIsLowRisk(t *testing.T) {
	engine := New(knowledge.Builtin())

	result, err := engine.Review(context.Background(), []MedicationInput{
		{Text: "levothyroxine 50mcg daily"},
	}, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Summary.ReviewStatus != "low_risk" {
		t.Errorf("reviewStatus = %s, want low_risk", result.Summary.ReviewStatus)
	}
	if result.Summary.OverallRiskScore != 0 {
		t.Errorf("riskScore = %v, want 0", result.Summary.OverallRiskScore)
	}
	if len(result.Medications) != 1 {
		t.Errorf("Medications should always be returned, got %d", len(result.Medications))
	}
}

func TestReviewCombinesAllFindingKinds(t *testing.T) {
	engine := New(knowledge.Builtin())
	patient := &PatientContext{
		Demographics: &Demographics{Age: 72},
		LabValues:    map[string]LabValue{"eGFR": {Value: 25}},
	}

	result, err := engine.Review(context.Background(), []MedicationInput{
		{Text: "warfarin 5mg daily"},
		{Text: "aspirin 81mg daily"},
		{Text: "clopidogrel 75mg daily"},
		{Text: "metformin 1000mg bid"},
	}, patient)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(result.Interactions) == 0 {
		t.Error("Expected interaction findings")
	}
	if len(result.Duplicates) == 0 {
		t.Error("Expected a duplicate antiplatelet cluster")
	}
	if len(result.Contraindications) == 0 {
		t.Error("Expected the metformin renal contraindication")
	}

	wantRisks := len(result.Interactions) + len(result.Duplicates) + len(result.Contraindications)
	if len(result.Risks) != wantRisks {
		t.Errorf("Risks = %d, want %d (all findings flattened)", len(result.Risks), wantRisks)
	}
	for i := 1; i < len(result.Risks); i++ {
		if result.Risks[i].Priority > result.Risks[i-1].Priority {
			t.Error("Risks must be sorted by priority, highest first")
		}
	}
	if len(result.Recommendations.Monitoring) == 0 {
		t.Error("Elderly patient should get monitoring recommendations")
	}
}

func TestReviewDeterministic(t *testing.T) {
	engine := New(knowledge.Builtin())
	inputs := []MedicationInput{
		{Text: "warfarin 5mg daily"},
		{Text: "aspirin 81mg daily"},
		{Text: "ibuprofen 400mg tid"},
		{Text: "acetaminophen 500mg qid"},
	}

	first, err := engine.Review(context.Background(), inputs, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for n := 0; n < 10; n++ {
		again, err := engine.Review(context.Background(), inputs, nil)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("Review output not deterministic:\n%s", diff)
		}
	}
}
