package evaluator

import (
	"testing"

	"github.com/clinsafe/medreview-api/knowledge"
)

func TestPriorityValues(t *testing.T) {
	tests := []struct {
		kind     string
		severity knowledge.Severity
		want     int
	}{
		{KindContraindication, knowledge.SeverityCritical, 105}, // round(95 * 1.1)
		{KindContraindication, knowledge.SeverityMajor, 88},     // round(80 * 1.1)
		{KindInteraction, knowledge.SeverityCritical, 95},
		{KindInteraction, knowledge.SeverityMajor, 80},
		{KindInteraction, knowledge.SeverityModerate, 60},
		{KindInteraction, knowledge.SeverityMinor, 30},
		{KindDuplicateTherapy, knowledge.SeverityMajor, 64},    // round(80 * 0.8)
		{KindDuplicateTherapy, knowledge.SeverityModerate, 48}, // round(60 * 0.8)
	}

	for _, tt := range tests {
		if got := priorityFor(tt.kind, tt.severity); got != tt.want {
			t.Errorf("priorityFor(%s, %s) = %d, want %d", tt.kind, tt.severity, got, tt.want)
		}
	}
}

func TestPrioritizeRisksOrdering(t *testing.T) {
	interactions := []InteractionFinding{
		{MedicationA: "a", MedicationB: "b", Severity: knowledge.SeverityModerate, Confidence: 0.8},
		{MedicationA: "c", MedicationB: "d", Severity: knowledge.SeverityCritical, Confidence: 0.95},
	}
	duplicates := []DuplicateFinding{
		{TherapeuticClass: "analgesic", Severity: knowledge.SeverityModerate},
	}
	contraindications := []ContraindicationFinding{
		{Medication: "e", Severity: knowledge.SeverityCritical},
	}

	risks := PrioritizeRisks(interactions, duplicates, contraindications)
	if len(risks) != 4 {
		t.Fatalf("Expected 4 risk items, got %d", len(risks))
	}

	// 105 (contraindication critical), 95 (interaction critical),
	// 60 (interaction moderate), 48 (duplicate moderate).
	wantPriorities := []int{105, 95, 60, 48}
	for i, want := range wantPriorities {
		if risks[i].Priority != want {
			t.Errorf("risks[%d].Priority = %d, want %d", i, risks[i].Priority, want)
		}
	}
	if risks[0].Kind != KindContraindication {
		t.Errorf("Top risk kind = %s, want contraindication", risks[0].Kind)
	}
}

func TestPrioritizeRisksStableTies(t *testing.T) {
	// Two interactions of equal severity must keep generation order.
	interactions := []InteractionFinding{
		{MedicationA: "first", MedicationB: "x", Severity: knowledge.SeverityMajor},
		{MedicationA: "second", MedicationB: "y", Severity: knowledge.SeverityMajor},
	}
	risks := PrioritizeRisks(interactions, nil, nil)
	if len(risks) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(risks))
	}
	if got := risks[0].Description; got != "major interaction between first and x" {
		t.Errorf("Tie order broken, first item = %q", got)
	}
}

func TestSynthesizeRecommendations(t *testing.T) {
	risks := []RiskItem{
		{Priority: 105, Severity: knowledge.SeverityCritical, ActionRequired: "stop the combination"},
		{Priority: 80, Severity: knowledge.SeverityMajor, ActionRequired: "monitor INR"},
		{Priority: 64, Severity: knowledge.SeverityMajor, ActionRequired: "consolidate therapy"},
		{Priority: 48, Severity: knowledge.SeverityModerate, ActionRequired: "review"},
	}

	rec := SynthesizeRecommendations(risks, nil)
	// Priority >= 80 and severity critical/major: the first two items only
	// (the 64-priority major misses the threshold).
	if len(rec.ImmediateActions) != 2 {
		t.Fatalf("Expected 2 immediate actions, got %v", rec.ImmediateActions)
	}
	if rec.ImmediateActions[0] != "stop the combination" {
		t.Errorf("First action = %q", rec.ImmediateActions[0])
	}
	if len(rec.Monitoring) != 0 {
		t.Errorf("No patient context means no monitoring additions, got %v", rec.Monitoring)
	}
}

func TestSynthesizeRecommendationsPatientDriven(t *testing.T) {
	patient := &PatientContext{
		Demographics: &Demographics{Age: 78},
		Conditions:   []Condition{{Condition: "chronic kidney disease"}},
	}

	rec := SynthesizeRecommendations(nil, patient)
	if len(rec.Monitoring) != 2 {
		t.Fatalf("Expected elderly and renal monitoring entries, got %v", rec.Monitoring)
	}
}

func TestSummarizeReviewStatus(t *testing.T) {
	critical := RiskItem{Priority: 95, Severity: knowledge.SeverityCritical}
	major := RiskItem{Priority: 80, Severity: knowledge.SeverityMajor}
	moderate := RiskItem{Priority: 60, Severity: knowledge.SeverityModerate}

	tests := []struct {
		name       string
		risks      []RiskItem
		wantStatus string
		wantReview bool
	}{
		{"empty", nil, "low_risk", false},
		{"single moderate", []RiskItem{moderate}, "routine_review", false},
		{"single major", []RiskItem{major}, "routine_review", false},
		{"two majors", []RiskItem{major, major}, "high_priority", false},
		{"three majors", []RiskItem{major, major, major}, "high_priority", true},
		{"any critical", []RiskItem{moderate, critical}, "urgent", true},
		{"critical outranks majors", []RiskItem{critical, major, major}, "urgent", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.risks)
			if s.ReviewStatus != tt.wantStatus {
				t.Errorf("reviewStatus = %s, want %s", s.ReviewStatus, tt.wantStatus)
			}
			if s.RequiresPhysicianReview != tt.wantReview {
				t.Errorf("requiresPhysicianReview = %v, want %v", s.RequiresPhysicianReview, tt.wantReview)
			}
			if s.TotalFindings != len(tt.risks) {
				t.Errorf("totalFindings = %d, want %d", s.TotalFindings, len(tt.risks))
			}
		})
	}
}

func TestSummarizeRiskScore(t *testing.T) {
	s := Summarize(nil)
	if s.OverallRiskScore != 0 {
		t.Errorf("Empty risk score = %v, want 0", s.OverallRiskScore)
	}

	s = Summarize([]RiskItem{
		{Priority: 100, Severity: knowledge.SeverityCritical},
		{Priority: 50, Severity: knowledge.SeverityModerate},
	})
	if s.OverallRiskScore != 75 {
		t.Errorf("Risk score = %v, want 75", s.OverallRiskScore)
	}
	if s.SeverityCounts["critical"] != 1 || s.SeverityCounts["moderate"] != 1 {
		t.Errorf("Severity counts wrong: %v", s.SeverityCounts)
	}
}

func TestRequiresPhysicianReviewProperty(t *testing.T) {
	severities := []knowledge.Severity{
		knowledge.SeverityMinor, knowledge.SeverityModerate,
		knowledge.SeverityMajor, knowledge.SeverityCritical,
	}

	// Exhaustive small sets: every combination of 0-3 items.
	var build func(items []RiskItem, depth int)
	build = func(items []RiskItem, depth int) {
		s := Summarize(items)
		criticalCount := 0
		majorCount := 0
		for _, item := range items {
			switch item.Severity {
			case knowledge.SeverityCritical:
				criticalCount++
			case knowledge.SeverityMajor:
				majorCount++
			}
		}
		want := criticalCount > 0 || majorCount > 2
		if s.RequiresPhysicianReview != want {
			t.Errorf("items=%v: requiresPhysicianReview = %v, want %v",
				items, s.RequiresPhysicianReview, want)
		}
		if depth == 0 {
			return
		}
		for _, sev := range severities {
			build(append(items, RiskItem{Severity: sev}), depth-1)
		}
	}
	build(nil, 3)
}
