package evaluator

import (
	"fmt"
	"math"
	"sort"

	"github.com/clinsafe/medreview-api/knowledge"
)

// basePriority maps severity to the base risk score.
var basePriority = map[knowledge.Severity]float64{
	knowledge.SeverityCritical: 95,
	knowledge.SeverityMajor:    80,
	knowledge.SeverityModerate: 60,
	knowledge.SeverityMinor:    30,
}

// kindMultiplier weights finding kinds: contraindications outrank
// interactions, which outrank duplicate therapy.
var kindMultiplier = map[string]float64{
	KindContraindication: 1.1,
	KindInteraction:      1.0,
	KindDuplicateTherapy: 0.8,
}

// priorityFor derives the ranking key from kind and severity alone.
func priorityFor(kind string, severity knowledge.Severity) int {
	return int(math.Round(basePriority[severity] * kindMultiplier[kind]))
}

// PrioritizeRisks flattens the three finding kinds into RiskItems and sorts
// them by priority, highest first. Insertion order is interactions, then
// duplicates, then contraindications; the sort is stable so ties keep that
// order.
func PrioritizeRisks(interactions []InteractionFinding, duplicates []DuplicateFinding, contraindications []ContraindicationFinding) []RiskItem {
	var items []RiskItem

	for _, f := range interactions {
		items = append(items, RiskItem{
			Kind:           KindInteraction,
			Priority:       priorityFor(KindInteraction, f.Severity),
			Severity:       f.Severity,
			Description:    fmt.Sprintf("%s interaction between %s and %s", f.Severity, f.MedicationA, f.MedicationB),
			ClinicalImpact: f.ClinicalSignificance,
			ActionRequired: f.Management,
			Confidence:     f.Confidence,
		})
	}
	for _, f := range duplicates {
		names := make([]string, 0, len(f.Medications))
		for _, m := range f.Medications {
			names = append(names, m.DrugName)
		}
		items = append(items, RiskItem{
			Kind:           KindDuplicateTherapy,
			Priority:       priorityFor(KindDuplicateTherapy, f.Severity),
			Severity:       f.Severity,
			Description:    fmt.Sprintf("duplicate %s therapy: %s", f.TherapeuticClass, joinNames(names)),
			ClinicalImpact: "additive effects and cumulative toxicity risk",
			ActionRequired: f.Recommendation,
			Confidence:     0.85,
		})
	}
	for _, f := range contraindications {
		items = append(items, RiskItem{
			Kind:           KindContraindication,
			Priority:       priorityFor(KindContraindication, f.Severity),
			Severity:       f.Severity,
			Description:    fmt.Sprintf("%s contraindicated: %s (%s)", f.Medication, f.Reason, f.PatientFactor),
			ClinicalImpact: f.Reason,
			ActionRequired: f.Recommendation,
			Confidence:     0.95,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Priority > items[j].Priority
	})
	return items
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	out := names[0]
	for _, n := range names[1:] {
		out += ", " + n
	}
	return out
}

// SynthesizeRecommendations turns ranked risks and patient context into
// immediate actions and monitoring guidance. Patient-driven monitoring is
// appended independently of the risk list.
func SynthesizeRecommendations(risks []RiskItem, patient *PatientContext) Recommendations {
	var rec Recommendations

	for _, item := range risks {
		if item.Priority >= 80 && (item.Severity == knowledge.SeverityCritical || item.Severity == knowledge.SeverityMajor) {
			rec.ImmediateActions = append(rec.ImmediateActions, item.ActionRequired)
		}
	}

	if age, ok := patient.Age(); ok && age >= elderlyAge {
		rec.Monitoring = append(rec.Monitoring, "Periodic renal function monitoring recommended for elderly patient")
	}
	if patient.HasConditionContaining("kidney") || patient.HasConditionContaining("renal") {
		rec.Monitoring = append(rec.Monitoring, "Ongoing dose review required due to renal condition")
	}
	return rec
}

// Summarize computes the review-level statistics from the ranked risks.
func Summarize(risks []RiskItem) Summary {
	counts := map[string]int{}
	var total float64
	for _, item := range risks {
		counts[string(item.Severity)]++
		total += float64(item.Priority)
	}

	var score float64
	if len(risks) > 0 {
		score = round1(total / float64(len(risks)))
	}

	critical := counts[string(knowledge.SeverityCritical)]
	major := counts[string(knowledge.SeverityMajor)]

	status := "low_risk"
	switch {
	case critical > 0:
		status = "urgent"
	case major > 1:
		status = "high_priority"
	case len(risks) > 0:
		status = "routine_review"
	}

	return Summary{
		TotalFindings:           len(risks),
		SeverityCounts:          counts,
		OverallRiskScore:        score,
		ReviewStatus:            status,
		RequiresPhysicianReview: critical > 0 || major > 2,
	}
}
