package evaluator

import (
	"sort"

	"github.com/clinsafe/medreview-api/knowledge"
)

// CheckInteractions evaluates every unordered medication pair against the
// interaction rules and returns the findings sorted by severity, most severe
// first. The sort is stable so equal-severity findings keep pair order.
func CheckInteractions(k *knowledge.Knowledge, meds []Medication) []InteractionFinding {
	var findings []InteractionFinding
	for i := 0; i < len(meds); i++ {
		for j := i + 1; j < len(meds); j++ {
			a, b := meds[i], meds[j]
			in, ok := k.FindInteraction(a.DrugName, b.DrugName, a.DrugClass, b.DrugClass)
			if !ok {
				continue
			}
			findings = append(findings, InteractionFinding{
				MedicationA:          a.DrugName,
				MedicationB:          b.DrugName,
				Type:                 in.Type,
				Severity:             in.Severity,
				Mechanism:            in.Mechanism,
				ClinicalSignificance: in.ClinicalSignificance,
				Management:           in.Management,
				Confidence:           in.Confidence,
			})
		}
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Severity.Rank() > findings[j].Severity.Rank()
	})
	return findings
}
