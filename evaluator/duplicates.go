package evaluator

import (
	"sort"
	"strings"

	"github.com/clinsafe/medreview-api/knowledge"
)

// CheckDuplicates clusters medications by therapeutic class and reports every
// class holding two or more entries. Unclassified ("other") medications never
// form a cluster. Clusters are emitted in sorted class-name order so output
// is deterministic.
func CheckDuplicates(k *knowledge.Knowledge, meds []Medication) []DuplicateFinding {
	clusters := make(map[string][]Medication)
	for _, med := range meds {
		class := k.TherapeuticClass(med.DrugName)
		if class == "other" {
			continue
		}
		clusters[class] = append(clusters[class], med)
	}

	classes := make([]string, 0, len(clusters))
	for class, members := range clusters {
		if len(members) >= 2 {
			classes = append(classes, class)
		}
	}
	sort.Strings(classes)

	var findings []DuplicateFinding
	for _, class := range classes {
		findings = append(findings, DuplicateFinding{
			TherapeuticClass: class,
			Medications:      clusters[class],
			Severity:         duplicateSeverity(class),
			Recommendation:   "Review for therapeutic duplication in " + class + "; consolidate or document intent",
		})
	}
	return findings
}

// duplicateSeverity grades a cluster by its class. Overlapping anticoagulant
// or antiplatelet therapy carries bleeding risk and is graded major; all
// other duplication is moderate.
func duplicateSeverity(class string) knowledge.Severity {
	if strings.Contains(class, "anticoagulant") || strings.Contains(class, "antiplatelet") {
		return knowledge.SeverityMajor
	}
	return knowledge.SeverityModerate
}
