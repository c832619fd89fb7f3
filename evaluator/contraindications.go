package evaluator

import (
	"fmt"

	"github.com/clinsafe/medreview-api/knowledge"
)

// egfrSevereThreshold is the cutoff below which renal contraindications fire.
const egfrSevereThreshold = 30.0

// CheckContraindications screens each medication's static contraindication
// list against the patient context. Each entry type has a predicate deciding
// whether the patient data triggers it; unknown types and absent patient data
// never fire. A nil patient yields no findings.
func CheckContraindications(k *knowledge.Knowledge, meds []Medication, patient *PatientContext) []ContraindicationFinding {
	if patient == nil {
		return nil
	}

	var findings []ContraindicationFinding
	for _, med := range meds {
		for _, ci := range k.ContraindicationsFor(med.DrugName) {
			factor, fired := contraindicationApplies(ci.Type, patient)
			if !fired {
				continue
			}
			findings = append(findings, ContraindicationFinding{
				Medication:           med.DrugName,
				ContraindicationType: ci.Type,
				Reason:               ci.Reason,
				Severity:             ci.Severity,
				PatientFactor:        factor,
				Recommendation:       ci.Recommendation,
			})
		}
	}
	return findings
}

// contraindicationApplies returns the triggering patient factor when the
// typed predicate fires. Types without an objective trigger in the patient
// data (pregnancy, active bleeding, hypotension, hepatic impairment) are
// conservative no-ops here; they surface through condition-driven dosage
// overrides instead.
func contraindicationApplies(ciType string, patient *PatientContext) (string, bool) {
	switch ciType {
	case "renal_impairment":
		egfr, ok := patient.Lab("egfr")
		if ok && egfr < egfrSevereThreshold {
			return fmt.Sprintf("eGFR %.0f mL/min", egfr), true
		}
	}
	return "", false
}
