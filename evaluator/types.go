// Package evaluator implements the medication safety evaluation pipeline:
// normalization of heterogeneous medication inputs, pairwise interaction
// inference, duplicate-therapy clustering, contraindication screening,
// patient-adjusted dosage validation, and risk prioritization with
// recommendation synthesis. Every evaluation is a pure function of its
// inputs and an immutable knowledge snapshot; output is advisory only.
package evaluator

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/clinsafe/medreview-api/knowledge"
)

// Finding kinds, used for priority weighting and output tagging.
const (
	KindInteraction      = "interaction"
	KindDuplicateTherapy = "duplicate_therapy"
	KindContraindication = "contraindication"
)

// Medication is the canonical record produced by normalization. Identity is
// the ordinal position in the input list; records are never mutated after
// creation. DrugName is always canonical (lower case, no diacritics).
type Medication struct {
	ID                   string `json:"id"`
	DrugName             string `json:"drugName"`
	Dose                 string `json:"dose,omitempty"`
	Frequency            string `json:"frequency,omitempty"`
	Route                string `json:"route,omitempty"`
	Indication           string `json:"indication,omitempty"`
	DrugClass            string `json:"drugClass"`
	InteractionPotential string `json:"interactionPotential"`
	Parsed               bool   `json:"parsed"`
}

// MedicationInput accepts either a free-text string or a structured record
// with alias fields (name/drug_name/medication, dose/dosage, frequency/freq).
// The alias precedence order is a compatibility contract with upstream
// producers and must not change.
type MedicationInput struct {
	Text   string
	Fields map[string]any
}

// UnmarshalJSON implements the string-or-object tolerance.
func (m *MedicationInput) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		m.Text = s
		m.Fields = nil
		return nil
	}
	var obj map[string]any
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("medication entry must be a string or an object")
	}
	m.Text = ""
	m.Fields = obj
	return nil
}

// MarshalJSON round-trips the input shape.
func (m MedicationInput) MarshalJSON() ([]byte, error) {
	if m.Fields != nil {
		return json.Marshal(m.Fields)
	}
	return json.Marshal(m.Text)
}

// field resolves the first present alias, converting numbers to strings so
// `"dose": 500` behaves like `"dose": "500"`.
func (m *MedicationInput) field(aliases ...string) (string, bool) {
	for _, alias := range aliases {
		v, ok := m.Fields[alias]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			return t, true
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64), true
		}
	}
	return "", false
}

// LabValue is a lab measurement with an optional unit.
type LabValue struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// Demographics carries the patient attributes used for dose adjustment.
// Zero values mean "unknown" and skip the associated adjustment.
type Demographics struct {
	Age      int     `json:"age,omitempty"`
	WeightKg float64 `json:"weightKg,omitempty"`
}

// Condition is a named patient condition.
type Condition struct {
	Condition string `json:"condition"`
}

// PatientContext is optional patient data. Absence of any field degrades
// gracefully: missing data skips the associated adjustment or screen and is
// never an error.
type PatientContext struct {
	Demographics *Demographics       `json:"demographics,omitempty"`
	LabValues    map[string]LabValue `json:"labValues,omitempty"`
	Conditions   []Condition         `json:"conditions,omitempty"`
}

// Age returns the patient age if known.
func (p *PatientContext) Age() (int, bool) {
	if p == nil || p.Demographics == nil || p.Demographics.Age <= 0 {
		return 0, false
	}
	return p.Demographics.Age, true
}

// WeightKg returns the patient weight if known.
func (p *PatientContext) WeightKg() (float64, bool) {
	if p == nil || p.Demographics == nil || p.Demographics.WeightKg <= 0 {
		return 0, false
	}
	return p.Demographics.WeightKg, true
}

// Lab returns a lab value matched case-insensitively by name.
func (p *PatientContext) Lab(name string) (float64, bool) {
	if p == nil {
		return 0, false
	}
	for key, lab := range p.LabValues {
		if strings.EqualFold(key, name) {
			return lab.Value, true
		}
	}
	return 0, false
}

// HasConditionContaining reports whether any patient condition contains the
// given (canonical) substring.
func (p *PatientContext) HasConditionContaining(sub string) bool {
	if p == nil {
		return false
	}
	for _, c := range p.Conditions {
		if strings.Contains(knowledge.Canonical(c.Condition), sub) {
			return true
		}
	}
	return false
}

// InteractionFinding is one clinically significant pairwise interaction.
type InteractionFinding struct {
	MedicationA          string             `json:"medicationA"`
	MedicationB          string             `json:"medicationB"`
	Type                 string             `json:"type"`
	Severity             knowledge.Severity `json:"severity"`
	Mechanism            string             `json:"mechanism"`
	ClinicalSignificance string             `json:"clinicalSignificance"`
	Management           string             `json:"management"`
	Confidence           float64            `json:"confidence"`
}

// DuplicateFinding is a therapeutic-class cluster with two or more members.
type DuplicateFinding struct {
	TherapeuticClass string             `json:"therapeuticClass"`
	Medications      []Medication       `json:"medications"`
	Severity         knowledge.Severity `json:"severity"`
	Recommendation   string             `json:"recommendation"`
}

// ContraindicationFinding is a drug/patient-factor conflict.
type ContraindicationFinding struct {
	Medication           string             `json:"medication"`
	ContraindicationType string             `json:"contraindicationType"`
	Reason               string             `json:"reason"`
	Severity             knowledge.Severity `json:"severity"`
	PatientFactor        string             `json:"patientFactor"`
	Recommendation       string             `json:"recommendation"`
}

// RiskItem unifies the three finding kinds for ranking. Priority is derived
// from (kind, severity) alone and is the sole ranking key.
type RiskItem struct {
	Kind           string             `json:"kind"`
	Priority       int                `json:"priority"`
	Severity       knowledge.Severity `json:"severity"`
	Description    string             `json:"description"`
	ClinicalImpact string             `json:"clinicalImpact"`
	ActionRequired string             `json:"actionRequired"`
	Confidence     float64            `json:"confidence"`
}

// Recommendations is the synthesized guidance block of a review.
type Recommendations struct {
	ImmediateActions []string `json:"immediateActions"`
	Monitoring       []string `json:"monitoring"`
}

// Summary carries the review-level statistics.
type Summary struct {
	TotalFindings           int            `json:"totalFindings"`
	SeverityCounts          map[string]int `json:"severityCounts"`
	OverallRiskScore        float64        `json:"overallRiskScore"`
	ReviewStatus            string         `json:"reviewStatus"`
	RequiresPhysicianReview bool           `json:"requiresPhysicianReview"`
}

// ReviewResult is the full output of a medication review.
type ReviewResult struct {
	Medications       []Medication              `json:"medications"`
	Interactions      []InteractionFinding      `json:"interactions"`
	Duplicates        []DuplicateFinding        `json:"duplicateTherapies"`
	Contraindications []ContraindicationFinding `json:"contraindications"`
	Risks             []RiskItem                `json:"risks"`
	Recommendations   Recommendations           `json:"recommendations"`
	Summary           Summary                   `json:"summary"`
}
