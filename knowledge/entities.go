// Package knowledge holds the clinical reference tables used by the
// evaluation engine: pairwise and class-level drug interactions, drug and
// therapeutic classifications, contraindication lists, dosing guidelines and
// frequency semantics. The tables are data, not code: per-drug behavior is
// encoded as mapping-from-key-to-rule-record structures so the rule set can
// be extended (or overlaid from YAML files) without touching the evaluators.
//
// A Knowledge value is immutable once built. Request handlers share one
// instance through a Container and never mutate it.
package knowledge

// Severity is the fixed ordered scale used for sorting and priority scoring.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

// Rank returns the sort rank of a severity (critical=4 ... minor=1, none=0).
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityMajor:
		return 3
	case SeverityModerate:
		return 2
	case SeverityMinor:
		return 1
	default:
		return 0
	}
}

// Valid reports whether s is one of the five known severity values.
func (s Severity) Valid() bool {
	switch s {
	case SeverityNone, SeverityMinor, SeverityModerate, SeverityMajor, SeverityCritical:
		return true
	}
	return false
}

// Interaction is a rule record for a drug pair or a class pair.
type Interaction struct {
	Type                 string   `json:"type" yaml:"type"`
	Severity             Severity `json:"severity" yaml:"severity"`
	Mechanism            string   `json:"mechanism" yaml:"mechanism"`
	ClinicalSignificance string   `json:"clinicalSignificance" yaml:"significance"`
	Management           string   `json:"management" yaml:"management"`
	Confidence           float64  `json:"confidence" yaml:"confidence"`
}

// Contraindication is a static per-drug entry. Whether it applies to a given
// patient is decided by a predicate keyed on Type (see the evaluator).
type Contraindication struct {
	Type           string   `json:"type" yaml:"type"`
	Reason         string   `json:"reason" yaml:"reason"`
	Severity       Severity `json:"severity" yaml:"severity"`
	Recommendation string   `json:"recommendation" yaml:"recommendation"`
}

// DoseRange is the per-dose window of a guideline, before patient adjustment.
type DoseRange struct {
	Min       float64 `json:"min" yaml:"min"`
	Max       float64 `json:"max" yaml:"max"`
	Unit      string  `json:"unit" yaml:"unit"`
	Frequency string  `json:"frequency" yaml:"frequency"`
}

// DosingGuideline is the static dosing reference record for one drug.
// Adjustment factors are multiplicative; a zero factor means "no adjustment
// defined" and is treated as 1.0 by the calculator.
type DosingGuideline struct {
	AdultDose         DoseRange `json:"adultDose" yaml:"adult_dose"`
	ElderlyFactor     float64   `json:"elderlyFactor" yaml:"elderly_factor"`
	RenalModerate     float64   `json:"renalModerateFactor" yaml:"renal_moderate_factor"`
	RenalSevere       float64   `json:"renalSevereFactor" yaml:"renal_severe_factor"`
	HepaticFactor     float64   `json:"hepaticFactor" yaml:"hepatic_factor"`
	WeightBased       bool      `json:"weightBased" yaml:"weight_based"`
	MgPerKg           float64   `json:"mgPerKg" yaml:"mg_per_kg"`
	MaxDailyDose      float64   `json:"maxDailyDose" yaml:"max_daily_dose"`
	ElderlyMaxDaily   float64   `json:"elderlyMaxDailyDose" yaml:"elderly_max_daily_dose"`
	Contraindications []string  `json:"contraindications" yaml:"contraindications"`
	Monitoring        []string  `json:"monitoring" yaml:"monitoring"`
}

// Frequency describes the semantics of one frequency keyword.
type Frequency struct {
	TimesPerDay float64 `json:"timesPerDay" yaml:"times_per_day"`
	Description string  `json:"description" yaml:"description"`
}
