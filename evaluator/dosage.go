package evaluator

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/clinsafe/medreview-api/knowledge"
)

// Dosage validation statuses. Each carries a fixed confidence; UNKNOWN and
// UNPARSEABLE are valid terminal outcomes, not errors.
const (
	StatusAppropriate     = "APPROPRIATE"
	StatusSuboptimal      = "SUBOPTIMAL"
	StatusExcessive       = "EXCESSIVE"
	StatusInappropriate   = "INAPPROPRIATE"
	StatusContraindicated = "CONTRAINDICATED"
	StatusUnknown         = "UNKNOWN"
	StatusUnparseable     = "UNPARSEABLE"
)

const (
	elderlyAge            = 65
	egfrModerateThreshold = 60.0
	altElevatedThreshold  = 80.0
)

var dosePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(mg|mcg|g|ml|units?|iu)\b\s*(.*)$`)

// ParsedDose is the decomposed proposed dose.
type ParsedDose struct {
	Dose          float64              `json:"dose"`
	Unit          string               `json:"unit"`
	Frequency     string               `json:"frequency,omitempty"`
	FrequencyData *knowledge.Frequency `json:"frequencyData,omitempty"`
}

// DoseAdjustment holds the per-patient multiplicative factors. OverallFactor
// is the product of the age, renal and hepatic factors; weight-based drugs
// bypass it in favor of WeightBasedDose.
type DoseAdjustment struct {
	AgeFactor       float64  `json:"ageFactor"`
	WeightFactor    float64  `json:"weightFactor"`
	RenalFactor     float64  `json:"renalFactor"`
	HepaticFactor   float64  `json:"hepaticFactor"`
	OverallFactor   float64  `json:"overallFactor"`
	WeightBasedDose float64  `json:"weightBasedDose,omitempty"`
	Reasons         []string `json:"reasons"`
}

// DoseWindow is the patient-adjusted acceptable per-dose range.
type DoseWindow struct {
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Unit         string  `json:"unit"`
	MaxDailyDose float64 `json:"maxDailyDose,omitempty"`
}

// DosageResult is the outcome of validating one drug's proposed dose.
type DosageResult struct {
	Drug             string          `json:"drug"`
	MatchedGuideline string          `json:"matchedGuideline,omitempty"`
	Status           string          `json:"status"`
	Confidence       float64         `json:"confidence"`
	Explanation      string          `json:"explanation"`
	ParsedDose       *ParsedDose     `json:"parsedDose,omitempty"`
	Adjustment       *DoseAdjustment `json:"adjustment,omitempty"`
	RecommendedRange *DoseWindow     `json:"recommendedRange,omitempty"`
	Warnings         []string        `json:"warnings,omitempty"`
	Monitoring       []string        `json:"monitoring,omitempty"`
	Recommendation   string          `json:"recommendation"`
}

// ValidateDosage checks a proposed dose against the patient-adjusted dosing
// guideline. Resolution order: exact guideline, fuzzy guideline, UNKNOWN.
// A contraindicated condition overrides every other outcome.
func ValidateDosage(k *knowledge.Knowledge, drug, dose string, patient *PatientContext) DosageResult {
	name := knowledge.Canonical(drug)

	guideline, matched, ok := k.FindGuideline(name)
	if !ok {
		return DosageResult{
			Drug:           name,
			Status:         StatusUnknown,
			Confidence:     0.3,
			Explanation:    fmt.Sprintf("no dosing guideline available for %s", name),
			Warnings:       []string{"dosing could not be verified against reference ranges"},
			Recommendation: "Verify dosing manually against product labeling or a clinical pharmacist",
		}
	}

	if ci, factor := guidelineContraindicated(&guideline, patient); ci != "" {
		return DosageResult{
			Drug:             name,
			MatchedGuideline: matched,
			Status:           StatusContraindicated,
			Confidence:       1.0,
			Explanation:      fmt.Sprintf("%s is contraindicated: patient has %s (%s)", name, ci, factor),
			Monitoring:       guideline.Monitoring,
			Recommendation:   "Do not administer; select an alternative agent",
		}
	}

	parsed, parseOK := parseDose(k, dose)
	if !parseOK {
		return DosageResult{
			Drug:             name,
			MatchedGuideline: matched,
			Status:           StatusUnparseable,
			Confidence:       0.4,
			Explanation:      fmt.Sprintf("could not parse proposed dose %q", dose),
			Monitoring:       guideline.Monitoring,
			Recommendation:   "Clarify the intended dose and frequency, then re-validate",
		}
	}

	adj := computeAdjustment(&guideline, patient)
	window := recommendedWindow(&guideline, &adj, patient)

	daily := parsed.Dose
	if parsed.FrequencyData != nil {
		daily = parsed.Dose * parsed.FrequencyData.TimesPerDay
	}

	inRange := parsed.Dose >= window.Min && parsed.Dose <= window.Max
	overCap := window.MaxDailyDose > 0 && daily > window.MaxDailyDose

	result := DosageResult{
		Drug:             name,
		MatchedGuideline: matched,
		ParsedDose:       &parsed,
		Adjustment:       &adj,
		RecommendedRange: &window,
		Monitoring:       guideline.Monitoring,
	}

	switch {
	case inRange && !overCap:
		result.Status = StatusAppropriate
		result.Confidence = 0.9
		result.Explanation = fmt.Sprintf("%.0f%s is within the adjusted range %.0f-%.0f%s", parsed.Dose, parsed.Unit, window.Min, window.Max, window.Unit)
		result.Recommendation = "Dose is appropriate for this patient"
	case inRange && overCap:
		result.Status = StatusExcessive
		result.Confidence = 0.85
		result.Explanation = fmt.Sprintf("per-dose %.0f%s is acceptable but estimated daily %.0f%s exceeds the daily maximum %.0f%s", parsed.Dose, parsed.Unit, daily, window.Unit, window.MaxDailyDose, window.Unit)
		result.Warnings = append(result.Warnings, "cumulative daily exposure exceeds the maximum daily dose")
		result.Recommendation = "Reduce dosing frequency or per-dose amount to stay under the daily maximum"
	case !inRange && !overCap:
		result.Status = StatusSuboptimal
		result.Confidence = 0.75
		result.Explanation = fmt.Sprintf("%.0f%s is outside the adjusted range %.0f-%.0f%s", parsed.Dose, parsed.Unit, window.Min, window.Max, window.Unit)
		result.Recommendation = "Consider adjusting the dose toward the recommended range"
	default:
		result.Status = StatusInappropriate
		result.Confidence = 0.9
		result.Explanation = fmt.Sprintf("%.0f%s is outside the adjusted range %.0f-%.0f%s and estimated daily %.0f%s exceeds the daily maximum %.0f%s", parsed.Dose, parsed.Unit, window.Min, window.Max, window.Unit, daily, window.Unit, window.MaxDailyDose, window.Unit)
		result.Warnings = append(result.Warnings, "dose is both out of range and over the daily maximum")
		result.Recommendation = "Do not administer as proposed; re-dose within the recommended range"
	}
	return result
}

// parseDose splits "<number><unit> <frequency>" and resolves the frequency
// keyword when present.
func parseDose(k *knowledge.Knowledge, dose string) (ParsedDose, bool) {
	m := dosePattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(dose)))
	if m == nil {
		return ParsedDose{}, false
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return ParsedDose{}, false
	}

	parsed := ParsedDose{Dose: value, Unit: m[2], Frequency: strings.TrimSpace(m[3])}
	if parsed.Frequency != "" {
		if f, key, ok := k.ParseFrequency(parsed.Frequency); ok {
			parsed.FrequencyData = &f
			parsed.Frequency = key
		}
	}
	return parsed, true
}

// factorOr treats an unset guideline factor as no adjustment.
func factorOr(f float64) float64 {
	if f == 0 {
		return 1.0
	}
	return f
}

// computeAdjustment derives the patient factors from the guideline. Each
// factor stays 1.0 when the triggering datum is absent.
func computeAdjustment(g *knowledge.DosingGuideline, patient *PatientContext) DoseAdjustment {
	adj := DoseAdjustment{AgeFactor: 1.0, WeightFactor: 1.0, RenalFactor: 1.0, HepaticFactor: 1.0}

	if age, ok := patient.Age(); ok && age >= elderlyAge {
		adj.AgeFactor = factorOr(g.ElderlyFactor)
		adj.Reasons = append(adj.Reasons, fmt.Sprintf("elderly patient (age %d): dose factor %.2f", age, adj.AgeFactor))
	}
	if weight, ok := patient.WeightKg(); ok && g.WeightBased && g.MgPerKg > 0 {
		adj.WeightBasedDose = weight * g.MgPerKg
		adj.Reasons = append(adj.Reasons, fmt.Sprintf("weight-based dosing: %.1fmg/kg x %.0fkg = %.0fmg", g.MgPerKg, weight, adj.WeightBasedDose))
	}
	if egfr, ok := patient.Lab("egfr"); ok {
		switch {
		case egfr < egfrSevereThreshold:
			adj.RenalFactor = factorOr(g.RenalSevere)
			adj.Reasons = append(adj.Reasons, fmt.Sprintf("severe renal impairment (eGFR %.0f): dose factor %.2f", egfr, adj.RenalFactor))
		case egfr < egfrModerateThreshold:
			adj.RenalFactor = factorOr(g.RenalModerate)
			adj.Reasons = append(adj.Reasons, fmt.Sprintf("moderate renal impairment (eGFR %.0f): dose factor %.2f", egfr, adj.RenalFactor))
		}
	}
	if alt, ok := patient.Lab("alt"); ok && alt > altElevatedThreshold {
		adj.HepaticFactor = factorOr(g.HepaticFactor)
		adj.Reasons = append(adj.Reasons, fmt.Sprintf("hepatic impairment (ALT %.0f): dose factor %.2f", alt, adj.HepaticFactor))
	}

	adj.OverallFactor = adj.AgeFactor * adj.RenalFactor * adj.HepaticFactor
	return adj
}

// recommendedWindow builds the adjusted per-dose range. Weight-based drugs
// with a known weight use the computed mg dose +/- 20% and ignore the adult
// range; everything else scales the adult range by the overall factor. The
// daily cap substitutes the elderly ceiling when defined and applicable.
func recommendedWindow(g *knowledge.DosingGuideline, adj *DoseAdjustment, patient *PatientContext) DoseWindow {
	window := DoseWindow{Unit: g.AdultDose.Unit}

	if adj.WeightBasedDose > 0 {
		window.Min = round1(adj.WeightBasedDose * 0.8)
		window.Max = round1(adj.WeightBasedDose * 1.2)
	} else {
		window.Min = round1(g.AdultDose.Min * adj.OverallFactor)
		window.Max = round1(g.AdultDose.Max * adj.OverallFactor)
	}

	window.MaxDailyDose = g.MaxDailyDose
	if age, ok := patient.Age(); ok && age >= elderlyAge && g.ElderlyMaxDaily > 0 {
		window.MaxDailyDose = g.ElderlyMaxDaily
	}
	return window
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// guidelineContraindicated checks the guideline's static contraindication
// list against the patient's conditions, plus the objective renal trigger.
// Returns the matched contraindication and the patient factor text.
func guidelineContraindicated(g *knowledge.DosingGuideline, patient *PatientContext) (string, string) {
	if patient == nil {
		return "", ""
	}
	for _, ci := range g.Contraindications {
		canonical := knowledge.Canonical(ci)
		// Overlay entries may use snake_case; patient conditions are free text.
		phrase := strings.ReplaceAll(canonical, "_", " ")
		if patient.HasConditionContaining(phrase) {
			return canonical, "documented condition"
		}
		if canonical == "renal_impairment" || canonical == "severe renal impairment" {
			if egfr, ok := patient.Lab("egfr"); ok && egfr < egfrSevereThreshold {
				return canonical, fmt.Sprintf("eGFR %.0f mL/min", egfr)
			}
		}
	}
	return "", ""
}
