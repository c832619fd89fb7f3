package evaluator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/clinsafe/medreview-api/knowledge"
)

// ErrNoMedications is returned when a review request carries an empty list.
var ErrNoMedications = errors.New("at least one medication is required")

// medPattern splits a free-text entry into name, numeric dose, unit and a
// trailing frequency phrase. The name group is lazy so the dose number is
// never swallowed into a multi-word name.
var medPattern = regexp.MustCompile(`^([a-z][a-z0-9\-\s/]*?)\s+(\d+(?:\.\d+)?)\s*(mg|mcg|g|ml|units?|iu)\b\s*(.*)$`)

// Normalize converts heterogeneous medication inputs into canonical records.
// IDs are assigned by 1-based input position and are stable across repeated
// calls with the same input. Unparseable free text degrades to a name-only
// record rather than an error.
func Normalize(k *knowledge.Knowledge, inputs []MedicationInput) ([]Medication, error) {
	if len(inputs) == 0 {
		return nil, ErrNoMedications
	}

	meds := make([]Medication, 0, len(inputs))
	for i, in := range inputs {
		med := normalizeOne(k, &in)
		med.ID = fmt.Sprintf("med_%d", i+1)
		meds = append(meds, med)
	}
	return meds, nil
}

func normalizeOne(k *knowledge.Knowledge, in *MedicationInput) Medication {
	var med Medication
	if in.Fields != nil {
		med = fromStructured(in)
	} else {
		med = fromFreeText(in.Text)
	}

	med.DrugName = knowledge.Canonical(med.DrugName)
	med.DrugClass = k.DrugClass(med.DrugName)
	med.InteractionPotential = k.InteractionPotential(med.DrugName)
	return med
}

// fromStructured reads a record, resolving field aliases in fixed precedence
// order.
func fromStructured(in *MedicationInput) Medication {
	name, _ := in.field("name", "drug_name", "medication")
	dose, _ := in.field("dose", "dosage")
	freq, _ := in.field("frequency", "freq")
	route, hasRoute := in.field("route")
	indication, _ := in.field("indication")

	if !hasRoute || route == "" {
		route = "oral"
	}
	return Medication{
		DrugName:   name,
		Dose:       strings.TrimSpace(dose),
		Frequency:  strings.TrimSpace(freq),
		Route:      route,
		Indication: strings.TrimSpace(indication),
		Parsed:     name != "",
	}
}

// fromFreeText parses strings like "warfarin 5mg daily". Text that does not
// match the pattern becomes a name-only record dosed "as directed".
func fromFreeText(text string) Medication {
	lowered := strings.ToLower(strings.TrimSpace(text))

	m := medPattern.FindStringSubmatch(lowered)
	if m == nil {
		return Medication{
			DrugName:  lowered,
			Frequency: "as directed",
			Route:     "oral",
			Parsed:    false,
		}
	}

	freq := strings.TrimSpace(m[4])
	if freq == "" {
		freq = "as directed"
	}
	return Medication{
		DrugName:  strings.TrimSpace(m[1]),
		Dose:      m[2] + m[3],
		Frequency: freq,
		Route:     "oral",
		Parsed:    true,
	}
}
