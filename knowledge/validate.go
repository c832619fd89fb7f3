package knowledge

import (
	"fmt"
	"sort"
	"strings"
)

// QualityReport summarizes consistency problems in a Knowledge snapshot.
// Problems are advisory: a snapshot with issues still serves, but each issue
// is logged at load time so table mistakes surface early.
type QualityReport struct {
	PairInteractionCount  int
	ClassInteractionCount int
	GuidelineCount        int
	ContraindicatedDrugs  int

	ReversedDuplicatePairs []string // both a_b and b_a present
	InvalidSeverities      []string // table entries outside the severity set
	UnknownClassRefs       []string // class-pair keys naming classes no drug maps to
	InvalidGuidelines      []string // min>max, weight-based without mg/kg, etc.
	UnclassifiedPairDrugs  []string // pair-key drugs missing from the class table
}

// Clean reports whether the snapshot has no recorded issues.
func (r *QualityReport) Clean() bool {
	return len(r.ReversedDuplicatePairs) == 0 &&
		len(r.InvalidSeverities) == 0 &&
		len(r.UnknownClassRefs) == 0 &&
		len(r.InvalidGuidelines) == 0 &&
		len(r.UnclassifiedPairDrugs) == 0
}

// Validate checks a Knowledge snapshot for internal consistency.
func Validate(k *Knowledge) *QualityReport {
	r := &QualityReport{
		PairInteractionCount:  len(k.PairInteractions),
		ClassInteractionCount: len(k.ClassInteractions),
		GuidelineCount:        len(k.Guidelines),
		ContraindicatedDrugs:  len(k.Contraindications),
	}

	classesInUse := make(map[string]bool)
	for _, class := range k.DrugClasses {
		classesInUse[class] = true
	}

	for key, in := range k.PairInteractions {
		a, b, ok := splitPairKey(key)
		if !ok {
			r.InvalidSeverities = append(r.InvalidSeverities, key+": malformed pair key")
			continue
		}
		if _, dup := k.PairInteractions[b+"_"+a]; dup && a < b {
			r.ReversedDuplicatePairs = append(r.ReversedDuplicatePairs, key)
		}
		if !in.Severity.Valid() {
			r.InvalidSeverities = append(r.InvalidSeverities, fmt.Sprintf("%s: %q", key, in.Severity))
		}
		for _, drug := range []string{a, b} {
			if _, known := k.DrugClasses[drug]; !known {
				r.UnclassifiedPairDrugs = append(r.UnclassifiedPairDrugs, drug)
			}
		}
	}

	for key, in := range k.ClassInteractions {
		if !in.Severity.Valid() {
			r.InvalidSeverities = append(r.InvalidSeverities, fmt.Sprintf("%s: %q", key, in.Severity))
		}
		// Class-pair keys can contain underscores inside class names, so try
		// every split point and accept the key if any yields two known classes.
		if !hasKnownClassSplit(key, classesInUse) {
			r.UnknownClassRefs = append(r.UnknownClassRefs, key)
		}
	}

	for drug, g := range k.Guidelines {
		switch {
		case g.AdultDose.Min <= 0 || g.AdultDose.Max <= 0:
			r.InvalidGuidelines = append(r.InvalidGuidelines, drug+": non-positive adult dose bound")
		case g.AdultDose.Min > g.AdultDose.Max:
			r.InvalidGuidelines = append(r.InvalidGuidelines, drug+": adult min exceeds max")
		case g.WeightBased && g.MgPerKg <= 0:
			r.InvalidGuidelines = append(r.InvalidGuidelines, drug+": weight-based without mg/kg")
		case g.ElderlyMaxDaily > 0 && g.MaxDailyDose > 0 && g.ElderlyMaxDaily > g.MaxDailyDose:
			r.InvalidGuidelines = append(r.InvalidGuidelines, drug+": elderly daily cap exceeds adult cap")
		}
	}

	for drug, list := range k.Contraindications {
		for _, c := range list {
			if !c.Severity.Valid() {
				r.InvalidSeverities = append(r.InvalidSeverities, fmt.Sprintf("%s contraindication: %q", drug, c.Severity))
			}
		}
	}

	sort.Strings(r.ReversedDuplicatePairs)
	sort.Strings(r.InvalidSeverities)
	sort.Strings(r.UnknownClassRefs)
	sort.Strings(r.InvalidGuidelines)
	sort.Strings(r.UnclassifiedPairDrugs)
	r.UnclassifiedPairDrugs = dedupe(r.UnclassifiedPairDrugs)
	return r
}

func splitPairKey(key string) (string, string, bool) {
	i := strings.Index(key, "_")
	if i <= 0 || i >= len(key)-1 {
		return "", "", false
	}
	return key[:i], key[i+1:], true
}

func hasKnownClassSplit(key string, classes map[string]bool) bool {
	for i := 1; i < len(key); i++ {
		if key[i] != '_' {
			continue
		}
		if classes[key[:i]] && classes[key[i+1:]] {
			return true
		}
	}
	return false
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
