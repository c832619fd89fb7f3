package knowledge

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Knowledge is the full reference dataset. All lookups are case-insensitive
// through Canonical; callers are expected to canonicalize once at
// normalization time and pass canonical names downstream.
type Knowledge struct {
	PairInteractions   map[string]Interaction
	ClassInteractions  map[string]Interaction
	DrugClasses        map[string]string
	TherapeuticClasses map[string]string
	HighRisk           map[string]bool
	Contraindications  map[string][]Contraindication
	Guidelines         map[string]DosingGuideline
	Frequencies        map[string]Frequency
}

// Builtin returns a Knowledge populated from the compiled-in tables.
func Builtin() *Knowledge {
	return &Knowledge{
		PairInteractions:   builtinPairInteractions(),
		ClassInteractions:  builtinClassInteractions(),
		DrugClasses:        builtinDrugClasses(),
		TherapeuticClasses: builtinTherapeuticClasses(),
		HighRisk:           builtinHighRisk(),
		Contraindications:  builtinContraindications(),
		Guidelines:         builtinGuidelines(),
		Frequencies:        builtinFrequencies(),
	}
}

// diacriticStripper folds accented spellings onto the ASCII table keys.
var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Canonical lower-cases, trims and strips diacritics from a drug name or
// lookup key. This is the single canonicalization point for the engine.
func Canonical(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if stripped, _, err := transform.String(diacriticStripper, name); err == nil {
		name = stripped
	}
	return name
}

// DrugClass returns the interaction-matching class of a canonical drug name,
// or "other" when unclassified.
func (k *Knowledge) DrugClass(name string) string {
	if c, ok := k.DrugClasses[name]; ok {
		return c
	}
	return "other"
}

// TherapeuticClass returns the coarse duplicate-detection class of a
// canonical drug name, or "other" when unclassified.
func (k *Knowledge) TherapeuticClass(name string) string {
	if c, ok := k.TherapeuticClasses[name]; ok {
		return c
	}
	return "other"
}

// InteractionPotential tags a canonical drug name "high" or "moderate".
func (k *Knowledge) InteractionPotential(name string) string {
	if k.HighRisk[name] {
		return "high"
	}
	return "moderate"
}

// ContraindicationsFor returns the static contraindication list for a
// canonical drug name; nil when none are recorded.
func (k *Knowledge) ContraindicationsFor(name string) []Contraindication {
	return k.Contraindications[name]
}

// FindInteraction looks up a specific pair interaction under "<a>_<b>" and
// then "<b>_<a>"; failing that it falls back to the class-pair table, again
// in both orders. The boolean is false when no rule matched.
func (k *Knowledge) FindInteraction(drugA, drugB, classA, classB string) (Interaction, bool) {
	if in, ok := k.PairInteractions[drugA+"_"+drugB]; ok {
		return in, true
	}
	if in, ok := k.PairInteractions[drugB+"_"+drugA]; ok {
		return in, true
	}
	if in, ok := k.ClassInteractions[classA+"_"+classB]; ok {
		return in, true
	}
	if in, ok := k.ClassInteractions[classB+"_"+classA]; ok {
		return in, true
	}
	return Interaction{}, false
}

// FindGuideline resolves a dosing guideline by exact canonical name, then by
// bidirectional substring match against the table keys. Substring matching is
// a documented heuristic: when several keys match, the longest key wins, with
// lexicographic order breaking remaining ties so resolution is deterministic.
// The returned string is the matched table key.
func (k *Knowledge) FindGuideline(name string) (DosingGuideline, string, bool) {
	if g, ok := k.Guidelines[name]; ok {
		return g, name, true
	}
	if name == "" {
		return DosingGuideline{}, "", false
	}

	var candidates []string
	for key := range k.Guidelines {
		if strings.Contains(key, name) || strings.Contains(name, key) {
			candidates = append(candidates, key)
		}
	}
	if len(candidates) == 0 {
		return DosingGuideline{}, "", false
	}
	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i]) != len(candidates[j]) {
			return len(candidates[i]) > len(candidates[j])
		}
		return candidates[i] < candidates[j]
	})
	best := candidates[0]
	return k.Guidelines[best], best, true
}

// ParseFrequency resolves a frequency phrase against the keyword table. The
// whole phrase is tried first; otherwise the longest table keyword contained
// in the phrase wins (deterministic scan order).
func (k *Knowledge) ParseFrequency(phrase string) (Frequency, string, bool) {
	phrase = Canonical(phrase)
	if phrase == "" {
		return Frequency{}, "", false
	}
	if f, ok := k.Frequencies[phrase]; ok {
		return f, phrase, true
	}

	keys := make([]string, 0, len(k.Frequencies))
	for key := range k.Frequencies {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	for _, key := range keys {
		if strings.Contains(phrase, key) {
			return k.Frequencies[key], key, true
		}
	}
	return Frequency{}, "", false
}
