package knowledge

import (
	"testing"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase passthrough", "warfarin", "warfarin"},
		{"uppercase", "WARFARIN", "warfarin"},
		{"mixed case with spaces", "  Aspirin  ", "aspirin"},
		{"diacritics stripped", "paracétamol", "paracetamol"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Canonical(tt.input); got != tt.expected {
				t.Errorf("Canonical(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDrugClassDefaults(t *testing.T) {
	k := Builtin()

	if got := k.DrugClass("warfarin"); got != "anticoagulant" {
		t.Errorf("Expected anticoagulant, got %s", got)
	}
	if got := k.DrugClass("unobtainium"); got != "other" {
		t.Errorf("Expected other for unknown drug, got %s", got)
	}
	if got := k.TherapeuticClass("aspirin"); got != "antiplatelet therapy" {
		t.Errorf("Expected antiplatelet therapy, got %s", got)
	}
	if got := k.TherapeuticClass("unobtainium"); got != "other" {
		t.Errorf("Expected other for unknown drug, got %s", got)
	}
}

func TestInteractionPotential(t *testing.T) {
	k := Builtin()

	if got := k.InteractionPotential("warfarin"); got != "high" {
		t.Errorf("Expected high for warfarin, got %s", got)
	}
	if got := k.InteractionPotential("acetaminophen"); got != "moderate" {
		t.Errorf("Expected moderate for acetaminophen, got %s", got)
	}
}

func TestFindInteractionLookupOrder(t *testing.T) {
	k := Builtin()

	tests := []struct {
		name             string
		drugA, drugB     string
		classA, classB   string
		wantFound        bool
		wantSeverity     Severity
		wantInteractType string
	}{
		{
			name:  "forward pair key",
			drugA: "warfarin", drugB: "aspirin",
			classA: "anticoagulant", classB: "antiplatelet",
			wantFound: true, wantSeverity: SeverityCritical, wantInteractType: "pharmacodynamic",
		},
		{
			name:  "reverse pair key",
			drugA: "aspirin", drugB: "warfarin",
			classA: "antiplatelet", classB: "anticoagulant",
			wantFound: true, wantSeverity: SeverityCritical, wantInteractType: "pharmacodynamic",
		},
		{
			name:  "class fallback when no pair rule exists",
			drugA: "apixaban", drugB: "clopidogrel",
			classA: "anticoagulant", classB: "antiplatelet",
			wantFound: true, wantSeverity: SeverityMajor, wantInteractType: "class",
		},
		{
			name:  "reverse class fallback",
			drugA: "clopidogrel", drugB: "apixaban",
			classA: "antiplatelet", classB: "anticoagulant",
			wantFound: true, wantSeverity: SeverityMajor, wantInteractType: "class",
		},
		{
			name:  "no rule at all",
			drugA: "levothyroxine", drugB: "amlodipine",
			classA: "thyroid_hormone", classB: "calcium_channel_blocker",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, found := k.FindInteraction(tt.drugA, tt.drugB, tt.classA, tt.classB)
			if found != tt.wantFound {
				t.Fatalf("found = %v, want %v", found, tt.wantFound)
			}
			if !found {
				return
			}
			if in.Severity != tt.wantSeverity {
				t.Errorf("severity = %s, want %s", in.Severity, tt.wantSeverity)
			}
			if in.Type != tt.wantInteractType {
				t.Errorf("type = %s, want %s", in.Type, tt.wantInteractType)
			}
		})
	}
}

func TestPairRulePreferredOverClassRule(t *testing.T) {
	k := Builtin()

	// warfarin+ibuprofen has both a pair rule and an anticoagulant_nsaid
	// class rule; the pair rule must win.
	in, found := k.FindInteraction("warfarin", "ibuprofen", "anticoagulant", "nsaid")
	if !found {
		t.Fatal("Expected an interaction")
	}
	if in.Type != "pharmacodynamic" {
		t.Errorf("Expected the specific pair rule, got type %s", in.Type)
	}
}

func TestFindGuidelineFuzzyMatch(t *testing.T) {
	k := Builtin()

	tests := []struct {
		name        string
		query       string
		wantMatched string
		wantFound   bool
	}{
		{"exact", "warfarin", "warfarin", true},
		{"query contains key", "warfarin sodium", "warfarin", true},
		{"key contains query", "acetamin", "acetaminophen", true},
		{"no match", "unobtainium", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, matched, found := k.FindGuideline(tt.query)
			if found != tt.wantFound {
				t.Fatalf("found = %v, want %v", found, tt.wantFound)
			}
			if matched != tt.wantMatched {
				t.Errorf("matched = %q, want %q", matched, tt.wantMatched)
			}
		})
	}
}

func TestFindGuidelineLongestKeyWins(t *testing.T) {
	k := Builtin()
	k.Guidelines["met"] = DosingGuideline{AdultDose: DoseRange{Min: 1, Max: 2, Unit: "mg"}}

	// "metformin extended" substring-matches both "met" and "metformin";
	// the longer key must be selected.
	_, matched, found := k.FindGuideline("metformin extended")
	if !found {
		t.Fatal("Expected a guideline match")
	}
	if matched != "metformin" {
		t.Errorf("Expected longest key metformin, got %q", matched)
	}
}

func TestParseFrequency(t *testing.T) {
	k := Builtin()

	tests := []struct {
		name        string
		phrase      string
		wantTimes   float64
		wantMatched string
		wantFound   bool
	}{
		{"exact keyword", "bid", 2, "bid", true},
		{"embedded keyword", "take twice daily with food", 2, "twice daily", true},
		{"range keyword", "q4-6h", 5, "q4-6h", true},
		{"longest contained wins over substring", "three times daily", 3, "three times daily", true},
		{"unknown", "whenever convenient", 0, "", false},
		{"empty", "", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, matched, found := k.ParseFrequency(tt.phrase)
			if found != tt.wantFound {
				t.Fatalf("found = %v, want %v", found, tt.wantFound)
			}
			if matched != tt.wantMatched {
				t.Errorf("matched = %q, want %q", matched, tt.wantMatched)
			}
			if found && f.TimesPerDay != tt.wantTimes {
				t.Errorf("timesPerDay = %v, want %v", f.TimesPerDay, tt.wantTimes)
			}
		})
	}
}

func TestSeverityRank(t *testing.T) {
	ordered := []Severity{SeverityNone, SeverityMinor, SeverityModerate, SeverityMajor, SeverityCritical}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Rank() <= ordered[i-1].Rank() {
			t.Errorf("Rank(%s)=%d should exceed Rank(%s)=%d",
				ordered[i], ordered[i].Rank(), ordered[i-1], ordered[i-1].Rank())
		}
	}
	if Severity("bogus").Rank() != 0 {
		t.Error("Unknown severities should rank 0")
	}
}
