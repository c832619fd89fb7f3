package knowledge

import (
	"os"
	"path/filepath"
	"testing"
)

func writeOverlay(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write overlay file: %v", err)
	}
}

func TestLoadWithoutDir(t *testing.T) {
	kb, err := Load("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(kb.PairInteractions) == 0 {
		t.Error("Expected built-in interactions")
	}
}

func TestLoadMissingDir(t *testing.T) {
	kb, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("Missing dir should fall back to built-ins, got %v", err)
	}
	if len(kb.Guidelines) == 0 {
		t.Error("Expected built-in guidelines")
	}
}

func TestLoadAppliesOverlay(t *testing.T) {
	dir := t.TempDir()
	writeOverlay(t, dir, "site.yaml", `
interactions:
  lithium_ibuprofen:
    type: pharmacokinetic
    severity: major
    mechanism: reduced renal lithium clearance
    significance: lithium toxicity risk
    management: monitor lithium levels
    confidence: 0.85
drug_classes:
  lithium: mood_stabilizer
therapeutic_classes:
  lithium: mood stabilizer
high_risk:
  - colchicine
guidelines:
  lithium:
    adult_dose: {min: 300, max: 600, unit: mg, frequency: bid}
    max_daily_dose: 1800
    monitoring: [lithium level, renal function]
frequencies:
  q48h: {times_per_day: 0.5, description: every 48 hours}
`)

	kb, err := Load(dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	in, ok := kb.PairInteractions["lithium_ibuprofen"]
	if !ok {
		t.Fatal("Overlay interaction not applied")
	}
	if in.Severity != SeverityMajor {
		t.Errorf("severity = %s, want major", in.Severity)
	}
	if in.ClinicalSignificance != "lithium toxicity risk" {
		t.Errorf("significance = %q", in.ClinicalSignificance)
	}

	if got := kb.DrugClass("lithium"); got != "mood_stabilizer" {
		t.Errorf("drug class = %s, want mood_stabilizer", got)
	}
	if !kb.HighRisk["colchicine"] {
		t.Error("Overlay high-risk entry not applied")
	}

	g, matched, ok := kb.FindGuideline("lithium")
	if !ok || matched != "lithium" {
		t.Fatalf("Overlay guideline not found, matched=%q ok=%v", matched, ok)
	}
	if g.AdultDose.Min != 300 || g.AdultDose.Max != 600 {
		t.Errorf("adult dose = %v-%v, want 300-600", g.AdultDose.Min, g.AdultDose.Max)
	}

	if f, _, ok := kb.ParseFrequency("q48h"); !ok || f.TimesPerDay != 0.5 {
		t.Errorf("Overlay frequency not applied: %v %v", f, ok)
	}
}

func TestLoadOverlayOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	writeOverlay(t, dir, "override.yml", `
guidelines:
  warfarin:
    adult_dose: {min: 1, max: 5, unit: mg, frequency: daily}
    max_daily_dose: 5
`)

	kb, err := Load(dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	g := kb.Guidelines["warfarin"]
	if g.AdultDose.Max != 5 {
		t.Errorf("Overlay should replace the built-in warfarin guideline, max = %v", g.AdultDose.Max)
	}
}

func TestLoadLaterFilesWin(t *testing.T) {
	dir := t.TempDir()
	writeOverlay(t, dir, "10-first.yaml", "drug_classes:\n  testdrug: alpha\n")
	writeOverlay(t, dir, "20-second.yaml", "drug_classes:\n  testdrug: beta\n")

	kb, err := Load(dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := kb.DrugClass("testdrug"); got != "beta" {
		t.Errorf("Later overlay should win, got %s", got)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeOverlay(t, dir, "bad.yaml", "interactions: [not a map")

	if _, err := Load(dir); err == nil {
		t.Error("Expected an error for malformed YAML")
	}
}
