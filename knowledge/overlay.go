package knowledge

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// overlayFile is the on-disk shape of a knowledge overlay. Every section is
// optional; entries replace built-in entries under the same canonical key.
type overlayFile struct {
	Interactions       map[string]Interaction        `yaml:"interactions"`
	ClassInteractions  map[string]Interaction        `yaml:"class_interactions"`
	DrugClasses        map[string]string             `yaml:"drug_classes"`
	TherapeuticClasses map[string]string             `yaml:"therapeutic_classes"`
	HighRisk           []string                      `yaml:"high_risk"`
	Contraindications  map[string][]Contraindication `yaml:"contraindications"`
	Guidelines         map[string]DosingGuideline    `yaml:"guidelines"`
	Frequencies        map[string]Frequency          `yaml:"frequencies"`
}

// Load builds a Knowledge from the built-in tables plus any *.yaml/*.yml
// overlay files found in dir. An empty dir (or one that does not exist)
// yields the built-ins unchanged. Files are applied in sorted name order so
// later files win deterministically.
func Load(dir string) (*Knowledge, error) {
	kb := Builtin()
	if dir == "" {
		return kb, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return kb, nil
		}
		return nil, fmt.Errorf("reading knowledge dir %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			files = append(files, name)
		}
	}
	sort.Strings(files)

	for _, name := range files {
		path := filepath.Join(dir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading overlay %s: %w", path, err)
		}
		var of overlayFile
		if err := yaml.Unmarshal(raw, &of); err != nil {
			return nil, fmt.Errorf("parsing overlay %s: %w", path, err)
		}
		kb.apply(&of)
	}
	return kb, nil
}

func (k *Knowledge) apply(of *overlayFile) {
	for key, in := range of.Interactions {
		k.PairInteractions[Canonical(key)] = in
	}
	for key, in := range of.ClassInteractions {
		k.ClassInteractions[Canonical(key)] = in
	}
	for drug, class := range of.DrugClasses {
		k.DrugClasses[Canonical(drug)] = Canonical(class)
	}
	for drug, class := range of.TherapeuticClasses {
		k.TherapeuticClasses[Canonical(drug)] = Canonical(class)
	}
	for _, drug := range of.HighRisk {
		k.HighRisk[Canonical(drug)] = true
	}
	for drug, list := range of.Contraindications {
		k.Contraindications[Canonical(drug)] = list
	}
	for drug, g := range of.Guidelines {
		k.Guidelines[Canonical(drug)] = g
	}
	for key, f := range of.Frequencies {
		k.Frequencies[Canonical(key)] = f
	}
}
