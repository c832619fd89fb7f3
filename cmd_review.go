package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clinsafe/medreview-api/evaluator"
	"github.com/clinsafe/medreview-api/knowledge"
)

var reviewFlags struct {
	patientPath  string
	knowledgeDir string
	pretty       bool
}

var reviewCmd = &cobra.Command{
	Use:   "review <medication>...",
	Short: "Review a medication list for safety findings",
	Long: `Runs the full review pipeline on the given medications and prints the
result as JSON. Medications are free text ("warfarin 5mg daily") or bare
drug names. Patient context can be supplied as a JSON file.

Usage:
  medreview review "warfarin 5mg daily" "aspirin 325mg daily"
  medreview review --patient patient.json "metformin 1000mg bid"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReview,
}

func init() {
	f := reviewCmd.Flags()
	f.StringVar(&reviewFlags.patientPath, "patient", "", "Path to a patient context JSON file")
	f.StringVar(&reviewFlags.knowledgeDir, "knowledge-dir", "", "Directory of YAML overlay files extending the built-in tables")
	f.BoolVar(&reviewFlags.pretty, "pretty", true, "Indent the JSON output")
}

func loadPatient(path string) (*evaluator.PatientContext, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read patient file: %w", err)
	}
	var patient evaluator.PatientContext
	if err := json.Unmarshal(data, &patient); err != nil {
		return nil, fmt.Errorf("invalid patient JSON: %w", err)
	}
	return &patient, nil
}

func loadKnowledge(dir string) (*knowledge.Knowledge, error) {
	if dir == "" {
		return knowledge.Builtin(), nil
	}
	return knowledge.Load(dir)
}

func printJSON(v any, pretty bool) error {
	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func runReview(cmd *cobra.Command, args []string) error {
	patient, err := loadPatient(reviewFlags.patientPath)
	if err != nil {
		return err
	}
	kb, err := loadKnowledge(reviewFlags.knowledgeDir)
	if err != nil {
		return err
	}

	inputs := make([]evaluator.MedicationInput, 0, len(args))
	for _, arg := range args {
		inputs = append(inputs, evaluator.MedicationInput{Text: arg})
	}

	result, err := evaluator.New(kb).Review(cmd.Context(), inputs, patient)
	if err != nil {
		return err
	}
	return printJSON(result, reviewFlags.pretty)
}
