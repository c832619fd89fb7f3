package main

import (
	"github.com/spf13/cobra"

	"github.com/clinsafe/medreview-api/evaluator"
)

var dosageFlags struct {
	dose         string
	patientPath  string
	knowledgeDir string
	pretty       bool
}

var dosageCmd = &cobra.Command{
	Use:   "dosage <drug>",
	Short: "Validate a proposed dose against patient-adjusted ranges",
	Long: `Validates one drug's proposed dose and prints the result as JSON.

Usage:
  medreview dosage acetaminophen --dose "500mg q4-6h" --patient patient.json`,
	Args: cobra.ExactArgs(1),
	RunE: runDosage,
}

func init() {
	f := dosageCmd.Flags()
	f.StringVar(&dosageFlags.dose, "dose", "", "Proposed dose, e.g. \"500mg q4-6h\"")
	f.StringVar(&dosageFlags.patientPath, "patient", "", "Path to a patient context JSON file")
	f.StringVar(&dosageFlags.knowledgeDir, "knowledge-dir", "", "Directory of YAML overlay files extending the built-in tables")
	f.BoolVar(&dosageFlags.pretty, "pretty", true, "Indent the JSON output")
}

func runDosage(cmd *cobra.Command, args []string) error {
	patient, err := loadPatient(dosageFlags.patientPath)
	if err != nil {
		return err
	}
	kb, err := loadKnowledge(dosageFlags.knowledgeDir)
	if err != nil {
		return err
	}

	result := evaluator.ValidateDosage(kb, args[0], dosageFlags.dose, patient)
	return printJSON(result, dosageFlags.pretty)
}
