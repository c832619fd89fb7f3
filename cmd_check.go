package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clinsafe/medreview-api/knowledge"
)

var checkFlags struct {
	knowledgeDir string
	pretty       bool
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the clinical knowledge tables",
	Long: `Loads the built-in tables plus any YAML overlays and prints the data
quality report: duplicate pair keys, invalid severities, dangling class
references and inconsistent guidelines. Exits non-zero when issues are
found.`,
	RunE: runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.StringVar(&checkFlags.knowledgeDir, "knowledge-dir", "", "Directory of YAML overlay files extending the built-in tables")
	f.BoolVar(&checkFlags.pretty, "pretty", true, "Indent the JSON output")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	kb, err := loadKnowledge(checkFlags.knowledgeDir)
	if err != nil {
		return err
	}

	report := knowledge.Validate(kb)
	if err := printJSON(report, checkFlags.pretty); err != nil {
		return err
	}
	if !report.Clean() {
		return fmt.Errorf("knowledge tables have quality issues")
	}
	return nil
}
