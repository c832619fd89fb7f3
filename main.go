// medreview-api is a rule-based clinical safety evaluator. It reviews
// medication lists for drug-drug interactions, duplicate therapies and
// contraindications, and validates proposed dosages against patient-adjusted
// reference ranges. It can run as an HTTP service speaking task envelopes or
// evaluate one-off requests from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "medreview",
	Short: "Rule-based medication safety evaluator",
	Long: "medreview detects drug-drug interactions, duplicate therapies and\n" +
		"contraindications in medication lists, and validates dosages against\n" +
		"patient-adjusted clinical ranges. Output is advisory decision support,\n" +
		"not a prescribing authority.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(dosageCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
