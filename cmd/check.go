package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arqons/modelschema/internal/diag"
	"github.com/arqons/modelschema/pkg/action/generate"
)

func init() {
	rootCmd.AddCommand(NewCheckCommand())
}

// NewCheckCommand builds the check subcommand: compile everything, report
// every diagnostic, write nothing. Error diagnostics fail the run.
func NewCheckCommand() *cobra.Command {
	options := &generate.Options{}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "compile all declarations and report diagnostics without writing artifacts",
		Run: func(c *cobra.Command, args []string) {
			diags, err := generate.Check(options)
			if err != nil {
				slog.Error("check failed", "error", err)
				os.Exit(1)
			}
			failed := false
			for _, d := range diags {
				switch d.Severity {
				case diag.SeverityError:
					failed = true
					slog.Error("diagnostic", "detail", d.String())
				default:
					slog.Warn("diagnostic", "detail", d.String())
				}
			}
			if failed {
				os.Exit(1)
			}
			slog.Info("check passed", "diagnostics", len(diags))
		},
	}
	checkCmd.PersistentFlags().StringVarP(&options.Scan.Dir, "input-directory", "i", "", "Go module directory to scan for marked types")
	checkCmd.PersistentFlags().StringVarP(&options.ModelFile, "model-file", "m", "", "YAML model file with additional declarations")
	checkCmd.PersistentFlags().BoolVar(&options.StrictRefs, "strict-refs", false, "fail on references to undeclared types")

	return checkCmd
}
