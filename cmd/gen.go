package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arqons/modelschema/pkg/action/generate"
)

func init() {
	rootCmd.AddCommand(NewGenCommand())
}

// NewGenCommand builds the gen subcommand and its option flags.
func NewGenCommand() *cobra.Command {
	options := &generate.Options{}

	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "generate model artifacts",
		Long:  "Scan Go sources and/or a model file, compile every declaration, and write the TypeScript artifact",
		Run: func(c *cobra.Command, args []string) {
			result, err := generate.Run(options)
			if err != nil {
				slog.Error("generation failed", "error", err)
				os.Exit(1)
			}
			slog.Info("wrote artifacts", "file", result.OutFile, "go_file", result.GoFile, "types", len(result.Types))
		},
	}
	genCmd.PersistentFlags().StringVarP(&options.Scan.Dir, "input-directory", "i", "", "Go module directory to scan for marked types")
	genCmd.PersistentFlags().StringVarP(&options.ModelFile, "model-file", "m", "", "YAML model file with additional declarations")
	genCmd.PersistentFlags().StringVarP(&options.OutDir, "output-directory", "o", "models", "directory to write generated artifacts")
	genCmd.PersistentFlags().StringVarP(&options.OutFile, "output-file", "f", "models_gen.ts", "TypeScript output file")
	genCmd.PersistentFlags().StringVar(&options.GoOutFile, "go-file", "", "also write a generated Go registry file")
	genCmd.PersistentFlags().StringVar(&options.GoPackage, "go-package", "models", "package name for the generated Go registry file")
	genCmd.PersistentFlags().BoolVar(&options.DisableObjectID, "no-object-id", false, "treat ObjectId as an ordinary type reference")
	genCmd.PersistentFlags().BoolVar(&options.StrictRefs, "strict-refs", false, "fail on references to undeclared types")
	genCmd.PersistentFlags().BoolVar(&options.CollectionAliases, "collection-aliases", false, "emit pluralized Array<T> aliases per record")

	return genCmd
}
