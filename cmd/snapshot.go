package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arqons/modelschema/pkg/action/generate"
	"github.com/arqons/modelschema/pkg/action/snapshot"
)

func init() {
	rootCmd.AddCommand(NewSnapshotCommand())
}

// NewSnapshotCommand builds the snapshot subcommand tree.
func NewSnapshotCommand() *cobra.Command {
	var (
		options         = &generate.Options{}
		manifestPath    string
		snapshotName    string
		snapshotVersion string
	)

	snapCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "generate and record a model artifact snapshot",
		Run: func(c *cobra.Command, args []string) {
			outFile, err := snapshot.Generate(options, manifestPath, snapshotName, snapshotVersion)
			if err != nil {
				slog.Error("snapshot failed", "error", err)
				os.Exit(1)
			}
			slog.Info("recorded snapshot", "file", outFile, "version", snapshotVersion)
		},
	}
	snapCmd.PersistentFlags().StringVarP(&options.Scan.Dir, "input-directory", "i", "", "Go module directory to scan for marked types")
	snapCmd.PersistentFlags().StringVarP(&options.ModelFile, "model-file", "m", "", "YAML model file with additional declarations")
	snapCmd.PersistentFlags().StringVarP(&options.OutDir, "output-directory", "o", "models", "directory to write generated artifacts")
	snapCmd.PersistentFlags().StringVarP(&options.OutFile, "output-file", "f", "models_gen.ts", "TypeScript output file")
	snapCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "models/manifest.yaml", "manifest file tracking snapshots")
	snapCmd.PersistentFlags().StringVarP(&snapshotName, "name", "n", "models", "snapshot name")
	snapCmd.PersistentFlags().StringVarP(&snapshotVersion, "snapshot-version", "V", "", "snapshot version to record")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded snapshots",
		Run: func(c *cobra.Command, args []string) {
			m, err := snapshot.List(manifestPath)
			if err != nil {
				slog.Error("listing snapshots failed", "error", err)
				os.Exit(1)
			}
			for _, s := range m.Snapshots {
				fmt.Printf("%s\t%s\t%s\n", s.Version, s.Name, s.File)
			}
		},
	}

	diffCmd := &cobra.Command{
		Use:   "diff",
		Short: "diff the current snapshot against the previous one",
		Run: func(c *cobra.Command, args []string) {
			diff, err := snapshot.DiffCurrentWithPrevious(manifestPath)
			if err != nil {
				slog.Error("diffing snapshots failed", "error", err)
				os.Exit(1)
			}
			if diff == "" {
				fmt.Println("no changes")
				return
			}
			fmt.Println(diff)
		},
	}

	snapCmd.AddCommand(listCmd, diffCmd)
	return snapCmd
}
