// Package snapshot records generated artifacts in the manifest and diffs
// consecutive generations.
package snapshot

import (
	"fmt"
	"os"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/arqons/modelschema/pkg/action/generate"
	"github.com/arqons/modelschema/pkg/manifest"
)

// Generate runs a generation and records the artifact in the manifest.
func Generate(opts *generate.Options, manifestPath, snapshotName, snapshotVersion string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	result, err := generate.Run(opts)
	if err != nil {
		return "", err
	}

	m.AddSnapshot(manifest.Snapshot{
		Name:      snapshotName,
		Version:   snapshotVersion,
		File:      result.OutFile,
		Types:     result.Types,
		Generated: time.Now().UTC(),
	})

	if err := m.Save(manifestPath); err != nil {
		return "", err
	}

	return result.OutFile, nil
}

// List returns all snapshots recorded in the manifest.
func List(manifestPath string) (*manifest.Manifest, error) {
	return manifest.Load(manifestPath)
}

// DiffCurrentWithPrevious loads the manifest, locates the current and
// previous snapshot files, and returns a textual diff of their contents.
func DiffCurrentWithPrevious(manifestPath string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	if m.CurrentVersion == "" || m.PreviousVersion == "" {
		return "", fmt.Errorf("no current/previous snapshots recorded")
	}

	currentPath := m.SnapshotFile(m.CurrentVersion)
	previousPath := m.SnapshotFile(m.PreviousVersion)

	if currentPath == "" || previousPath == "" {
		return "", fmt.Errorf("snapshot files not found in manifest")
	}

	current, err := os.ReadFile(currentPath)
	if err != nil {
		return "", fmt.Errorf("read current snapshot: %w", err)
	}

	previous, err := os.ReadFile(previousPath)
	if err != nil {
		return "", fmt.Errorf("read previous snapshot: %w", err)
	}

	return cmp.Diff(string(previous), string(current)), nil
}
