package manifest

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "nope", "manifest.yaml"))
	require.NoError(t, err)
	require.Empty(t, m.Snapshots)
	require.Empty(t, m.CurrentVersion)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "manifest.yaml")

	m := &Manifest{}
	m.AddSnapshot(Snapshot{
		Name:      "models",
		Version:   "v1",
		File:      "models/models_gen.ts",
		Types:     []string{"Role", "User"},
		Generated: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, m.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(m, loaded); diff != "" {
		t.Errorf("manifest mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestAddSnapshotRotatesVersions(t *testing.T) {
	m := &Manifest{}
	m.AddSnapshot(Snapshot{Name: "models", Version: "v1", File: "a.ts"})
	require.Equal(t, "v1", m.CurrentVersion)
	require.Empty(t, m.PreviousVersion)

	m.AddSnapshot(Snapshot{Name: "models", Version: "v2", File: "b.ts"})
	require.Equal(t, "v2", m.CurrentVersion)
	require.Equal(t, "v1", m.PreviousVersion)
	require.Len(t, m.Snapshots, 2)
}

func TestAddSnapshotReplacesSameVersion(t *testing.T) {
	m := &Manifest{}
	m.AddSnapshot(Snapshot{Name: "models", Version: "v1", File: "a.ts"})
	m.AddSnapshot(Snapshot{Name: "models", Version: "v1", File: "b.ts"})
	require.Len(t, m.Snapshots, 1)
	require.Equal(t, "b.ts", m.Snapshots[0].File)
	// Re-recording the same version keeps previous empty.
	require.Empty(t, m.PreviousVersion)
}

func TestSnapshotFile(t *testing.T) {
	m := &Manifest{}
	m.AddSnapshot(Snapshot{Name: "models", Version: "v1", File: "a.ts"})
	require.Equal(t, "a.ts", m.SnapshotFile("v1"))
	require.Empty(t, m.SnapshotFile("v9"))
}
