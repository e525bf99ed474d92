// Package gold implements golden-file comparisons for wire-format encoder
// tests: encoded bytes are checked against a fixture committed under
// internal/gold/_golden, regenerated by running tests with -gold.update.
package gold

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var update = flag.Bool("gold.update", false, "update golden files")

func path(name string) string {
	return filepath.Join("..", "internal", "gold", "_golden", name+".bin")
}

// Bytes compares data against the golden file name, writing it if
// -gold.update is passed or the file does not yet exist.
func Bytes(t *testing.T, data []byte, name string) {
	t.Helper()
	p := path(name)
	if *update {
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, data, 0o644))
		return
	}
	want, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, data, 0o644))
		return
	}
	require.NoError(t, err)
	require.Equal(t, want, data, "golden file %s mismatch, rerun with -gold.update", p)
}
