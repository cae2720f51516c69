package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), ".env")))
}

func TestLoadSetsUnsetVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	data := "# planner overrides\nPLANNER_TEST_CATALOG=\"shop/catalog.yaml\"\nPLANNER_TEST_KEEP=file\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	t.Setenv("PLANNER_TEST_KEEP", "process")
	t.Cleanup(func() { os.Unsetenv("PLANNER_TEST_CATALOG") })

	require.NoError(t, Load(path))
	assert.Equal(t, "shop/catalog.yaml", os.Getenv("PLANNER_TEST_CATALOG"))
	assert.Equal(t, "process", os.Getenv("PLANNER_TEST_KEEP"))
}
