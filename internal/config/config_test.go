package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "planner.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.yaml")
	data := "window:\n  width: 1600\nhud:\n  show_fps: true\ncatalog: shop/catalog.yaml\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1600, p.Window.Width)
	assert.Equal(t, Default().Window.Height, p.Window.Height)
	assert.True(t, p.HUD.ShowFPS)
	assert.True(t, p.HUD.ShowHelp)
	assert.Equal(t, "shop/catalog.yaml", p.Catalog)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window: [1, 2"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("PLANNER_WINDOW_TARGET_FPS", "30")
	p, err := Load(filepath.Join(t.TempDir(), "planner.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 30, p.Window.TargetFPS)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "planner.yaml")
	want := Default()
	want.Window.Fullscreen = true
	want.HUD.ShowFPS = true
	want.HUD.Font = "Inter"
	want.Log.Level = "debug"
	want.Camera.Fovy = 45
	want.Models.Parallel = 8
	want.Catalog = "catalog.yaml"

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWatchMissingFile(t *testing.T) {
	log, _ := test.NewNullLogger()
	err := Watch(filepath.Join(t.TempDir(), "planner.yaml"), log, func(Prefs) {})
	assert.Error(t, err)
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hud:\n  show_fps: false\n"), 0644))

	var (
		mu     sync.Mutex
		latest *Prefs
	)
	log, _ := test.NewNullLogger()
	require.NoError(t, Watch(path, log, func(p Prefs) {
		mu.Lock()
		latest = &p
		mu.Unlock()
	}))

	require.NoError(t, os.WriteFile(path, []byte("hud:\n  show_fps: true\n  show_help: false\n"), 0644))
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return latest != nil && latest.HUD.ShowFPS && !latest.HUD.ShowHelp
	}, 5*time.Second, 20*time.Millisecond)
}
