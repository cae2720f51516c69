package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DefaultPath is the planner config file, relative to the process working directory.
const DefaultPath = "config/planner.yaml"

// EnvPrefix prefixes environment overrides, e.g. PLANNER_WINDOW_WIDTH=1600.
const EnvPrefix = "PLANNER"

// Window configures the planner window.
type Window struct {
	Title      string `mapstructure:"title"`
	Width      int    `mapstructure:"width"`
	Height     int    `mapstructure:"height"`
	Fullscreen bool   `mapstructure:"fullscreen"`
	TargetFPS  int    `mapstructure:"target_fps"`
}

// HUD holds overlay toggles.
type HUD struct {
	ShowFPS  bool   `mapstructure:"show_fps"`
	ShowHelp bool   `mapstructure:"show_help"`
	Font     string `mapstructure:"font"` // family name under assets/fonts or a font file; empty uses raylib's default
}

// Log configures the log file.
type Log struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// Camera configures the orbit camera.
type Camera struct {
	Fovy     float32 `mapstructure:"fovy"`
	Distance float32 `mapstructure:"distance"`
}

// Models configures where remote furniture models are cached.
type Models struct {
	CacheDir string `mapstructure:"cache_dir"`
	Parallel int    `mapstructure:"parallel"` // concurrent downloads at startup
}

// Prefs holds planner preferences. They persist across runs; the designed room does not.
type Prefs struct {
	Window  Window `mapstructure:"window"`
	HUD     HUD    `mapstructure:"hud"`
	Log     Log    `mapstructure:"log"`
	Camera  Camera `mapstructure:"camera"`
	Models  Models `mapstructure:"models"`
	Catalog string `mapstructure:"catalog"` // catalog YAML; empty uses the built-in catalog
}

// Default returns the preferences used when no config file exists.
func Default() Prefs {
	return Prefs{
		Window: Window{
			Title:     "Room Planner",
			Width:     1280,
			Height:    800,
			TargetFPS: 60,
		},
		HUD: HUD{ShowFPS: false, ShowHelp: true},
		Log: Log{
			Level:      "info",
			File:       "logs/planner.log",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Camera: Camera{Fovy: 60, Distance: 8.66},
		Models: Models{CacheDir: "assets/models/downloaded", Parallel: 4},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.fullscreen", d.Window.Fullscreen)
	v.SetDefault("window.target_fps", d.Window.TargetFPS)
	v.SetDefault("hud.show_fps", d.HUD.ShowFPS)
	v.SetDefault("hud.show_help", d.HUD.ShowHelp)
	v.SetDefault("hud.font", d.HUD.Font)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("camera.fovy", d.Camera.Fovy)
	v.SetDefault("camera.distance", d.Camera.Distance)
	v.SetDefault("models.cache_dir", d.Models.CacheDir)
	v.SetDefault("models.parallel", d.Models.Parallel)
	v.SetDefault("catalog", d.Catalog)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads preferences from path (YAML). A missing file yields Default() with any
// PLANNER_* environment overrides applied; a malformed file is an error.
func Load(path string) (Prefs, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Default(), fmt.Errorf("config: %w", err)
		}
	}
	var p Prefs
	if err := v.Unmarshal(&p); err != nil {
		return Default(), fmt.Errorf("config: %w", err)
	}
	return p, nil
}

// Save writes preferences to path, creating its directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	v := viper.New()
	v.Set("window", map[string]any{
		"title":      p.Window.Title,
		"width":      p.Window.Width,
		"height":     p.Window.Height,
		"fullscreen": p.Window.Fullscreen,
		"target_fps": p.Window.TargetFPS,
	})
	v.Set("hud", map[string]any{
		"show_fps":  p.HUD.ShowFPS,
		"show_help": p.HUD.ShowHelp,
		"font":      p.HUD.Font,
	})
	v.Set("log", map[string]any{
		"level":       p.Log.Level,
		"file":        p.Log.File,
		"max_size_mb": p.Log.MaxSizeMB,
		"max_backups": p.Log.MaxBackups,
	})
	v.Set("camera", map[string]any{
		"fovy":     p.Camera.Fovy,
		"distance": p.Camera.Distance,
	})
	v.Set("models", map[string]any{
		"cache_dir": p.Models.CacheDir,
		"parallel":  p.Models.Parallel,
	})
	v.Set("catalog", p.Catalog)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Watch calls fn with the reloaded preferences each time the file at path is written.
// fn runs on the watcher goroutine, not the caller's. The file must already exist.
// Reloads that fail to decode are logged and skipped.
func Watch(path string, log logrus.FieldLogger, fn func(Prefs)) error {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		var p Prefs
		if err := v.Unmarshal(&p); err != nil {
			log.WithError(err).WithField("file", e.Name).Warn("config reload failed")
			return
		}
		log.WithField("file", e.Name).Info("config reloaded")
		fn(p)
	})
	v.WatchConfig()
	return nil
}
