package main

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"room-planner/internal/assets"
	"room-planner/internal/catalog"
	"room-planner/internal/commands"
	"room-planner/internal/config"
	"room-planner/internal/console"
	"room-planner/internal/fonts"
	"room-planner/internal/graphics"
	"room-planner/internal/hud"
	"room-planner/internal/logger"
	"room-planner/internal/render"
	"room-planner/internal/room"
	"room-planner/internal/session"
	"room-planner/internal/terminal"
)

const fontLoadSize = 32

// handoff is the product request from the command line, before catalog lookup.
type handoff struct {
	product string
	color   *room.Color
	scale   *float32
}

func handoffFrom(cmd *cobra.Command, opts options) (*handoff, error) {
	if opts.product == "" {
		if opts.color != "" || cmd.Flags().Changed("scale") {
			return nil, fmt.Errorf("--color and --scale need --product")
		}
		return nil, nil
	}
	h := &handoff{product: opts.product}
	if opts.color != "" {
		c := room.Color(opts.color).Normalize()
		if !c.Valid() {
			return nil, fmt.Errorf("--color: invalid color %q", opts.color)
		}
		h.color = &c
	}
	if cmd.Flags().Changed("scale") {
		if opts.scale <= 0 {
			return nil, fmt.Errorf("--scale must be positive, got %v", opts.scale)
		}
		s := opts.scale
		h.scale = &s
	}
	return h, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

// app wires the session to the window: renderer, HUD and terminal.
type app struct {
	log  *logger.Logger
	sess *session.Session
	rend *render.Renderer
	hud  *hud.HUD
	term *terminal.Terminal

	fontName string
	font     rl.Font
	fontDone bool

	// reloaded is set by the config watcher goroutine and consumed on the frame loop.
	reloaded atomic.Pointer[config.Prefs]
}

func (a *app) Update() {
	if !a.fontDone {
		a.fontDone = true
		a.loadFont()
	}
	if p := a.reloaded.Swap(nil); p != nil {
		a.hud.SetShowFPS(p.HUD.ShowFPS)
		a.hud.SetShowHelp(p.HUD.ShowHelp)
		if lvl, err := logrus.ParseLevel(p.Log.Level); err == nil {
			a.log.SetLevel(lvl)
		}
	}
	a.term.Update()
	a.rend.Update()
}

func (a *app) Draw() {
	a.rend.Draw()
	a.hud.Draw(a.sess)
	a.term.Draw()
}

func (a *app) Close() {
	if a.font.Texture.ID != 0 {
		rl.UnloadFont(a.font)
	}
	a.rend.Close()
}

// loadFont runs on the first frame, once the GL context exists.
func (a *app) loadFont() {
	if a.fontName == "" {
		return
	}
	path, err := fonts.Find(fonts.BaseDirs(), a.fontName)
	if err != nil {
		a.log.WithField("font", a.fontName).Warn("font not found, using default")
		return
	}
	a.font = rl.LoadFontEx(path, fontLoadSize, nil)
	rl.SetTextureFilter(a.font.Texture, rl.FilterBilinear)
	a.hud.SetFont(a.font)
	a.term.SetFont(a.font)
	a.log.WithField("font", path).Debug("font loaded")
}

func run(configPath string, prefs config.Prefs, catalogPath string, h *handoff) error {
	log, err := logger.New(logger.Options{
		Level:      prefs.Log.Level,
		FilePath:   prefs.Log.File,
		MaxSizeMB:  prefs.Log.MaxSizeMB,
		MaxBackups: prefs.Log.MaxBackups,
		Console:    os.Stderr,
	})
	if err != nil {
		return err
	}

	cat, err := loadCatalog(catalogPath)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	defer cat.Close()
	log.WithField("products", cat.Len()).Info("catalog loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fetcher := assets.NewFetcher(prefs.Models.CacheDir, log)
	refs := make([]string, 0, cat.Len())
	for _, p := range cat.All() {
		refs = append(refs, p.Model)
	}
	go func() {
		if err := fetcher.Prefetch(ctx, refs, prefs.Models.Parallel); err == nil {
			log.Debug("models ready")
		}
	}()

	sess := session.New(log)
	if h != nil {
		p, ok := cat.Lookup(h.product)
		if !ok {
			return fmt.Errorf("--product: %q is not in the catalog", h.product)
		}
		_, err := sess.Bootstrap(session.Handoff{
			Product:        p.Ref(),
			Customizations: session.Customizations{Color: h.color, Scale: h.scale},
		})
		if err != nil {
			return err
		}
	}

	overlay := hud.New(prefs.HUD)
	reg := commands.NewRegistry()
	commands.RegisterPlannerCommands(reg, sess, cat, overlay, log)
	term := terminal.New(console.New(log, reg))
	rend := render.New(sess, term, fetcher, prefs.Camera, log)

	a := &app{log: log, sess: sess, rend: rend, hud: overlay, term: term, fontName: prefs.HUD.Font}
	if err := config.Watch(configPath, log, func(p config.Prefs) { a.reloaded.Store(&p) }); err != nil {
		log.WithField("file", configPath).Debug("config not watched")
	}

	graphics.Run(prefs.Window, rend.Background(), a)

	// HUD toggles persist; the room itself does not.
	prefs.HUD.ShowFPS, prefs.HUD.ShowHelp = overlay.ShowFPS, overlay.ShowHelp
	if err := config.Save(configPath, prefs); err != nil {
		log.WithError(err).Warn("preferences not saved")
	}
	return nil
}
