package commands

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"room-planner/internal/catalog"
	"room-planner/internal/placement"
	"room-planner/internal/room"
	"room-planner/internal/selection"
	"room-planner/internal/session"
)

// Overlay is the part of the HUD the hud command toggles.
type Overlay interface {
	SetShowFPS(show bool)
	SetShowHelp(show bool)
}

// RegisterPlannerCommands registers the room planner commands on reg. overlay may be nil,
// in which case the hud command is not registered.
func RegisterPlannerCommands(reg *Registry, sess *session.Session, cat *catalog.Catalog, overlay Overlay, log logrus.FieldLogger) {
	reg.Register("add", "add <product-id>", nil, func(args []string) error {
		if len(args) != 1 {
			return usageErr("add <product-id>")
		}
		p, ok := cat.Lookup(args[0])
		if !ok {
			return fmt.Errorf("add: unknown product %q", args[0])
		}
		sess.AddFurniture(p.Ref())
		return nil
	})

	reg.Register("select", "select <index>", nil, func(args []string) error {
		if len(args) != 1 {
			return usageErr("select <index>")
		}
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return usageErr("select <index>")
		}
		return sess.SelectFurniture(i)
	})

	reg.Register("deselect", "deselect", nil, func(args []string) error {
		sess.Deselect()
		return nil
	})

	reg.Register("delete", "delete", nil, func(args []string) error {
		sess.DeleteSelected()
		return nil
	})

	moveUsage := "move <" + strings.Join(commandNames(), "|") + ">"
	reg.Register("move", moveUsage, nil, func(args []string) error {
		if len(args) == 0 {
			return usageErr(moveUsage)
		}
		cmds := make([]selection.Command, 0, len(args))
		for _, a := range args {
			cmd, err := selection.ParseCommand(a)
			if err != nil {
				return fmt.Errorf("move: %v: %w", err, ErrUsage)
			}
			cmds = append(cmds, cmd)
		}
		for _, cmd := range cmds {
			sess.HandleDirectionalCommand(cmd)
		}
		return nil
	})

	reg.Register("place", "place <x> <z>", nil, func(args []string) error {
		if len(args) != 2 {
			return usageErr("place <x> <z>")
		}
		x, errX := parseFloat32(args[0])
		z, errZ := parseFloat32(args[1])
		if errX != nil || errZ != nil {
			return usageErr("place <x> <z>")
		}
		if _, ok := sess.SelectedID(); !ok {
			return fmt.Errorf("place: nothing selected: %w", ErrUsage)
		}
		r := sess.Room()
		if !placement.Contains(r.Width, r.Length, placement.At(x, z).Position) {
			return fmt.Errorf("place: (%g, %g) is outside the placement area: %w", x, z, ErrUsage)
		}
		spot, ok := placement.Nearest(sess.PlacementGrid(), x, z, float32(placement.DefaultStep)/2)
		if !ok {
			return fmt.Errorf("place: no spot near (%g, %g): %w", x, z, ErrUsage)
		}
		sess.HandlePlacementClick(spot)
		return nil
	})

	reg.Register("resize", "resize <width|length|height> <delta>", nil, func(args []string) error {
		if len(args) != 2 {
			return usageErr("resize <width|length|height> <delta>")
		}
		axis, err := room.ParseAxis(args[0])
		if err != nil {
			return fmt.Errorf("resize: %v: %w", err, ErrUsage)
		}
		delta, err := parseFloat32(args[1])
		if err != nil {
			return usageErr("resize <width|length|height> <delta>")
		}
		sess.ResizeRoom(axis, delta)
		return nil
	})

	reg.Register("wall", "wall <#RRGGBB>", nil, func(args []string) error {
		c, err := colorArg(args, "wall <#RRGGBB>")
		if err != nil {
			return err
		}
		sess.SetWallColor(c)
		return nil
	})

	reg.Register("color", "color <#RRGGBB>", nil, func(args []string) error {
		c, err := colorArg(args, "color <#RRGGBB>")
		if err != nil {
			return err
		}
		sess.SetSelectedColor(c)
		return nil
	})

	reg.Register("customcolor", "customcolor <on|off>", nil, func(args []string) error {
		if len(args) != 1 {
			return usageErr("customcolor <on|off>")
		}
		switch strings.ToLower(args[0]) {
		case "on", "true":
			sess.SetSelectedCustomColor(true)
		case "off", "false":
			sess.SetSelectedCustomColor(false)
		default:
			return usageErr("customcolor <on|off>")
		}
		return nil
	})

	catFS := NewFlagSet("catalog")
	query := catFS.String("q", "", "filter by name, id or category")
	reg.Register("catalog", "catalog [-q query]", catFS, func(args []string) error {
		results := cat.Search(*query)
		if len(results) == 0 {
			log.Info("no products match")
			return nil
		}
		for _, p := range results {
			log.Info(fmt.Sprintf("%s  %s  $%s", p.ID, p.Name, p.Price.StringFixed(2)))
		}
		return nil
	})

	reg.Register("status", "status", nil, func(args []string) error {
		r := sess.Room()
		log.Info(fmt.Sprintf("room %.1fm x %.1fm x %.1fm, walls %s, %d item(s)",
			r.Width, r.Length, r.Height, r.WallColor, len(sess.Furniture())))
		if inst, ok := sess.SelectedInstance(); ok {
			idx, _ := sess.Selection()
			log.Info(fmt.Sprintf("selected #%d %s at (%.2f, %.2f, %.2f)",
				idx, inst.Catalog.Name, inst.Position[0], inst.Position[1], inst.Position[2]))
		}
		return nil
	})

	if overlay != nil {
		hudFS := NewFlagSet("hud")
		fps := hudFS.String("fps", "", "show|hide the FPS counter")
		help := hudFS.String("help", "", "show|hide the controls help")
		reg.Register("hud", "hud [-fps show|hide] [-help show|hide]", hudFS, func(args []string) error {
			if *fps == "" && *help == "" {
				return usageErr("hud [-fps show|hide] [-help show|hide]")
			}
			if *fps != "" {
				show, err := showHide(*fps)
				if err != nil {
					return err
				}
				overlay.SetShowFPS(show)
			}
			if *help != "" {
				show, err := showHide(*help)
				if err != nil {
					return err
				}
				overlay.SetShowHelp(show)
			}
			return nil
		})
	}

	reg.Register("help", "help", nil, func(args []string) error {
		for _, n := range reg.Names() {
			log.Info(reg.Usage(n))
		}
		return nil
	})
}

func commandNames() []string {
	cmds := selection.Commands()
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.String()
	}
	return out
}

func colorArg(args []string, usage string) (room.Color, error) {
	if len(args) != 1 {
		return "", usageErr(usage)
	}
	c := room.Color(args[0]).Normalize()
	if !c.Valid() {
		return "", fmt.Errorf("invalid color %q: %w", args[0], ErrUsage)
	}
	return c, nil
}

func showHide(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "show", "on", "true":
		return true, nil
	case "hide", "off", "false":
		return false, nil
	}
	return false, fmt.Errorf("expected show or hide, got %q: %w", v, ErrUsage)
}

// parseFloat32 accepts finite numbers only.
func parseFloat32(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return float32(f), nil
}

func usageErr(usage string) error {
	return fmt.Errorf("usage: %s: %w", usage, ErrUsage)
}
