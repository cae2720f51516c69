package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"room-planner/internal/config"
	"room-planner/internal/env"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath string
	envPath    string
	catalog    string
	product    string
	color      string
	scale      float32
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "planner",
		Short: "Lay out furniture in a 3D room",
		Long: "planner opens a room you can resize and recolor and fills it with products from the catalog.\n" +
			"With --product the chosen product is placed in the room on start.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := env.Load(opts.envPath); err != nil {
				return fmt.Errorf("env: %w", err)
			}
			prefs, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			catalogPath := prefs.Catalog
			if opts.catalog != "" {
				catalogPath = opts.catalog
			}
			h, err := handoffFrom(cmd, opts)
			if err != nil {
				return err
			}
			return run(opts.configPath, prefs, catalogPath, h)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", config.DefaultPath, "preferences file (YAML)")
	f.StringVar(&opts.envPath, "env", env.DefaultPath, "dotenv file loaded before the config")
	f.StringVar(&opts.catalog, "catalog", "", "catalog file (YAML); overrides the config")
	f.StringVar(&opts.product, "product", "", "catalog id of the product to place on start")
	f.StringVar(&opts.color, "color", "", "custom #RRGGBB color for --product")
	f.Float32Var(&opts.scale, "scale", 1, "scale for --product")
	return cmd
}
