// Command eyescompose places an overlay on an image without the GUI and
// writes the watermarked PNG.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"eyes-editor/internal/app"
	"eyes-editor/internal/assets"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "eyescompose: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("eyescompose", flag.ContinueOnError)
	configDir := fs.String("config", app.ConfigDir(), "Directory holding config.toml")
	base := fs.String("base", "", "Path to the base image")
	overlay := fs.String("overlay", "", "Overlay key (empty for none)")
	x := fs.Float64("x", -1, "Overlay center X in canvas pixels (-1 = centered)")
	y := fs.Float64("y", -1, "Overlay center Y in canvas pixels (-1 = centered)")
	scale := fs.Float64("scale", 0, "Overlay scale (0 = fit to canvas)")
	rotate := fs.Float64("rotate", 0, "Overlay rotation in degrees")
	flip := fs.Bool("flip", false, "Flip the overlay horizontally")
	out := fs.String("o", "", "Output PNG path (default from config)")
	noWatermark := fs.Bool("no-watermark", false, "Skip the watermark")
	list := fs.Bool("list", false, "List overlay keys and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := app.LoadConfig(*configDir)
	if err != nil {
		return err
	}
	if *noWatermark {
		cfg.Watermark = false
	}

	catalog, err := assets.Load(cfg.AssetDir)
	if err != nil {
		return err
	}
	if *list {
		for _, e := range catalog.Entries() {
			fmt.Fprintf(stdout, "%-16s %s\n", e.Key, e.Label)
		}
		return nil
	}
	if *base == "" {
		return fmt.Errorf("usage: eyescompose -base <image> [-overlay <%s>] [-o out.png]", strings.Join(catalog.Kinds(), "|"))
	}

	state := app.NewState(cfg, catalog)
	if err := state.LoadImage(*base); err != nil {
		return err
	}

	if *overlay != "" {
		if err := state.AddOverlay(*overlay); err != nil {
			return err
		}
		o := state.Overlay()
		px, py, ps := o.X, o.Y, o.Scale
		if *x >= 0 {
			px = *x
		}
		if *y >= 0 {
			py = *y
		}
		if *scale > 0 {
			ps = *scale
		}
		if err := state.SetOverlayPose(px, py, ps, *rotate, *flip); err != nil {
			return err
		}
	}

	path := *out
	if path == "" {
		path = cfg.ExportName
	}
	if err := state.ExportFile(path); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s\n", path)
	return nil
}
