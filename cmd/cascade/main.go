package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/delaneyj/stylesignal/cascade"
	"github.com/urfave/cli/v3"
)

const (
	fileKey         = "file"
	formatKey       = "format"
	selectorKey     = "selector"
	onlyKey         = "only"
	hoverKey        = "hover"
	activeKey       = "active"
	focusKey        = "focus"
	widthKey        = "width"
	heightKey       = "height"
	layoutWidthKey  = "layout-width"
	layoutHeightKey = "layout-height"
	colorSchemeKey  = "color-scheme"
	verboseKey      = "verbose"
)

func main() {
	cmd := &cli.Command{
		Name:  "cascade",
		Usage: "Flatten compiled style fragments against a simulated component",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  verboseKey,
				Usage: "Log skipped fragments and omitted declarations",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "flatten",
				Usage:  "Print the flattened style",
				Flags:  append(sessionFlags(), outputFlags()...),
				Action: flatten,
			},
			{
				Name:   "explain",
				Usage:  "Show which fragments take part in the cascade",
				Flags:  sessionFlags(),
				Action: explain,
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func sessionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     fileKey,
			Aliases:  []string{"f"},
			Usage:    "YAML or JSON record file",
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:  onlyKey,
			Usage: "Only use the fragments with these ids",
		},
		&cli.BoolFlag{Name: hoverKey, Usage: "Component is hovered"},
		&cli.BoolFlag{Name: activeKey, Usage: "Component is pressed"},
		&cli.BoolFlag{Name: focusKey, Usage: "Component is focused"},
		&cli.FloatFlag{Name: widthKey, Usage: "Viewport width"},
		&cli.FloatFlag{Name: heightKey, Usage: "Viewport height"},
		&cli.FloatFlag{Name: layoutWidthKey, Usage: "Measured component width"},
		&cli.FloatFlag{Name: layoutHeightKey, Usage: "Measured component height"},
		&cli.StringFlag{Name: colorSchemeKey, Usage: "light or dark"},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  formatKey,
			Usage: "table, css or tree",
			Value: formatTable,
		},
		&cli.StringFlag{
			Name:  selectorKey,
			Usage: "Selector of the css output",
			Value: ".component",
		},
	}
}

func overridesFrom(cmd *cli.Command) overrides {
	o := overrides{only: cmd.StringSlice(onlyKey)}
	if cmd.IsSet(hoverKey) {
		v := cmd.Bool(hoverKey)
		o.hover = &v
	}
	if cmd.IsSet(activeKey) {
		v := cmd.Bool(activeKey)
		o.active = &v
	}
	if cmd.IsSet(focusKey) {
		v := cmd.Bool(focusKey)
		o.focus = &v
	}
	if cmd.IsSet(widthKey) {
		v := cmd.Float(widthKey)
		o.width = &v
	}
	if cmd.IsSet(heightKey) {
		v := cmd.Float(heightKey)
		o.height = &v
	}
	if cmd.IsSet(layoutWidthKey) {
		v := cmd.Float(layoutWidthKey)
		o.layoutWidth = &v
	}
	if cmd.IsSet(layoutHeightKey) {
		v := cmd.Float(layoutHeightKey)
		o.layoutHeight = &v
	}
	if cmd.IsSet(colorSchemeKey) {
		v := cmd.String(colorSchemeKey)
		o.colorScheme = &v
	}
	return o
}

func options(cmd *cli.Command) cascade.Options {
	level := slog.LevelInfo
	if cmd.Root().Bool(verboseKey) {
		level = slog.LevelDebug
	}
	return cascade.Options{
		Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
	}
}

func flatten(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	defer func() {
		log.Printf("Flattened %s in %v", cmd.String(fileKey), time.Since(start))
	}()

	s, err := newSession(cmd.String(fileKey), overridesFrom(cmd))
	if err != nil {
		return err
	}
	defer s.cleanup()

	out := s.flatten(options(cmd))
	switch format := cmd.String(formatKey); format {
	case formatTable:
		renderTable(os.Stdout, out)
	case formatCSS:
		renderCSS(os.Stdout, cmd.String(selectorKey), out)
	case formatTree:
		renderTree(os.Stdout, s.ctx.ID(), out)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}

func explain(ctx context.Context, cmd *cli.Command) error {
	s, err := newSession(cmd.String(fileKey), overridesFrom(cmd))
	if err != nil {
		return err
	}
	defer s.cleanup()

	renderExplain(os.Stdout, s.ctx.ID(), cascade.Explain(s.ctx, s.sources...))
	return nil
}
