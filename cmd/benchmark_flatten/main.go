package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/delaneyj/stylesignal/cascade"
	"github.com/delaneyj/stylesignal/reactive"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

func main() {
	log.Print("Starting flatten benchmark, please wait...")
	defer log.Print("Finished flatten benchmark")

	cfgs := []benchmarkConfig{
		{
			name:          "static button",
			fragments:     4,
			properties:    6,
			dynamicFactor: 0,
			iterations:    200000,
		},
		{
			name:          "themed card",
			fragments:     12,
			properties:    10,
			variables:     4,
			dynamicFactor: 0.25,
			iterations:    50000,
		},
		{
			name:          "conditional list item",
			fragments:     24,
			properties:    8,
			variables:     2,
			conditional:   0.5,
			dynamicFactor: 0.5,
			iterations:    20000,
		},
		{
			name:          "large component",
			fragments:     100,
			properties:    20,
			variables:     10,
			conditional:   0.3,
			dynamicFactor: 0.5,
			iterations:    2000,
		},
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"test", "fragments", "properties", "variables", "conditional%", "dynamic%",
		"nTimes", "mode", "time", "flattenRate",
	})

	testRepeats := 5
	for _, cfg := range cfgs {
		log.Printf("Running '%s' config", cfg.name)
		sources := makeFragments(cfg)

		for _, mode := range []string{modeDirect, modeHandle} {
			run := func() int {
				return runFlatten(mode, sources, cfg.iterations)
			}
			// run once to warm up
			run()

			best := time.Hour
			passes := 0
			for i := 0; i < testRepeats; i++ {
				start := time.Now()
				n := run()
				if d := time.Since(start); d < best {
					best, passes = d, n
				}
			}

			rate := float64(passes) / best.Seconds()
			table.Append([]string{
				cfg.name,
				fmt.Sprint(cfg.fragments),
				fmt.Sprint(cfg.properties),
				fmt.Sprint(cfg.variables),
				fmt.Sprint(cfg.conditional),
				fmt.Sprint(cfg.dynamicFactor),
				humanize.Comma(int64(cfg.iterations)),
				mode,
				fmt.Sprint(best),
				humanize.Comma(int64(rate)) + "/s",
			})
		}
	}
	table.Render()
}

const (
	modeDirect = "direct"
	modeHandle = "handle"
)

type benchmarkConfig struct {
	name       string
	fragments  int
	properties int
	variables  int
	// fraction of fragments gated on hover
	conditional float64
	// fraction of properties using a runtime-value expression
	dynamicFactor float64
	iterations    int
}

var dynamicValues = []func(i int) any{
	func(i int) any { return cascade.Expr("rem", 1+i%3) },
	func(i int) any { return cascade.Expr("vw", 10+i%50) },
	func(i int) any { return cascade.Expr("cw", 50) },
	func(i int) any { return cascade.Expr("calc", cascade.Expr("rem", 1), "+", i) },
	func(i int) any { return cascade.Expr("rgbaFromColor", "#336699", 0.5) },
}

func makeFragments(cfg benchmarkConfig) []cascade.Source {
	random := rand.New(rand.NewSource(0))
	sources := make([]cascade.Source, cfg.fragments)
	for f := range sources {
		frag := &cascade.Fragment{
			ID:          fmt.Sprintf("fragment-%d", f),
			Specificity: cascade.Specificity{B: 1 + random.Intn(3), O: f},
		}
		for v := 0; v < cfg.variables; v++ {
			frag.Variables = append(frag.Variables, cascade.Declaration{
				Property: fmt.Sprintf("--var-%d", v),
				Value:    v * f,
			})
		}
		for p := 0; p < cfg.properties; p++ {
			var value any = p
			switch {
			case cfg.variables > 0 && p%4 == 0:
				value = cascade.Expr("var", fmt.Sprintf("--var-%d", p%cfg.variables))
			case random.Float64() < cfg.dynamicFactor:
				value = dynamicValues[random.Intn(len(dynamicValues))](p)
			}
			frag.Properties = append(frag.Properties, cascade.Declaration{
				Property: propertyName(p),
				Value:    value,
			})
		}
		if random.Float64() < cfg.conditional {
			frag.Conditions = &cascade.Conditions{PseudoClasses: &cascade.PseudoClasses{Hover: true}}
		}
		sources[f] = frag
	}
	return sources
}

var propertyNames = []string{"width", "height", "margin", "padding", "color", "fontSize", "borderWidth", "opacity"}

func propertyName(i int) string {
	name := propertyNames[i%len(propertyNames)]
	if n := i / len(propertyNames); n > 0 {
		name += strings.Repeat("X", n)
	}
	return name
}

// runFlatten flattens sources iterations times, toggling hover between
// passes, and returns how many flatten passes ran. A handle only re-runs
// when hover is read.
func runFlatten(mode string, sources []cascade.Source, iterations int) int {
	env, err := cascade.NewEnvironment(reactive.NewRuntime(), cascade.EnvironmentConfig{
		Width:       1024,
		Height:      768,
		Rem:         16,
		PixelRatio:  2,
		FontScale:   1,
		ColorScheme: cascade.ColorSchemeLight,
		Platform:    "web",
	})
	if err != nil {
		log.Fatal(err)
	}
	ctx := cascade.NewContext(env)
	defer ctx.Cleanup()
	opts := cascade.Options{}

	switch mode {
	case modeHandle:
		h, err := cascade.NewHandle(ctx, opts)
		if err != nil {
			log.Fatal(err)
		}
		defer h.Cleanup()
		h.Use(sources)
		for i := 0; i < iterations; i++ {
			ctx.Interaction.Hover.Set(i%2 == 0)
			h.Current().Style.Materialize()
		}
		return h.Passes()

	default:
		for i := 0; i < iterations; i++ {
			ctx.Interaction.Hover.Set(i%2 == 0)
			cascade.Flatten(ctx, opts, sources...).Style.Materialize()
		}
		return iterations
	}
}
