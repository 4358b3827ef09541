package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/stylesignal/reactive"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
)

var cpuProfile = flag.String("cpuprofile", "", "write a cpu profile to this file")

func main() {
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	log.Printf("warming up")
	benchmarkPropagation(false)

	benchmarkPropagation(true)
	benchmarkBatch(true)
}

var (
	ww    = []int{1, 10, 100, 1_000}
	hh    = []int{1, 10, 100, 1_000}
	iters = 100
)

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})
	return tbl
}

func appendResult(tbl table.Writer, name string, tach *tachymeter.Tachymeter) {
	calc := tach.Calc()
	tbl.AppendRows([]table.Row{
		{
			name,
			calc.Time.Avg,
			calc.Time.Min,
			calc.Time.P75,
			calc.Time.P99,
			calc.Time.Max,
		},
	})
}

// chains builds w chains of h computations on top of src, each ending in a
// listener.
func chains(rt *reactive.Runtime, src *reactive.Signal[int], w, h int) {
	for i := 0; i < w; i++ {
		last := src
		for j := 0; j < h; j++ {
			prev := last
			last = &reactive.NewComputation(rt, func() int {
				return prev.Get() + 1
			}).Signal
		}
		last.Subscribe(func(int) {})
	}
}

func benchmarkPropagation(shouldRender bool) {
	tbl := newTable("Propagation")

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rt := reactive.NewRuntime()
			src := reactive.NewSignal(rt, 1)
			chains(rt, src, w, h)

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.Set(src.Peek() + 1)
				tach.AddTime(time.Since(start))
			}

			appendResult(tbl, fmt.Sprintf("propagate: %d * %d", w, h), tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

// benchmarkBatch writes n sources feeding one computation in a single batch.
func benchmarkBatch(shouldRender bool) {
	tbl := newTable("Batched writes")

	for _, n := range ww {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		rt := reactive.NewRuntime()
		sources := make([]*reactive.Signal[int], n)
		for i := range sources {
			sources[i] = reactive.NewSignal(rt, i)
		}
		reactive.NewComputation(rt, func() int {
			sum := 0
			for _, s := range sources {
				sum += s.Get()
			}
			return sum
		})

		for i := 0; i < iters; i++ {
			start := time.Now()
			rt.Batch(func() {
				for _, s := range sources {
					s.Set(s.Peek() + 1)
				}
			})
			tach.AddTime(time.Since(start))
		}

		appendResult(tbl, fmt.Sprintf("batch: %d sources", n), tach)
	}

	if shouldRender {
		tbl.Render()
	}
}
