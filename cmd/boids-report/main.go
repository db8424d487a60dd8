package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/lao-tseu-is-alive/go-boids/internal/cli"
	"github.com/lao-tseu-is-alive/go-boids/pkg/simulation"
	golog "github.com/tochemey/goakt/v3/log"
)

type runStats struct {
	runIndex int
	seed     uint64
	ticks    int

	final simulation.FlockStats

	meanPolarization float64
	minNearest       float64
	maxNearest       float64
	// firstAlignedTick is the first sampled tick with polarization >= alignedThreshold, -1 if never.
	firstAlignedTick int
}

type aggregate struct {
	runs             int
	meanPolarization float64
	meanNearest      float64
	alignedRuns      int
}

const alignedThreshold = 0.9

var setup = cli.Setup

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, runs the report and returns the process exit code.
// Returning instead of exiting lets the deferred log close run on every path.
func run(args []string, stdout, stderr io.Writer) int {
	var runs, ticks, sampleEvery int
	var seedBase, seedStep uint64

	fs := flag.NewFlagSet("boids-report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	fs.IntVar(&ticks, "ticks", 3600, "ticks per run")
	fs.IntVar(&sampleEvery, "sample-every", 60, "ticks between two metric samples")
	fs.Uint64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	fs.Uint64Var(&seedStep, "seed-step", 1, "seed increment between runs")

	cfg, logger, closeLog, err := setup(fs, args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	defer closeLog()

	if runs <= 0 || ticks <= 0 || sampleEvery <= 0 {
		fmt.Fprintln(stderr, "error: -runs, -ticks and -sample-every must be > 0")
		return 2
	}
	if seedBase == 0 {
		fmt.Fprintln(stderr, "error: -seed-base must be > 0, seed 0 is not reproducible")
		return 2
	}

	fmt.Fprintf(stdout, "=== Headless Flock Report ===\n")
	fmt.Fprintf(stdout, "boids=%d world=%.0fx%.0f runs=%d ticks=%d seed_base=%d seed_step=%d wall=%t\n\n",
		cfg.BoidCount, cfg.WorldWidth, cfg.WorldHeight, runs, ticks, seedBase, seedStep, cfg.WallAvoidance)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + uint64(i)*seedStep
		rs, err := runSimulation(cfg, logger, i+1, seed, ticks, sampleEvery)
		if err != nil {
			logger.Errorf("run %d failed: %v", i+1, err)
			fmt.Fprintf(stderr, "error: run %d failed: %v\n", i+1, err)
			return 1
		}
		all = append(all, rs)
		printRun(stdout, rs)
	}
	printAggregate(stdout, summarize(all))
	return 0
}

// runSimulation steps one seeded world for ticks frames and samples its metrics.
func runSimulation(base *simulation.Config, logger golog.Logger, runIndex int, seed uint64, ticks, sampleEvery int) (runStats, error) {
	cfg := *base
	cfg.Seed = seed
	w, err := simulation.NewWorld(&cfg, nil, logger)
	if err != nil {
		return runStats{}, err
	}

	rs := runStats{
		runIndex:         runIndex,
		seed:             seed,
		ticks:            ticks,
		minNearest:       math.Inf(1),
		firstAlignedTick: -1,
	}
	var polSum float64
	samples := 0
	for tick := 1; tick <= ticks; tick++ {
		if err := w.Step(); err != nil {
			return rs, fmt.Errorf("tick %d: %w", tick, err)
		}
		if tick%sampleEvery != 0 && tick != ticks {
			continue
		}
		s := w.Stats()
		samples++
		polSum += s.Polarization
		rs.minNearest = math.Min(rs.minNearest, s.MeanNearestDistance)
		rs.maxNearest = math.Max(rs.maxNearest, s.MeanNearestDistance)
		if rs.firstAlignedTick < 0 && s.Polarization >= alignedThreshold {
			rs.firstAlignedTick = tick
		}
	}
	rs.final = w.Stats()
	rs.meanPolarization = polSum / float64(samples)
	return rs, nil
}

func summarize(all []runStats) aggregate {
	agg := aggregate{runs: len(all)}
	if len(all) == 0 {
		return agg
	}
	for _, rs := range all {
		agg.meanPolarization += rs.final.Polarization
		agg.meanNearest += rs.final.MeanNearestDistance
		if rs.firstAlignedTick >= 0 {
			agg.alignedRuns++
		}
	}
	agg.meanPolarization /= float64(len(all))
	agg.meanNearest /= float64(len(all))
	return agg
}

func formatTick(tick int) string {
	if tick < 0 {
		return "never"
	}
	return fmt.Sprintf("%d", tick)
}

func printRun(w io.Writer, rs runStats) {
	fmt.Fprintf(w, "run %d seed=%d ticks=%d\n", rs.runIndex, rs.seed, rs.ticks)
	fmt.Fprintf(w, "  final: %s\n", rs.final)
	fmt.Fprintf(w, "  polarization mean=%.3f first_aligned_tick=%s\n", rs.meanPolarization, formatTick(rs.firstAlignedTick))
	fmt.Fprintf(w, "  nearest neighbor min=%.2f max=%.2f\n\n", rs.minNearest, rs.maxNearest)
}

func printAggregate(w io.Writer, agg aggregate) {
	fmt.Fprintf(w, "=== Aggregate over %d runs ===\n", agg.runs)
	fmt.Fprintf(w, "final polarization mean=%.3f\n", agg.meanPolarization)
	fmt.Fprintf(w, "final nearest neighbor mean=%.2f\n", agg.meanNearest)
	fmt.Fprintf(w, "aligned runs (polarization >= %.1f)=%d/%d\n", alignedThreshold, agg.alignedRuns, agg.runs)
}
