// Package main runs a headless device for a number of simulated days and
// reports what happened. With -play it mashes buttons like a bored owner.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"sort"
	"time"

	"github.com/MRamiBalles/sdop/internal/host"
	"github.com/MRamiBalles/sdop/internal/infra/storage"
	"github.com/MRamiBalles/sdop/internal/input"
	"github.com/MRamiBalles/sdop/internal/platform/clock"
	"github.com/MRamiBalles/sdop/internal/platform/logger"
	"github.com/MRamiBalles/sdop/internal/platform/metrics"
)

// Config for one soak run.
type Config struct {
	Days      int
	TimeScale float32
	Step      time.Duration
	Play      bool
	Seed      uint64
	Verbose   bool
}

// Result is what the run reports.
type Result struct {
	Days        int            `json:"days"`
	Steps       int            `json:"steps"`
	Presses     int            `json:"presses"`
	Scene       string         `json:"scene"`
	Pet         string         `json:"pet"`
	Money       int32          `json:"money"`
	PetsLost    int            `json:"pets_lost"`
	EventCounts map[string]int `json:"event_counts"`
	Elapsed     string         `json:"elapsed"`
}

func main() {
	days := flag.Int("days", 7, "simulated days to run")
	scale := flag.Float64("scale", 3600, "sim seconds per device second")
	step := flag.Duration("step", 100*time.Millisecond, "device time per step")
	play := flag.Bool("play", true, "press random buttons")
	seed := flag.Uint64("seed", 1, "button RNG seed")
	verbose := flag.Bool("v", false, "log engine output")
	asJSON := flag.Bool("json", false, "print the result as JSON")
	flag.Parse()

	cfg := Config{
		Days:      *days,
		TimeScale: float32(*scale),
		Step:      *step,
		Play:      *play,
		Seed:      *seed,
		Verbose:   *verbose,
	}

	res, err := runSoak(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "soak failed: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(res)
		return
	}
	printResult(res)
}

func runSoak(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Days <= 0 || cfg.TimeScale <= 0 || cfg.Step <= 0 {
		return nil, fmt.Errorf("days, scale and step must be positive")
	}
	log := logger.Discard()
	if cfg.Verbose {
		log = logger.NewLogger()
	}

	db, err := storage.InitSQLite(":memory:")
	if err != nil {
		return nil, err
	}
	defer db.Close()
	journal := storage.NewSQLiteEventRepository(db)

	start := clock.Real{}.Now()
	session, err := host.Boot(ctx, host.Options{
		GameID:       "soak",
		Device:       storage.NewMemoryDevice(),
		Journal:      journal,
		Clock:        clock.NewFake(start),
		SaveInterval: time.Minute,
		TimeScale:    cfg.TimeScale,
		Logger:       log,
	})
	if err != nil {
		return nil, err
	}

	simPerStep := time.Duration(float64(cfg.Step) * float64(cfg.TimeScale))
	steps := int(time.Duration(cfg.Days) * 24 * time.Hour / simPerStep)
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	buttons := []input.Button{input.Left, input.Middle, input.Right}

	res := &Result{Days: cfg.Days, Steps: steps}
	wall := time.Now()
	for i := 0; i < steps; i++ {
		if cfg.Play && rng.IntN(20) == 0 {
			session.Press(buttons[rng.IntN(len(buttons))])
			res.Presses++
		}
		if err := session.Step(ctx, cfg.Step); err != nil {
			return nil, err
		}
	}
	res.Elapsed = time.Since(wall).Round(time.Millisecond).String()

	recap, err := session.Recap(ctx, start)
	if err != nil {
		return nil, err
	}
	state := session.State()
	res.Scene = state.Scene
	res.Pet = state.Game.Pet.Name
	res.Money = int32(state.Game.Money)
	res.PetsLost = int(state.Game.PetHistory.Len)
	res.EventCounts = recap.Counts
	return res, nil
}

func printResult(res *Result) {
	fmt.Println("=========================================")
	fmt.Println("SDOP SOAK RESULTS")
	fmt.Println("=========================================")
	fmt.Printf("Simulated days:  %d\n", res.Days)
	fmt.Printf("Steps:           %d (%s)\n", res.Steps, res.Elapsed)
	fmt.Printf("Button presses:  %d\n", res.Presses)
	fmt.Printf("Final scene:     %s\n", res.Scene)
	fmt.Printf("Current pet:     %s\n", res.Pet)
	fmt.Printf("Money:           %d\n", res.Money)
	fmt.Printf("Pets lost:       %d\n", res.PetsLost)

	types := make([]string, 0, len(res.EventCounts))
	for t := range res.EventCounts {
		types = append(types, t)
	}
	sort.Strings(types)
	fmt.Println("\nEvents:")
	for _, t := range types {
		fmt.Printf("  %-18s %d\n", t, res.EventCounts[t])
	}

	m := metrics.Get().Snapshot()
	fmt.Printf("\nTicks: %d  Saves: %d\n", m.Tick.Count, m.Save.Count)
	fmt.Println("=========================================")
}
