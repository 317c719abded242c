package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Jackefu123/poolkit/internal/barrier"
	"github.com/Jackefu123/poolkit/pool"
)

var (
	stressCapacity int
	stressWorkers  int
	stressOps      int
	stressMaxSize  int
	stressSeed     int64
)

func init() {
	cmd := newStressCmd()
	cmd.Flags().IntVar(&stressCapacity, "capacity", 1<<20, "Pool capacity in bytes")
	cmd.Flags().IntVar(&stressWorkers, "workers", 8, "Number of concurrent workers")
	cmd.Flags().IntVar(&stressOps, "ops", 10000, "Operations per worker")
	cmd.Flags().IntVar(&stressMaxSize, "max-size", 512, "Largest single allocation in bytes")
	cmd.Flags().Int64Var(&stressSeed, "seed", 0, "Random seed (0 uses the current time)")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stress",
		Short: "Hammer one pool from many workers and verify invariants",
		Long: `The stress command starts N workers on a shared barrier so they hit
the pool at the same instant, runs M random alloc/free/resize operations
per worker, then validates the descriptor chain invariants and prints a
summary.

Example:
  poolctl stress
  poolctl stress --workers 16 --ops 50000
  poolctl stress --capacity 65536 --max-size 128 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress()
		},
	}
}

// stressSummary is the result of one stress run.
type stressSummary struct {
	Workers    int           `json:"workers"`
	OpsPer     int           `json:"opsPerWorker"`
	Duration   time.Duration `json:"durationNs"`
	OpsPerSec  float64       `json:"opsPerSec"`
	Exhausted  int64         `json:"exhaustedAllocs"`
	FinalCheck string        `json:"finalCheck"`
	Stats      pool.Stats    `json:"stats"`
}

func runStress() error {
	if stressWorkers < 1 || stressOps < 1 || stressMaxSize < 1 {
		return fmt.Errorf("workers, ops, and max-size must all be positive")
	}
	seed := stressSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	p := pool.New(stressCapacity)
	defer p.Close()

	start := barrier.New(stressWorkers)
	exhausted := make([]int64, stressWorkers)

	printInfo("Starting %d workers x %d ops over a %d-byte pool (seed %d)\n",
		stressWorkers, stressOps, stressCapacity, seed)

	began := time.Now()
	var g errgroup.Group
	for w := 0; w < stressWorkers; w++ {
		w := w
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed + int64(w)))
			var held [][]byte
			start.Wait()
			for loopIdx := 0; loopIdx < stressOps; loopIdx++ {
				switch rng.Intn(4) {
				case 0, 1: // Allocate, biased to keep the pool busy
					buf, err := p.Alloc(1 + rng.Intn(stressMaxSize))
					if err != nil {
						exhausted[w]++
						continue
					}
					held = append(held, buf)
				case 2: // Free a random held allocation
					if len(held) == 0 {
						continue
					}
					k := rng.Intn(len(held))
					if err := p.Free(held[k]); err != nil {
						return fmt.Errorf("worker %d: free: %w", w, err)
					}
					held = append(held[:k], held[k+1:]...)
				case 3: // Resize a random held allocation
					if len(held) == 0 {
						continue
					}
					k := rng.Intn(len(held))
					buf, err := p.Resize(held[k], 1+rng.Intn(stressMaxSize))
					if err != nil {
						exhausted[w]++
						continue
					}
					held[k] = buf
				}
			}
			// Drain so the final chain can collapse to one free block.
			for _, buf := range held {
				if err := p.Free(buf); err != nil {
					return fmt.Errorf("worker %d: drain: %w", w, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(began)

	checkResult := "ok"
	if err := p.Check(); err != nil {
		checkResult = err.Error()
	}

	var totalExhausted int64
	for _, n := range exhausted {
		totalExhausted += n
	}
	totalOps := int64(stressWorkers) * int64(stressOps)

	summary := stressSummary{
		Workers:    stressWorkers,
		OpsPer:     stressOps,
		Duration:   elapsed,
		OpsPerSec:  float64(totalOps) / elapsed.Seconds(),
		Exhausted:  totalExhausted,
		FinalCheck: checkResult,
		Stats:      p.Stats(),
	}

	if jsonOut {
		if err := printJSON(summary); err != nil {
			return err
		}
	} else {
		renderStressSummary(summary)
	}

	if checkResult != "ok" {
		return fmt.Errorf("invariant check failed: %s", checkResult)
	}
	return nil
}

func renderStressSummary(s stressSummary) {
	if quiet {
		return
	}
	// message.Printer formats the large counters with locale separators.
	mp := message.NewPrinter(language.English)

	fmt.Println(styled(boldStyle, "Stress run complete"))
	printInfo("  duration:   %s\n", s.Duration.Round(time.Millisecond))
	printInfo("  throughput: %s ops/sec\n", mp.Sprintf("%.0f", s.OpsPerSec))
	printInfo("  allocs:     %s (%s exhausted)\n",
		mp.Sprintf("%d", s.Stats.Allocs), mp.Sprintf("%d", s.Exhausted))
	printInfo("  frees:      %s\n", mp.Sprintf("%d", s.Stats.Frees))
	printInfo("  resizes:    %s\n", mp.Sprintf("%d", s.Stats.Resizes))
	printInfo("  splits:     %s, merges: %s\n",
		mp.Sprintf("%d", s.Stats.Splits), mp.Sprintf("%d", s.Stats.Merges))

	if s.FinalCheck == "ok" {
		printInfo("  invariants: %s\n", styled(freeStyle, "ok"))
	} else {
		fmt.Fprintf(os.Stderr, "  invariants: %s\n", styled(usedStyle, s.FinalCheck))
	}
}
