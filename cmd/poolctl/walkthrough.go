package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jackefu123/poolkit/pool"
)

var walkthroughCapacity int

func init() {
	cmd := newWalkthroughCmd()
	cmd.Flags().IntVar(&walkthroughCapacity, "capacity", 100, "Pool capacity in bytes")
	rootCmd.AddCommand(cmd)
}

func newWalkthroughCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "walkthrough",
		Short: "Replay an annotated tour of the allocator",
		Long: `The walkthrough command drives a live pool through a scripted
sequence of allocations, frees, and resizes, printing the descriptor chain
after every step. It is meant as a teaching aid: first-fit placement,
splitting, coalescing, and exhaustion are all visible in the output.

Example:
  poolctl walkthrough
  poolctl walkthrough --capacity 256
  poolctl walkthrough --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWalkthrough(os.Stdout, walkthroughCapacity)
		},
	}
}

// walkStep is the trace of one walkthrough operation.
type walkStep struct {
	Label  string       `json:"label"`
	Result string       `json:"result"`
	Blocks []pool.Block `json:"blocks"`
}

func runWalkthrough(w io.Writer, capacity int) error {
	if capacity < 50 {
		return fmt.Errorf("capacity must be at least 50 bytes, got %d", capacity)
	}
	p := pool.New(capacity)
	defer p.Close()

	var steps []walkStep
	record := func(label, result string) error {
		if err := p.Check(); err != nil {
			return fmt.Errorf("invariant violated after %q: %w", label, err)
		}
		steps = append(steps, walkStep{Label: label, Result: result, Blocks: p.Blocks()})
		return nil
	}

	third := capacity * 3 / 10
	fifth := capacity / 5

	a, err := p.Alloc(third)
	if err != nil {
		return err
	}
	if err := record(fmt.Sprintf("alloc(%d)", third),
		"first-fit takes the head of the free block and splits off the remainder"); err != nil {
		return err
	}

	_, allocErr := p.Alloc(capacity)
	if allocErr == nil {
		return fmt.Errorf("oversized alloc unexpectedly succeeded")
	}
	if err := record(fmt.Sprintf("alloc(%d)", capacity),
		fmt.Sprintf("fails with %v; the chain is unchanged", allocErr)); err != nil {
		return err
	}

	b, err := p.Alloc(fifth)
	if err != nil {
		return err
	}
	if err := record(fmt.Sprintf("alloc(%d)", fifth),
		"the next allocation lands directly behind the first"); err != nil {
		return err
	}

	if err := p.Free(a); err != nil {
		return err
	}
	if err := record("free(first)",
		"the freed head block cannot merge across the allocated neighbor"); err != nil {
		return err
	}

	c, err := p.Alloc(fifth / 2)
	if err != nil {
		return err
	}
	if err := record(fmt.Sprintf("alloc(%d)", fifth/2),
		"first-fit reuses the freed region at offset 0, splitting it"); err != nil {
		return err
	}

	c, err = p.Resize(c, fifth/4)
	if err != nil {
		return err
	}
	if err := record(fmt.Sprintf("resize(third, %d)", fifth/4),
		"shrinking splits in place and the remainder coalesces forward"); err != nil {
		return err
	}

	if err := p.Free(b); err != nil {
		return err
	}
	if err := p.Free(c); err != nil {
		return err
	}
	if err := record("free(second), free(third)",
		"coalescing collapses the chain back to a single free block"); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(steps)
	}
	renderWalkthrough(w, capacity, steps)
	return nil
}

func renderWalkthrough(w io.Writer, capacity int, steps []walkStep) {
	if quiet {
		return
	}
	fmt.Fprintf(w, "%s\n\n", styled(boldStyle, fmt.Sprintf("Pool walkthrough (capacity %d bytes)", capacity)))
	for i, s := range steps {
		fmt.Fprintf(w, "%s %s\n", styled(boldStyle, fmt.Sprintf("step %d:", i+1)), s.Label)
		fmt.Fprintf(w, "  %s\n", styled(noteStyle, s.Result))
		fmt.Fprintf(w, "  %s\n\n", renderChain(s.Blocks))
	}
}

// renderChain formats a descriptor chain as colored segments, free in
// green and allocated in red.
func renderChain(blocks []pool.Block) string {
	var sb strings.Builder
	for i, b := range blocks {
		if i > 0 {
			sb.WriteByte(' ')
		}
		seg := fmt.Sprintf("[%d..%d %s]", b.Offset, b.Offset+b.Size, blockState(b))
		if b.Free {
			sb.WriteString(styled(freeStyle, seg))
		} else {
			sb.WriteString(styled(usedStyle, seg))
		}
	}
	return sb.String()
}

func blockState(b pool.Block) string {
	if b.Free {
		return "free"
	}
	return "used"
}
