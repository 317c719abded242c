package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	quiet   bool
	jsonOut bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "poolctl",
	Short: "Exercise and inspect a fixed-capacity memory pool",
	Long: `poolctl drives the poolkit allocator from the command line. It can
replay an annotated walkthrough of the allocator's behavior, print the
descriptor chain after each step, and stress one pool from many workers
while checking the structural invariants.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	execute()
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as indented JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// Styles for the colorized chain rendering. The original diagnostics used
// plain green/red/yellow ANSI escapes; lipgloss gives us the same palette
// with terminal-capability detection for free.
var (
	freeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	usedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	noteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	boldStyle = lipgloss.NewStyle().Bold(true)
)

func styled(s lipgloss.Style, text string) string {
	if noColor {
		return text
	}
	return s.Render(text)
}
