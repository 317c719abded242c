package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Jackefu123/poolkit/cmd/poolview/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const defaultCapacity = 4096

func main() {
	args := os.Args[1:]
	debugMode := false

	filteredArgs := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "--debug" || arg == "-d" {
			debugMode = true
		} else {
			filteredArgs = append(filteredArgs, arg)
		}
	}

	if err := logger.Init(logger.Options{
		Enabled: debugMode,
		Level:   slog.LevelDebug,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}

	capacity := defaultCapacity
	if len(filteredArgs) > 0 {
		switch filteredArgs[0] {
		case "--help", "-h":
			printHelp()
			os.Exit(0)
		case "--version", "-v":
			fmt.Printf("poolview %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built: %s\n", date)
			os.Exit(0)
		default:
			n, err := strconv.Atoi(filteredArgs[0])
			if err != nil || n <= 0 {
				fmt.Fprintf(os.Stderr, "Error: invalid capacity %q\n", filteredArgs[0])
				printUsage()
				os.Exit(1)
			}
			capacity = n
		}
	}

	logger.Info("starting poolview", "capacity", capacity, "debug", debugMode)

	m := NewModel(capacity)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	if model, ok := finalModel.(Model); ok {
		if err := model.Close(); err != nil {
			logger.Warn("error closing pool", "error", err)
		}
	}

	logger.Info("poolview exited normally")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: poolview [options] [capacity]\n")
	fmt.Fprintf(os.Stderr, "Try 'poolview --help' for more information.\n")
}

func printHelp() {
	fmt.Println("poolview - Interactive viewer for a fixed-capacity memory pool")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  poolview [options] [capacity]")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Launches an interactive terminal UI over a live pool allocator.")
	fmt.Println("  The pool starts as one free block of the given capacity")
	fmt.Printf("  (default %d bytes); every allocation, free, and resize is\n", defaultCapacity)
	fmt.Println("  reflected in the block chain immediately.")
	fmt.Println()
	fmt.Println("  Keys:")
	fmt.Println("    ↑/k, ↓/j    Select previous/next block")
	fmt.Println("    a           Allocate a random-sized block")
	fmt.Println("    f           Free the selected block")
	fmt.Println("    r           Resize the selected block to a random size")
	fmt.Println("    x           Reset the pool")
	fmt.Println("    ?           Show help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -d, --debug    Enable debug logging to ~/.poolview/logs/")
	fmt.Println("  -h, --help     Show this help message")
	fmt.Println("  -v, --version  Show version information")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  poolview")
	fmt.Println("  poolview 65536")
	fmt.Println()
	fmt.Println("For scripted operations, use the 'poolctl' command instead.")
}
