package main

import (
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Jackefu123/poolkit/pool"
)

// Model is the main application model
type Model struct {
	capacity int
	pool     *pool.Pool
	keys     KeyMap
	rng      *rand.Rand

	// live views of the pool, refreshed after every mutation
	blocks []pool.Block
	stats  pool.Stats

	// allocations held by the UI, keyed by block offset
	held map[int][]byte

	selected int
	width    int
	height   int

	showHelp      bool
	statusMessage string

	err error
}

// NewModel creates the TUI model over a fresh pool.
func NewModel(capacity int) Model {
	m := Model{
		capacity: capacity,
		pool:     pool.New(capacity),
		keys:     DefaultKeyMap(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		held:     make(map[int][]byte),
	}
	m.refresh()
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Close releases the pool. Called by main after the program exits.
func (m Model) Close() error {
	if m.pool == nil {
		return nil
	}
	return m.pool.Close()
}

// refresh re-snapshots the pool state and clamps the selection.
func (m *Model) refresh() {
	m.blocks = m.pool.Blocks()
	m.stats = m.pool.Stats()
	if m.selected >= len(m.blocks) {
		m.selected = len(m.blocks) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	if err := m.pool.Check(); err != nil {
		m.err = err
	}
}

// selectedBlock returns the block under the cursor, if any.
func (m *Model) selectedBlock() (pool.Block, bool) {
	if m.selected < 0 || m.selected >= len(m.blocks) {
		return pool.Block{}, false
	}
	return m.blocks[m.selected], true
}
