package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Jackefu123/poolkit/cmd/poolview/logger"
	"github.com/Jackefu123/poolkit/pool"
)

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// If help is showing, any dismissing key closes it
		if m.showHelp {
			if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
				m.showHelp = false
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = true

		case key.Matches(msg, m.keys.Up):
			if m.selected > 0 {
				m.selected--
			}

		case key.Matches(msg, m.keys.Down):
			if m.selected < len(m.blocks)-1 {
				m.selected++
			}

		case key.Matches(msg, m.keys.Home):
			m.selected = 0

		case key.Matches(msg, m.keys.End):
			m.selected = len(m.blocks) - 1

		case key.Matches(msg, m.keys.Alloc):
			m.doAlloc()

		case key.Matches(msg, m.keys.Free):
			m.doFree()

		case key.Matches(msg, m.keys.Resize):
			m.doResize()

		case key.Matches(msg, m.keys.Reset):
			m.doReset()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// randomSize picks an allocation size between 1 and a sixteenth of the
// pool, so a handful of allocations produces an interesting chain.
func (m *Model) randomSize() int {
	limit := max(m.capacity/16, 8)
	return 1 + m.rng.Intn(limit)
}

func (m *Model) doAlloc() {
	size := m.randomSize()
	buf, err := m.pool.Alloc(size)
	if err != nil {
		m.statusMessage = fmt.Sprintf("alloc(%d): %v", size, err)
		logger.Debug("alloc failed", "size", size, "error", err)
		m.refresh()
		return
	}
	off := m.offsetOf(buf)
	m.held[off] = buf
	m.statusMessage = fmt.Sprintf("allocated %d bytes at offset %d", size, off)
	logger.Debug("alloc", "size", size, "offset", off)
	m.refresh()
}

func (m *Model) doFree() {
	blk, ok := m.selectedBlock()
	if !ok || blk.Free {
		m.statusMessage = "select an allocated block to free"
		return
	}
	buf, ok := m.held[blk.Offset]
	if !ok {
		m.statusMessage = "block is not held by this viewer"
		return
	}
	if err := m.pool.Free(buf); err != nil {
		m.statusMessage = fmt.Sprintf("free at %d: %v", blk.Offset, err)
		m.refresh()
		return
	}
	delete(m.held, blk.Offset)
	m.statusMessage = fmt.Sprintf("freed %d bytes at offset %d", blk.Size, blk.Offset)
	logger.Debug("free", "size", blk.Size, "offset", blk.Offset)
	m.refresh()
}

func (m *Model) doResize() {
	blk, ok := m.selectedBlock()
	if !ok || blk.Free {
		m.statusMessage = "select an allocated block to resize"
		return
	}
	buf, ok := m.held[blk.Offset]
	if !ok {
		m.statusMessage = "block is not held by this viewer"
		return
	}
	size := m.randomSize()
	newBuf, err := m.pool.Resize(buf, size)
	if err != nil {
		if errors.Is(err, pool.ErrNoSpace) {
			m.statusMessage = fmt.Sprintf("resize to %d: no space, block kept", size)
		} else {
			m.statusMessage = fmt.Sprintf("resize to %d: %v", size, err)
		}
		m.refresh()
		return
	}
	delete(m.held, blk.Offset)
	off := m.offsetOf(newBuf)
	m.held[off] = newBuf
	m.statusMessage = fmt.Sprintf("resized %d -> %d bytes, now at offset %d", blk.Size, size, off)
	logger.Debug("resize", "from", blk.Size, "to", size, "offset", off)
	m.refresh()
}

func (m *Model) doReset() {
	for off, buf := range m.held {
		_ = m.pool.Free(buf)
		delete(m.held, off)
	}
	m.selected = 0
	m.statusMessage = "pool reset"
	logger.Debug("reset")
	m.refresh()
}

// offsetOf locates buf's block offset via the chain snapshot, matching on
// the allocation's size and held set rather than poking at pool internals.
func (m *Model) offsetOf(buf []byte) int {
	for _, b := range m.pool.Blocks() {
		if b.Free || len(buf) != b.Size {
			continue
		}
		if _, taken := m.held[b.Offset]; taken {
			continue
		}
		return b.Offset
	}
	return -1
}
