package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the entire UI
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.showHelp {
		return m.renderHelp()
	}

	header := headerStyle.Render(fmt.Sprintf("poolview — %d-byte pool", m.capacity))
	bar := paneStyle.Render(m.renderBar())
	table := paneStyle.Render(m.renderTable())
	status := m.renderStatus()

	return lipgloss.JoinVertical(lipgloss.Left, header, bar, table, status)
}

// renderBar draws the pool as one proportional bar, free space in green
// and allocations in red, with the selected block bracketed.
func (m Model) renderBar() string {
	width := m.width - 6
	if width < 16 {
		width = 64
	}

	var sb strings.Builder
	for i, b := range m.blocks {
		cells := b.Size * width / m.capacity
		if cells < 1 {
			cells = 1
		}
		seg := strings.Repeat("█", cells)
		if i == m.selected {
			seg = "▐" + seg + "▌"
		}
		if b.Free {
			sb.WriteString(freeBarStyle.Render(seg))
		} else {
			sb.WriteString(usedBarStyle.Render(seg))
		}
	}
	return sb.String()
}

// renderTable lists the descriptor chain in offset order.
func (m Model) renderTable() string {
	var rows []string
	rows = append(rows, tableHeaderStyle.Render(fmt.Sprintf("%-4s %-10s %-10s %-10s", "#", "OFFSET", "SIZE", "STATE")))
	for i, b := range m.blocks {
		state := "used"
		style := usedRowStyle
		if b.Free {
			state = "free"
			style = freeRowStyle
		}
		row := fmt.Sprintf("%-4d %-10d %-10d %-10s", i, b.Offset, b.Size, state)
		if i == m.selected {
			rows = append(rows, selectedRowStyle.Render(row))
		} else {
			rows = append(rows, style.Render(row))
		}
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderStatus() string {
	line := fmt.Sprintf(
		"%d/%d bytes allocated · %d blocks · allocs %d · frees %d · merges %d",
		m.stats.AllocatedBytes, m.stats.Capacity,
		m.stats.AllocatedBlocks+m.stats.FreeBlocks,
		m.stats.Allocs, m.stats.Frees, m.stats.Merges,
	)
	if m.statusMessage != "" {
		line += " · " + m.statusMessage
	}
	line += "  (? help, q quit)"
	return statusStyle.Render(line)
}

func (m Model) renderHelp() string {
	var sb strings.Builder
	sb.WriteString(helpTitleStyle.Render("poolview keys"))
	sb.WriteString("\n\n")
	for _, b := range []struct{ keys, desc string }{
		{"↑/k, ↓/j", "select previous/next block"},
		{"g, G", "first/last block"},
		{"a", "allocate a random-sized block"},
		{"f", "free the selected block"},
		{"r", "resize the selected block to a random size"},
		{"x", "reset the pool (free everything)"},
		{"?", "toggle this help"},
		{"q", "quit"},
	} {
		sb.WriteString(fmt.Sprintf("  %-12s %s\n", b.keys, b.desc))
	}
	sb.WriteString("\nPress esc, ? or q to close.")
	return paneStyle.Render(sb.String())
}
