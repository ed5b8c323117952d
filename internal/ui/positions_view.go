package ui

import (
	"fmt"
	"strings"

	"github.com/litescript/nexus-tracker/internal/astro"
)

// PositionsModel renders the heliocentric position table.
type PositionsModel struct {
	width  int
	height int

	at        astro.Instant
	order     []string
	positions map[string]astro.Vec3
}

// NewPositionsModel creates an empty positions view.
func NewPositionsModel(order []string) PositionsModel {
	return PositionsModel{order: order}
}

// SetSize updates the viewport size.
func (m PositionsModel) SetSize(width, height int) PositionsModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData replaces the displayed positions.
func (m PositionsModel) UpdateData(at astro.Instant, positions map[string]astro.Vec3) PositionsModel {
	m.at = at
	m.positions = positions
	return m
}

// View renders the table.
func (m PositionsModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Heliocentric Positions"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %s", m.at)))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-9s %12s %12s %12s %12s",
		"Body", "X (AU)", "Y (AU)", "Z (AU)", "R (AU)")))
	b.WriteString("\n")

	for _, name := range m.order {
		pos, ok := m.positions[name]
		if !ok {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  %-9s %12s", name, "n/a")))
			b.WriteString("\n")
			continue
		}
		b.WriteString(fmt.Sprintf("  %-9s %12.6f %12.6f %12.6f %12.6f\n",
			name, pos.X, pos.Y, pos.Z, pos.Norm()))
	}
	return b.String()
}
