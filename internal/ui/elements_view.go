package ui

import (
	"fmt"
	"strings"

	"github.com/litescript/nexus-tracker/internal/astro"
	"github.com/litescript/nexus-tracker/internal/elements"
)

// ElementsModel renders the osculating elements table.
type ElementsModel struct {
	width  int
	height int

	at    astro.Instant
	order []string
	table map[string]elements.Elements
}

// NewElementsModel creates an empty elements view.
func NewElementsModel(order []string) ElementsModel {
	return ElementsModel{order: order}
}

// SetSize updates the viewport size.
func (m ElementsModel) SetSize(width, height int) ElementsModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData replaces the displayed elements.
func (m ElementsModel) UpdateData(at astro.Instant, table map[string]elements.Elements) ElementsModel {
	m.at = at
	m.table = table
	return m
}

// View renders the table. Bodies whose extraction failed show "n/a"
// instead of a misleading zero.
func (m ElementsModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Osculating Elements"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %s", m.at)))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-9s %14s %14s", "Body", "a (AU)", "e")))
	b.WriteString("\n")

	for _, name := range m.order {
		el, ok := m.table[name]
		if !ok || !el.Available() {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  %-9s %14s %14s", name, "n/a", "n/a")))
			b.WriteString("\n")
			continue
		}
		b.WriteString(fmt.Sprintf("  %-9s %14.6f %14.6f\n", name, el.SemiMajorAxisAU, el.Eccentricity))
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("  Elements are about each body's natural center (Earth for the Moon)."))
	b.WriteString("\n")
	return b.String()
}
