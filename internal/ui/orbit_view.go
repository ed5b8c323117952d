package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/litescript/nexus-tracker/internal/orbit"
)

// OrbitModel renders a top-down plot of sampled orbital paths.
type OrbitModel struct {
	width  int
	height int

	paths []orbit.Path
}

// NewOrbitModel creates an empty orbit view.
func NewOrbitModel() OrbitModel {
	return OrbitModel{}
}

// SetSize updates the viewport size.
func (m OrbitModel) SetSize(width, height int) OrbitModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData replaces the plotted paths.
func (m OrbitModel) UpdateData(paths []orbit.Path) OrbitModel {
	m.paths = paths
	return m
}

// View renders the plot: the ecliptic plane seen from the north, Sun at
// center, one trace per non-empty path with the body's initial at its
// final sample. Radii use a square-root scale so the inner planets
// don't collapse into the Sun glyph.
func (m OrbitModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Orbit Plot"))
	b.WriteString("\n\n")

	w, h := m.width-4, m.height-6
	if w < 20 {
		w = 20
	}
	if h < 10 {
		h = 10
	}

	maxR := 0.0
	for _, p := range m.paths {
		for _, pt := range p.Points {
			if r := pt.Norm(); r > maxR {
				maxR = r
			}
		}
	}
	if maxR == 0 {
		b.WriteString(mutedStyle.Render("  No sampled paths. Press 'o' to sample orbits."))
		b.WriteString("\n")
		return b.String()
	}

	grid := make([][]rune, h)
	for i := range grid {
		grid[i] = make([]rune, w)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	// Terminal cells are about twice as tall as wide.
	plot := func(x, y float64, r rune) {
		scale := math.Sqrt(math.Hypot(x, y)/maxR) / math.Max(1e-12, math.Hypot(x, y))
		px := int(math.Round(float64(w)/2 + x*scale*float64(w)/2*0.95))
		py := int(math.Round(float64(h)/2 - y*scale*float64(h)/2*0.95))
		if px >= 0 && px < w && py >= 0 && py < h {
			grid[py][px] = r
		}
	}

	for _, p := range m.paths {
		for _, pt := range p.Points {
			plot(pt.X, pt.Y, '·')
		}
		if n := len(p.Points); n > 0 && p.Body != "" {
			last := p.Points[n-1]
			plot(last.X, last.Y, rune(p.Body[0]))
		}
	}
	grid[h/2][w/2] = 'O'

	for _, row := range grid {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  √-scaled to %.1f AU · O = Sun", maxR)))
	b.WriteString("\n")
	return b.String()
}
