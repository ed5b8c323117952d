package ui

import (
	"fmt"
	"strings"

	"github.com/litescript/nexus-tracker/internal/astro"
	"github.com/litescript/nexus-tracker/internal/events"
)

// EventsModel renders detected conjunctions and oppositions.
type EventsModel struct {
	width  int
	height int

	searched astro.Interval
	found    []events.Event
	haveRun  bool
}

// NewEventsModel creates an empty events view.
func NewEventsModel() EventsModel {
	return EventsModel{}
}

// SetSize updates the viewport size.
func (m EventsModel) SetSize(width, height int) EventsModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData replaces the event list after a completed search.
func (m EventsModel) UpdateData(iv astro.Interval, found []events.Event) EventsModel {
	m.searched = iv
	m.found = found
	m.haveRun = true
	return m
}

// View renders the list.
func (m EventsModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Conjunctions & Oppositions"))
	if m.haveRun {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  %s – %s", m.searched.Start, m.searched.End)))
	}
	b.WriteString("\n\n")

	if !m.haveRun {
		b.WriteString(mutedStyle.Render("  No search yet. Press 'e' to search the next year."))
		b.WriteString("\n")
		return b.String()
	}
	if len(m.found) == 0 {
		b.WriteString(mutedStyle.Render("  No events in the searched interval."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-22s %-9s %-22s %10s",
		"Time", "Body", "Event", "Elong (°)")))
	b.WriteString("\n")
	for _, ev := range m.found {
		b.WriteString(fmt.Sprintf("  %-22s %-9s %-22s %10.2f\n",
			ev.At, ev.Body, ev.Kind, ev.ElongationDeg))
	}
	return b.String()
}
