// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/nexus-tracker/internal/astro"
	"github.com/litescript/nexus-tracker/internal/elements"
	"github.com/litescript/nexus-tracker/internal/ephem"
	"github.com/litescript/nexus-tracker/internal/events"
	"github.com/litescript/nexus-tracker/internal/export"
	"github.com/litescript/nexus-tracker/internal/orbit"
	"github.com/litescript/nexus-tracker/internal/sched"
	"github.com/litescript/nexus-tracker/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewPositions ViewMode = iota
	ViewElements
	ViewOrbits
	ViewEvents
)

const viewCount = 4

// Background task names; notifications are matched on these.
const (
	taskEventSearch = "event search"
	taskSampleOrbit = "orbit sampling"
	taskExportCSV   = "CSV export"
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// TaskDoneMsg wraps a scheduler completion notification.
	TaskDoneMsg sched.Notification
)

// Options carries the tunables the UI needs from configuration.
type Options struct {
	Bodies      []string
	SampleCount int
	SearchDays  float64
	ExportPath  string
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	store     *ephem.Store
	sampler   *orbit.Sampler
	extractor *elements.Extractor
	detector  *events.Detector
	scheduler *sched.Scheduler
	opts      Options

	// UI state
	viewMode  ViewMode
	width     int
	height    int
	ready     bool
	at        astro.Instant
	statusMsg string
	statusErr bool

	// Sub-models
	positions PositionsModel
	elemView  ElementsModel
	orbitView OrbitModel
	eventView EventsModel

	// Background task results, written by the job goroutine and read
	// only after its completion notification arrives.
	foundEvents  []events.Event
	searchedIv   astro.Interval
	sampledPaths []orbit.Path
	pathsReady   bool
}

// New creates a new root UI model positioned at the current instant,
// clamped into the store's supported interval.
func New(store *ephem.Store, sampler *orbit.Sampler, extractor *elements.Extractor,
	detector *events.Detector, scheduler *sched.Scheduler, opts Options) *Model {
	if len(opts.Bodies) == 0 {
		opts.Bodies = ephem.Names()
	}
	if opts.SampleCount <= 1 {
		opts.SampleCount = 360
	}
	if opts.SearchDays <= 0 {
		opts.SearchDays = 365
	}

	m := &Model{
		store:     store,
		sampler:   sampler,
		extractor: extractor,
		detector:  detector,
		scheduler: scheduler,
		opts:      opts,
		viewMode:  ViewPositions,
		at:        store.SupportedInterval().Clamp(astro.Now()),
		positions: NewPositionsModel(opts.Bodies),
		elemView:  NewElementsModel(opts.Bodies),
		orbitView: NewOrbitModel(),
		eventView: NewEventsModel(),
	}
	m.refreshTables()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.listenScheduler())
}

func tickCmd() tea.Cmd {
	return tea.Tick(30*time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// listenScheduler blocks on the scheduler's notification channel and
// forwards the next completion into the Bubble Tea loop. It is re-armed
// on every TaskDoneMsg, keeping the single consumer invariant.
func (m *Model) listenScheduler() tea.Cmd {
	return func() tea.Msg {
		return TaskDoneMsg(<-m.scheduler.Notifications())
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "p":
			m.viewMode = ViewPositions
		case "2", "l":
			m.viewMode = ViewElements
		case "3", "o":
			m.viewMode = ViewOrbits
			if !m.pathsReady {
				m.submit(taskSampleOrbit, m.sampleJob())
			}
		case "4", "e":
			m.viewMode = ViewEvents
		case "tab":
			m.viewMode = (m.viewMode + 1) % viewCount

		case "t":
			m.setInstant(m.at.AddDays(1))
		case "T":
			m.setInstant(m.at.AddDays(-1))
		case "n":
			m.setInstant(astro.Now())

		case "s":
			m.submit(taskEventSearch, m.searchJob())
		case "r":
			m.submit(taskSampleOrbit, m.sampleJob())
		case "x":
			m.submit(taskExportCSV, m.exportJob())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		contentHeight := msg.Height - 6
		m.positions = m.positions.SetSize(msg.Width, contentHeight)
		m.elemView = m.elemView.SetSize(msg.Width, contentHeight)
		m.orbitView = m.orbitView.SetSize(msg.Width, contentHeight)
		m.eventView = m.eventView.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())

	case TaskDoneMsg:
		m.finishTask(sched.Notification(msg))
		cmds = append(cmds, m.listenScheduler())
	}

	return m, tea.Batch(cmds...)
}

// setInstant moves the displayed instant, clamped to the supported
// interval, and refreshes the synchronous tables.
func (m *Model) setInstant(at astro.Instant) {
	m.at = m.store.SupportedInterval().Clamp(at)
	m.refreshTables()
}

func (m *Model) refreshTables() {
	positions, err := m.store.Positions(m.opts.Bodies, m.at)
	if err != nil {
		m.statusMsg = err.Error()
		m.statusErr = true
		return
	}
	m.positions = m.positions.UpdateData(m.at, positions)
	m.elemView = m.elemView.UpdateData(m.at, m.extractor.All(m.at))
}

// submit hands a job to the scheduler, surfacing a busy slot in the
// status line instead of queueing.
func (m *Model) submit(name string, job sched.Job) {
	if err := m.scheduler.Submit(context.Background(), name, job); err != nil {
		m.statusMsg = fmt.Sprintf("%s rejected: %v", name, err)
		m.statusErr = true
		return
	}
	m.statusMsg = name + " started"
	m.statusErr = false
}

func (m *Model) searchJob() sched.Job {
	iv := astro.Interval{Start: m.at, End: m.at.AddDays(m.opts.SearchDays)}
	return func(ctx context.Context) (string, error) {
		evs, err := m.detector.Search(m.opts.Bodies, iv)
		if err != nil {
			return "", err
		}
		m.foundEvents, m.searchedIv = evs, iv
		return fmt.Sprintf("%d events found", len(evs)), nil
	}
}

func (m *Model) sampleJob() sched.Job {
	iv := astro.Interval{Start: m.at, End: m.at.AddDays(m.opts.SearchDays)}
	n := m.opts.SampleCount
	bodies := m.opts.Bodies
	return func(ctx context.Context) (string, error) {
		paths := make([]orbit.Path, 0, len(bodies))
		for _, name := range bodies {
			p, err := m.sampler.Sample(name, iv, n)
			if err != nil {
				return "", err
			}
			paths = append(paths, p)
		}
		m.sampledPaths = paths
		return fmt.Sprintf("%d paths sampled", len(paths)), nil
	}
}

func (m *Model) exportJob() sched.Job {
	iv := astro.Interval{Start: m.at, End: m.at.AddDays(m.opts.SearchDays)}
	n := m.opts.SampleCount
	bodies := m.opts.Bodies
	path := m.opts.ExportPath
	return func(ctx context.Context) (string, error) {
		paths := make([]orbit.Path, 0, len(bodies))
		for _, name := range bodies {
			p, err := m.sampler.Sample(name, iv, n)
			if err != nil {
				return "", err
			}
			paths = append(paths, p)
		}
		if err := export.SaveCSV(path, paths); err != nil {
			return "", err
		}
		return "exported to " + path, nil
	}
}

// finishTask folds a completion notification into the model. The job
// goroutine is done once its notification is received, so reading the
// result fields here is race-free.
func (m *Model) finishTask(n sched.Notification) {
	if n.Err != nil {
		m.statusMsg = fmt.Sprintf("%s failed: %v", n.Name, n.Err)
		m.statusErr = true
		return
	}
	m.statusMsg = fmt.Sprintf("%s: %s (%s)", n.Name, n.Summary, n.Duration.Round(time.Millisecond))
	m.statusErr = false

	switch n.Name {
	case taskEventSearch:
		m.eventView = m.eventView.UpdateData(m.searchedIv, m.foundEvents)
		m.viewMode = ViewEvents
	case taskSampleOrbit:
		m.pathsReady = true
		m.orbitView = m.orbitView.UpdateData(m.sampledPaths)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewPositions:
		content = m.positions.View()
	case ViewElements:
		content = m.elemView.View()
	case ViewOrbits:
		content = m.orbitView.View()
	case ViewEvents:
		content = m.eventView.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m *Model) renderHeader() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("NEXUS TRACKER"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  v%s · solar system body tracker", version.Version)))
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	return b.String()
}

func (m *Model) renderStatusLine() string {
	var b strings.Builder

	status, name := m.scheduler.Status()
	if status == sched.StatusRunning {
		b.WriteString(runningStyle.Render(fmt.Sprintf("  ● %s…", name)))
	} else {
		b.WriteString(okStyle.Render("  ● idle"))
	}

	if m.statusMsg != "" {
		b.WriteString("  ")
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.statusMsg))
		} else {
			b.WriteString(mutedStyle.Render(m.statusMsg))
		}
	}
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderFooter() string {
	keys := "[1]positions [2]elements [3]orbits [4]events · [t/T]±day [n]now · [s]search [r]resample [x]export · [q]quit"
	return mutedStyle.Render("  " + keys)
}
