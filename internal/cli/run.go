package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/litescript/nexus-tracker/internal/elements"
	"github.com/litescript/nexus-tracker/internal/events"
	"github.com/litescript/nexus-tracker/internal/orbit"
	"github.com/litescript/nexus-tracker/internal/sched"
	"github.com/litescript/nexus-tracker/internal/ui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive terminal UI",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, store, logger, err := setup()
	if err != nil {
		return err
	}
	defer store.Close()

	model := ui.New(store,
		orbit.NewSampler(store, cfg.CacheCapacity, logger),
		elements.NewExtractor(store, logger),
		events.NewDetector(store, cfg.Events.ThresholdDeg, cfg.Events.StepDays, logger),
		sched.New(logger),
		ui.Options{
			Bodies:      bodiesOrDefault(cfg),
			SampleCount: cfg.SampleCount,
			ExportPath:  cfg.ExportPath,
		})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
