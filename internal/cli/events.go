package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litescript/nexus-tracker/internal/astro"
	"github.com/litescript/nexus-tracker/internal/events"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Search for conjunctions and oppositions",
	RunE:  runEvents,
}

func init() {
	eventsCmd.Flags().String("from", "", "start date (YYYY-MM-DD, default today)")
	eventsCmd.Flags().Float64("days", 365, "interval length in days")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	cfg, store, logger, err := setup()
	if err != nil {
		return err
	}
	defer store.Close()

	start := astro.Now()
	if from, _ := cmd.Flags().GetString("from"); from != "" {
		if start, err = astro.Parse(from, "00:00"); err != nil {
			return err
		}
	}
	days, _ := cmd.Flags().GetFloat64("days")
	iv := astro.Interval{Start: start, End: start.AddDays(days)}

	detector := events.NewDetector(store, cfg.Events.ThresholdDeg, cfg.Events.StepDays, logger)
	found, err := detector.Search(bodiesOrDefault(cfg), iv)
	if err != nil {
		return err
	}

	if len(found) == 0 {
		fmt.Printf("No events between %s and %s\n", iv.Start, iv.End)
		return nil
	}
	fmt.Printf("Events between %s and %s\n\n", iv.Start, iv.End)
	fmt.Printf("%-22s %-9s %-22s %10s\n", "Time", "Body", "Event", "Elong (°)")
	for _, ev := range found {
		fmt.Printf("%-22s %-9s %-22s %10.2f\n", ev.At, ev.Body, ev.Kind, ev.ElongationDeg)
	}
	return nil
}
