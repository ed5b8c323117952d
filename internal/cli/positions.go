package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litescript/nexus-tracker/internal/astro"
)

var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "Print heliocentric positions for one instant",
	RunE:  runPositions,
}

func init() {
	positionsCmd.Flags().String("date", "", "UTC date (YYYY-MM-DD, default today)")
	positionsCmd.Flags().String("time", "00:00", "UTC time (HH:MM)")
	rootCmd.AddCommand(positionsCmd)
}

// instantFlag resolves the --date/--time pair. With no date it reports
// the current instant as implicit; callers clamp an implicit instant
// into the supported interval but let an explicit one fail validation.
func instantFlag(cmd *cobra.Command) (at astro.Instant, explicit bool, err error) {
	date, _ := cmd.Flags().GetString("date")
	clock, _ := cmd.Flags().GetString("time")
	if date == "" {
		return astro.Now(), false, nil
	}
	at, err = astro.Parse(date, clock)
	return at, true, err
}

func runPositions(cmd *cobra.Command, args []string) error {
	cfg, store, _, err := setup()
	if err != nil {
		return err
	}
	defer store.Close()

	at, explicit, err := instantFlag(cmd)
	if err != nil {
		return err
	}
	if !explicit {
		at = store.SupportedInterval().Clamp(at)
	}
	positions, err := store.Positions(bodiesOrDefault(cfg), at)
	if err != nil {
		return err
	}

	fmt.Printf("Heliocentric positions at %s\n\n", at)
	fmt.Printf("%-9s %12s %12s %12s %12s\n", "Body", "X (AU)", "Y (AU)", "Z (AU)", "R (AU)")
	for _, b := range store.Bodies() {
		pos, ok := positions[b.Name]
		if !ok {
			continue
		}
		fmt.Printf("%-9s %12.6f %12.6f %12.6f %12.6f\n", b.Name, pos.X, pos.Y, pos.Z, pos.Norm())
	}
	return nil
}
