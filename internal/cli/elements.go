package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litescript/nexus-tracker/internal/elements"
)

var elementsCmd = &cobra.Command{
	Use:   "elements",
	Short: "Print osculating orbital elements for one instant",
	RunE:  runElements,
}

func init() {
	elementsCmd.Flags().String("date", "", "UTC date (YYYY-MM-DD, default today)")
	elementsCmd.Flags().String("time", "00:00", "UTC time (HH:MM)")
	rootCmd.AddCommand(elementsCmd)
}

func runElements(cmd *cobra.Command, args []string) error {
	cfg, store, logger, err := setup()
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
	x := elements.NewExtractor(store, logger)

	fmt.Printf("Osculating elements at %s\n\n", at)
	fmt.Printf("%-9s %14s %14s\n", "Body", "a (AU)", "e")
	for _, name := range bodiesOrDefault(cfg) {
		el := x.At(name, at)
		if !el.Available() {
			fmt.Printf("%-9s %14s %14s\n", name, "n/a", "n/a")
			continue
		}
		fmt.Printf("%-9s %14.6f %14.6f\n", name, el.SemiMajorAxisAU, el.Eccentricity)
	}
	return nil
}
