package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litescript/nexus-tracker/internal/astro"
	"github.com/litescript/nexus-tracker/internal/export"
	"github.com/litescript/nexus-tracker/internal/orbit"
)

var orbitCmd = &cobra.Command{
	Use:   "orbit",
	Short: "Sample orbital paths and export them as CSV",
	RunE:  runOrbit,
}

func init() {
	orbitCmd.Flags().String("from", "", "start date (YYYY-MM-DD, default today)")
	orbitCmd.Flags().Float64("days", 365, "interval length in days")
	orbitCmd.Flags().Int("samples", 0, "samples per body (default from config)")
	orbitCmd.Flags().StringP("output", "o", "", "output CSV path (default from config)")
	rootCmd.AddCommand(orbitCmd)
}

func runOrbit(cmd *cobra.Command, args []string) error {
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

	n, _ := cmd.Flags().GetInt("samples")
	if n == 0 {
		n = cfg.SampleCount
	}
	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		out = cfg.ExportPath
	}

	sampler := orbit.NewSampler(store, cfg.CacheCapacity, logger)
	bodies := bodiesOrDefault(cfg)
	paths := make([]orbit.Path, 0, len(bodies))
	total := 0
	for _, name := range bodies {
		p, err := sampler.Sample(name, iv, n)
		if err != nil {
			return fmt.Errorf("sample %s: %w", name, err)
		}
		paths = append(paths, p)
		total += len(p.Points)
	}

	if err := export.SaveCSV(out, paths); err != nil {
		return err
	}
	fmt.Printf("Wrote %d samples for %d bodies to %s\n", total, len(paths), out)
	return nil
}
