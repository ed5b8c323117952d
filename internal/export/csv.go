// Package export writes sampled orbit data to CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/litescript/nexus-tracker/internal/orbit"
)

var csvHeader = []string{"Body", "Point Index", "X (AU)", "Y (AU)", "Z (AU)"}

// WriteCSV writes the paths as CSV: one header row, then one row per
// sample with the point index counted per body from zero. Empty paths
// contribute no rows.
func WriteCSV(w io.Writer, paths []orbit.Path) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range paths {
		for i, pt := range p.Points {
			row := []string{
				p.Body,
				strconv.Itoa(i),
				strconv.FormatFloat(pt.X, 'f', 8, 64),
				strconv.FormatFloat(pt.Y, 'f', 8, 64),
				strconv.FormatFloat(pt.Z, 'f', 8, 64),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write %s point %d: %w", p.Body, i, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the paths to the named file, creating or truncating it.
func SaveCSV(filename string, paths []orbit.Path) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create %s: %w", filename, err)
	}
	if err := WriteCSV(f, paths); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
