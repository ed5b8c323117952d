// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Single-flight task scheduler, event search in the TUI, CSV export
// 0.2.0 - Osculating elements, conjunction/opposition detection
// 0.1.0 - Initial release: JPL kernel loading, position tables, orbit sampling
