// Command nexus-tracker is a terminal tool for tracking solar system bodies.
package main

import "github.com/litescript/nexus-tracker/internal/cli"

func main() {
	cli.Execute()
}
