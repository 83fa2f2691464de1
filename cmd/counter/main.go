// Command counter is a console counter whose value can be exported to and
// imported from json, yaml, toml or zstd-compressed json files.
//
// Usage:
//
//	counter [-resources dir] [-format json] [-resume] [-autosave] [-metrics-file path]
package main

import (
	"fmt"
	"os"

	"github.com/GriffinCanCode/miniapp/internal/apps/counter"
	"github.com/GriffinCanCode/miniapp/internal/infrastructure/launcher"
)

func main() {
	adapters, err := counter.Adapters()
	if err != nil {
		fmt.Fprintf(os.Stderr, "counter: %v\n", err)
		os.Exit(1)
	}
	os.Exit(launcher.Main(counter.Name, counter.New(), adapters))
}
