// Command notepad is a console note editor. The note can be exported to and
// imported from json, yaml, toml or zstd-compressed json files.
//
// Usage:
//
//	notepad [-resources dir] [-format json] [-resume] [-autosave] [-metrics-file path]
package main

import (
	"fmt"
	"os"

	"github.com/GriffinCanCode/miniapp/internal/apps/notepad"
	"github.com/GriffinCanCode/miniapp/internal/infrastructure/launcher"
)

func main() {
	adapters, err := notepad.Adapters()
	if err != nil {
		fmt.Fprintf(os.Stderr, "notepad: %v\n", err)
		os.Exit(1)
	}
	os.Exit(launcher.Main(notepad.Name, notepad.New(), adapters))
}
