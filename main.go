package main

import (
	"mypanel/ui"
	"os"

	"github.com/charmbracelet/log"
)

func main() {
	log.SetDefault(log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "myPanel",
		ReportTimestamp: true,
		Level:           log.InfoLevel,
	}))

	log.Info("Starting myPanel", "version", ui.Version)
	ui.NewMainWindow().ShowAndRun()
}
