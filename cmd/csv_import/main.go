// Package main imports the legacy CSV data (exercise list, numbers and
// per-chat stats files) into the gym schema.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Errorf("csv import: %s", err)
		os.Exit(1)
	}
}
