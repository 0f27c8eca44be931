// Package main is the NeverNoShow admin tool: it prepares storage, seeds the
// sample landlords and prints what a backend holds.
package main

import (
	"fmt"
	"os"

	"nevernoshow/internal/config"
	"nevernoshow/internal/utils"
)

func main() {
	_ = utils.InitLogger(os.Getenv("LOG_LEVEL"))
	defer utils.Sync()

	rootCmd := newRootCmd(config.Load, os.Stdout)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
