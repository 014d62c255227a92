// Package main is the entry point for the xrate exchange rate service and CLI.
//
// @title xrate API
// @version 1.0
// @description Daily exchange rates and cross-rates read from a dated XML rate source.
// @BasePath /
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
