// main is the entry point for the keepwatch CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/keepwatch/cmd"
	"github.com/huangsam/keepwatch/internal/iocache"
)

func main() {
	err := cmd.Execute()

	// Always close stores and flush profiles, even on command failure.
	iocache.CloseCaching()
	if perr := cmd.StopProfiling(); perr != nil {
		fmt.Fprintln(os.Stderr, "⚠️ ", perr)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
