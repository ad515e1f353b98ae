// main is the entry point for the codecity CLI.
package main

import (
	"fmt"
	"os"

	"github.com/codecity/codecity/cmd"
	"github.com/codecity/codecity/internal/contract"
	"github.com/codecity/codecity/internal/resultstore"
)

func main() {
	err := cmd.Execute()

	// Shutdown order matters: flush profiles and close the store before
	// deciding the exit code.
	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("failed to stop profiling", perr)
	}
	resultstore.CloseStore()

	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
