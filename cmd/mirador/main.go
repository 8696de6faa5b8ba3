// main is the entry point for the mirador CLI.
package main

import (
	"os"

	"github.com/miradorhq/mirador/cmd"
	"github.com/miradorhq/mirador/internal/contract"
	"github.com/miradorhq/mirador/internal/iocache"
)

func main() {
	defer iocache.CloseStores()

	if err := cmd.Execute(); err != nil {
		contract.LogWarn("Command failed", err)
		os.Exit(1)
	}
}
