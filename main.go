// main is the entry point for the slotpulse CLI.
package main

import (
	"github.com/huangsam/slotpulse/cmd"
	"github.com/huangsam/slotpulse/internal/contract"
	"github.com/huangsam/slotpulse/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()

	if closeErr := cmd.CloseRecords(); closeErr != nil {
		contract.LogWarn("Failed to close record store", closeErr)
	}
	iocache.CloseCaching()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
