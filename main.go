// main is the entry point for the sprintburn CLI.
package main

import (
	"fmt"
	"os"

	"github.com/sprintburn/sprintburn/cmd"
	"github.com/sprintburn/sprintburn/internal/contract"
	"github.com/sprintburn/sprintburn/internal/iostore"
)

func main() {
	cmd.SetStoreManager(iostore.Manager)
	defer iostore.CloseStore()

	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("could not stop profiling", stopErr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		iostore.CloseStore()
		os.Exit(1)
	}
}
