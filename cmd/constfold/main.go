package main

import (
	"os"

	"github.com/VaibhavRumale/Constant-Fold/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
