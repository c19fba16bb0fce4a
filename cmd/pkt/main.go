package main

import (
	"os"

	"github.com/sambeau/distress/cmd/pkt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		cmd.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
