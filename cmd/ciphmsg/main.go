package main

import (
	"os"

	"ciphmsg/cmd/ciphmsg/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
