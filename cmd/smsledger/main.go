package main

import (
	"os"

	"github.com/smsledger-dev/smsledger/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
