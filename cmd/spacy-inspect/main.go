package main

import (
	"os"

	"github.com/lfaller/inspect-spacy-model/cmd/spacy-inspect/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
