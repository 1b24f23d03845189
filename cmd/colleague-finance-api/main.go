package main

import (
	"os"

	"github.com/deppfellow/colleague-finance-api/cmd/colleague-finance-api/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
