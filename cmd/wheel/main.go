package main

import (
	"os"

	"github.com/elizafairlady/go-wheel/cmd/wheel/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
