package main

import (
	"os"

	"github.com/templui/soulsync/cmd/soulsync/cmd"
)

func main() {
	if err := cmd.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
