package main

import (
	"os"

	"github.com/pagelift/evalsample/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
