package main

import (
	"os"

	"github.com/nyayalabs/nyaya/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
