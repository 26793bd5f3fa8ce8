package main

import (
	"os"

	"github.com/cruxrec/cruxrec/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
