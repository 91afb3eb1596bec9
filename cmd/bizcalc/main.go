package main

import (
	"os"

	"github.com/Simplici0/pricecalc/cmd/bizcalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
