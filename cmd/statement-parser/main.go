package main

import (
	"os"

	"github.com/FACorreiaa/statement-extractor/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
