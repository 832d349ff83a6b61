package main

import (
	"os"

	"github.com/strager/tinyc/cmd/tinyc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
