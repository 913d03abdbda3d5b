package main

import (
	"os"

	"github.com/abhisek/cmdflash/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
