package main

import (
	"os"

	"github.com/csstreelang/csscore/cmd/csstool/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
