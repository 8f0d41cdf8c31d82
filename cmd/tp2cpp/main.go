package main

import (
	"fmt"
	"os"

	"github.com/daver64/tp2cpp/cmd/tp2cpp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
