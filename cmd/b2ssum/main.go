package main

import (
	"fmt"
	"os"

	"github.com/gtank/blake2s/cmd/b2ssum/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
