package main

import (
	"fmt"
	"os"

	"github.com/haeun-lim/haru/internal/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Run(version); err != nil {
		fmt.Fprintf(os.Stderr, "haru: %v\n", err)
		os.Exit(1)
	}
}
