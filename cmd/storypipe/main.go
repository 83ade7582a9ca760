package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	app := newCLIApp()
	if err := app.Run(os.Args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			if msg := exitErr.Error(); msg != "" {
				fmt.Fprintf(os.Stderr, "error: %s\n", msg)
			}
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
