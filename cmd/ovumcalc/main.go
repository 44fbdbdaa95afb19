package main

import (
	"fmt"
	"os"

	"github.com/terraincognita07/ovumcalc/internal/cli"
)

var version = "0.1.0"

func main() {
	if err := cli.NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
