package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/terraincognita07/ovumcalc/internal/cli"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := cli.NewRootCommand(version)

	for _, name := range []string{"serve", "windows", "phase", "reset-pin"} {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected subcommand %q to be registered", name)
		}
	}
}

func TestRootCommandPrintsVersion(t *testing.T) {
	root := cli.NewRootCommand(version)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute --version: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "ovumcalc v"+version {
		t.Fatalf("expected version line, got %q", got)
	}
}
