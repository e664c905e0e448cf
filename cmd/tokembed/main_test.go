package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/memohai/tokembed/internal/config"
)

func TestRootCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := newRootCommand()
	if got := cmd.Flags().Lookup("config").DefValue; got != config.DefaultConfigPath {
		t.Fatalf("unexpected config default %q", got)
	}
	if got := cmd.Flags().Lookup("env-file").DefValue; got != config.DefaultEnvFile {
		t.Fatalf("unexpected env-file default %q", got)
	}
}

func TestRootCommandVersion(t *testing.T) {
	t.Parallel()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "tokembed version") {
		t.Fatalf("unexpected version output %q", out.String())
	}
}

func TestRootCommandRejectsArgs(t *testing.T) {
	t.Parallel()

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"extra"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for positional argument")
	}
}
