package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/steersuite/crowdsim/recorder"
)

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := strings.TrimSpace(stdout.String()); got != "dev" {
		t.Errorf("version output = %q, want %q", got, "dev")
	}
}

func TestRunCommandRequiresPreset(t *testing.T) {
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"run"})

	if err := root.Execute(); err == nil {
		t.Fatal("expected error when --preset is missing")
	}
}

func TestRunCommandFailsOnMissingPresetFile(t *testing.T) {
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"run", "--preset", "/nonexistent/preset.toml", "--frames", "1"})

	if err := root.Execute(); err == nil {
		t.Fatal("expected error for a preset path that does not exist")
	}
}

func TestRunCommandSeedsAndDrivesAgents(t *testing.T) {
	presetPath := filepath.Join(t.TempDir(), "preset.toml")
	preset := `
name = "smoke"

[[module]]
name = "ppr"
`
	if err := os.WriteFile(presetPath, []byte(preset), 0o644); err != nil {
		t.Fatal(err)
	}
	recPath := filepath.Join(t.TempDir(), "run.gob")

	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{
		"run",
		"--preset", presetPath,
		"--frames", "5",
		"--agents", "3",
		"--rec", recPath,
	})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v; stderr: %s", err, stderr.String())
	}

	frames, snapshots, err := recorder.ReadGobFile(recPath)
	if err != nil {
		t.Fatalf("reading recording: %v", err)
	}
	if len(frames) == 0 {
		t.Fatal("expected at least one recorded frame")
	}
	if len(snapshots[0]) != 3 {
		t.Fatalf("expected 3 seeded agents, got %d", len(snapshots[0]))
	}
}
