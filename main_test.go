package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func TestRun_HelpPrintsUsage(t *testing.T) {
	var gotStatus int
	stdout := testboil.CaptureStdout(t, func(t *testing.T) {
		gotStatus = run([]string{"help"})
	})
	testboil.FailTestIfDiff(t, gotStatus, 0)
	testboil.AssertStringContains(t, stdout, "Usage: ortr")
	testboil.AssertStringContains(t, stdout, "setmodel MODEL_ID")
}

func TestRun_EmptyInputShowsWelcome(t *testing.T) {
	t.Setenv("ORTR_CONFIG_HOME", t.TempDir())
	t.Setenv("OPENROUTER_API_KEY", "")
	var gotStatus int
	stdout := testboil.CaptureStdout(t, func(t *testing.T) {
		gotStatus = run([]string{})
	})
	testboil.FailTestIfDiff(t, gotStatus, 0)
	testboil.AssertStringContains(t, stdout, "OpenRouter AI")
	testboil.AssertStringContains(t, stdout, "Set API Key")
}

func TestRun_SetModelPersistsEndToEnd(t *testing.T) {
	confDir := t.TempDir()
	t.Setenv("ORTR_CONFIG_HOME", confDir)
	var gotStatus int
	stdout := testboil.CaptureStdout(t, func(t *testing.T) {
		gotStatus = run([]string{"setmodel", "openai/gpt-4o"})
	})
	testboil.FailTestIfDiff(t, gotStatus, 0)
	testboil.AssertStringContains(t, stdout, "Model set to openai/gpt-4o")

	b, err := os.ReadFile(filepath.Join(confDir, "ortrConfig.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var onDisk map[string]any
	if err := json.Unmarshal(b, &onDisk); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testboil.FailTestIfDiff(t, onDisk["default_model"].(string), "openai/gpt-4o")
}

func TestRun_AskWithoutKeyInstructsSetkey(t *testing.T) {
	t.Setenv("ORTR_CONFIG_HOME", t.TempDir())
	t.Setenv("OPENROUTER_API_KEY", "")
	stdout := testboil.CaptureStdout(t, func(t *testing.T) {
		run([]string{"why", "is", "the", "sky", "blue"})
	})
	testboil.AssertStringContains(t, stdout, "API key not set")
}

func TestRun_PickOutOfRangeFails(t *testing.T) {
	t.Setenv("ORTR_CONFIG_HOME", t.TempDir())
	var gotStatus int
	testboil.CaptureStdout(t, func(t *testing.T) {
		gotStatus = run([]string{"-pick", "99", "setmodel", "x"})
	})
	if gotStatus == 0 {
		t.Fatal("expected non-zero status for out of range pick")
	}
}

func TestRun_UnknownFlagFails(t *testing.T) {
	if gotStatus := run([]string{"-definitely-not-a-flag"}); gotStatus == 0 {
		t.Fatal("expected non-zero status")
	}
}

func TestRun_SetKeyNeverEchoesRawKey(t *testing.T) {
	t.Setenv("ORTR_CONFIG_HOME", t.TempDir())
	stdout := testboil.CaptureStdout(t, func(t *testing.T) {
		run([]string{"setkey", "sk-or-v1-verysecretkey"})
	})
	if strings.Contains(stdout, "sk-or-v1-verysecretkey") {
		t.Fatalf("raw key leaked to stdout: %q", stdout)
	}
	testboil.AssertStringContains(t, stdout, "API key saved")
}
