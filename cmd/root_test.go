package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("UD_ASSISTANT_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("TAVILY_API_KEY", "")
	t.Setenv("BOT_TYPE", "")
	t.Cleanup(func() {
		botType = ""
		searchListOnly = false
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	SetBuild("abc123")
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if strings.TrimSpace(out) != "ud-assistant "+Version+" (abc123)" {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestUnknownBotTypeFails(t *testing.T) {
	_, err := execute(t, "ask", "--bot", "gpt", "hola")
	if err == nil || !strings.Contains(err.Error(), "gpt") {
		t.Fatalf("expected unsupported bot type error, got %v", err)
	}
}

func TestAskSmallTalkNeedsNoSearch(t *testing.T) {
	out, err := execute(t, "ask", "hola")
	if err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	if strings.TrimSpace(out) == "" {
		t.Fatalf("expected a greeting")
	}
}

func TestSearchWithoutAPIKeyReportsFailure(t *testing.T) {
	_, err := execute(t, "search", "rector")
	if err == nil || !strings.Contains(err.Error(), "missing") {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

func TestConfigLoadedBeforeRun(t *testing.T) {
	if _, err := execute(t, "version"); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if cfg == nil || cfg.BotType != "deepseek" {
		t.Fatalf("expected default config to be loaded, got %#v", cfg)
	}
}
