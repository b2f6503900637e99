package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCommand_RendersAllCharts(t *testing.T) {
	chdir(t, t.TempDir())
	if err := os.Mkdir("assets", 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	want := []string{
		"✅ Generated assets/chart_throughput.png",
		"✅ Generated assets/chart_latency.png",
		"✅ Generated assets/chart_coldstart.png",
		"✅ Generated assets/chart_size.png",
	}
	got := strings.Split(strings.TrimSpace(out.String()), "\n")
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
	for _, name := range []string{"chart_throughput.png", "chart_latency.png", "chart_coldstart.png", "chart_size.png"} {
		if info, err := os.Stat(filepath.Join("assets", name)); err != nil || info.Size() == 0 {
			t.Fatalf("%s missing or empty: %v", name, err)
		}
	}
}

func TestRootCommand_MissingOutputDir(t *testing.T) {
	chdir(t, t.TempDir())

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{})
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected error when assets/ does not exist")
	}
	if _, err := os.Stat("assets"); !os.IsNotExist(err) {
		t.Fatalf("assets/ must not be created")
	}
}

func TestPublishCommand_RequiresTelegramConfig(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"publish"})
	defer rootCmd.SetArgs([]string{})
	err := rootCmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "telegram.bot_token") {
		t.Fatalf("expected missing token error, got %v", err)
	}
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore chdir failed: %v", err)
		}
	})
}
