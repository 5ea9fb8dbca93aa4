package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// chdir stands in for t.Chdir, which needs Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
}

func writeStimulusSet(t *testing.T, dir string, exemplars int, names ...string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create stimulus dir: %v", err)
	}
	for _, name := range names {
		for i := 1; i <= exemplars; i++ {
			path := filepath.Join(dir, fmt.Sprintf("%s%d.png", name, i))
			if err := os.WriteFile(path, []byte("img"), 0o644); err != nil {
				t.Fatalf("write %s: %v", path, err)
			}
		}
	}
}

func writeTestConfig(t *testing.T) (configPath, outputDir string) {
	t.Helper()
	root := t.TempDir()
	identityDir := filepath.Join(root, "identity")
	categoryDir := filepath.Join(root, "category")
	outputDir = filepath.Join(root, "trial_lists")

	writeStimulusSet(t, identityDir, 1, "cat")
	writeStimulusSet(t, categoryDir, 4, "bear", "crow", "deer", "dove")

	configPath = filepath.Join(root, "trialgen.toml")
	content := fmt.Sprintf(`
[stimuli]
identity_dir = %q
category_dir = %q

[output]
dir = %q
`, identityDir, categoryDir, outputDir)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath, outputDir
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestGenerateCommandWritesTrialLists(t *testing.T) {
	configPath, outputDir := writeTestConfig(t)

	out, err := runCommand(t, "--config", configPath, "generate")
	if err != nil {
		t.Fatalf("generate failed: %v (output: %s)", err, out)
	}

	for _, name := range []string{"trials_condition_1.csv", "trials_condition_2.csv"} {
		if _, err := os.Stat(filepath.Join(outputDir, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(outputDir, "manifest.db")); err != nil {
		t.Fatalf("expected manifest.db: %v", err)
	}
	if !strings.Contains(out, "Trial list generation summary") {
		t.Fatalf("summary header missing from output: %s", out)
	}
	if !strings.Contains(out, "Bear, Crow") {
		t.Fatalf("condition categories missing from output: %s", out)
	}
	if !strings.Contains(out, "Trial lists saved to: "+outputDir) {
		t.Fatalf("save location missing from output: %s", out)
	}
}

func TestGenerateCommandDryRun(t *testing.T) {
	configPath, outputDir := writeTestConfig(t)

	out, err := runCommand(t, "--config", configPath, "generate", "--dry-run")
	if err != nil {
		t.Fatalf("generate --dry-run failed: %v (output: %s)", err, out)
	}
	if !strings.Contains(out, "Dry run: no files were written") {
		t.Fatalf("dry-run notice missing: %s", out)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("dry run wrote files: %v", entries)
	}
}

func TestGenerateCommandMissingStimuli(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, "trialgen.toml")
	content := fmt.Sprintf(`
[stimuli]
identity_dir = %q
category_dir = %q

[output]
dir = %q
`, filepath.Join(root, "nope-id"), filepath.Join(root, "nope-cat"), filepath.Join(root, "out"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := runCommand(t, "--config", configPath, "generate")
	if err == nil {
		t.Fatal("expected generate to fail")
	}
	if !strings.Contains(err.Error(), "preflight failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunsCommandListsRecordedRuns(t *testing.T) {
	configPath, _ := writeTestConfig(t)

	if out, err := runCommand(t, "--config", configPath, "generate"); err != nil {
		t.Fatalf("generate failed: %v (output: %s)", err, out)
	}

	out, err := runCommand(t, "--config", configPath, "runs")
	if err != nil {
		t.Fatalf("runs failed: %v (output: %s)", err, out)
	}
	if !strings.Contains(out, "Conditions") {
		t.Fatalf("runs table missing: %s", out)
	}
	if strings.Contains(out, "No runs recorded") {
		t.Fatalf("expected a recorded run: %s", out)
	}
}

func TestRunsCommandEmptyManifest(t *testing.T) {
	configPath, _ := writeTestConfig(t)

	out, err := runCommand(t, "--config", configPath, "runs")
	if err != nil {
		t.Fatalf("runs failed: %v (output: %s)", err, out)
	}
	if !strings.Contains(out, "No runs recorded") {
		t.Fatalf("expected empty manifest notice: %s", out)
	}
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init failed: %v (output: %s)", err, out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample config: %v", err)
	}
	if !strings.Contains(string(data), "[design]") {
		t.Fatalf("sample config missing design section: %s", data)
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected second init without --overwrite to fail")
	}
	if _, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("init with --overwrite failed: %v", err)
	}
}

func TestConfigValidateCommand(t *testing.T) {
	configPath, _ := writeTestConfig(t)

	out, err := runCommand(t, "--config", configPath, "config", "validate")
	if err != nil {
		t.Fatalf("config validate failed: %v (output: %s)", err, out)
	}
	if !strings.Contains(out, "Configuration valid") {
		t.Fatalf("validation confirmation missing: %s", out)
	}
	if !strings.Contains(out, configPath) {
		t.Fatalf("config path missing from output: %s", out)
	}
}

func TestConfigShowCommand(t *testing.T) {
	configPath, outputDir := writeTestConfig(t)

	out, err := runCommand(t, "--config", configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v (output: %s)", err, out)
	}
	if !strings.Contains(out, "repeats = 8") {
		t.Fatalf("effective repeats missing: %s", out)
	}
	if !strings.Contains(out, outputDir) {
		t.Fatalf("output dir missing: %s", out)
	}
}

func TestVersionCommandSkipsConfig(t *testing.T) {
	// No config anywhere; version must still work.
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	out, err := runCommand(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "trialgen") {
		t.Fatalf("unexpected version output: %s", out)
	}
}
