// ABOUTME: Tests for config loading, merging and environment overrides
// ABOUTME: Uses temp directories and a temporary HOME for isolated file-based tests

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func boolPtr(b bool) *bool { return &b }

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	global := &Settings{Prompt: "$ ", HistoryLimit: 50, PromptColor: "2", Welcome: boolPtr(true)}
	project := &Settings{Prompt: "%3> ", MaxCommandSize: 4096, Welcome: boolPtr(false)}

	result := merge(global, project)

	if result.Prompt != "%3> " {
		t.Errorf("Prompt = %q, want %q", result.Prompt, "%3> ")
	}
	if result.HistoryLimit != 50 {
		t.Errorf("HistoryLimit = %d, want 50", result.HistoryLimit)
	}
	if result.PromptColor != "2" {
		t.Errorf("PromptColor = %q, want %q", result.PromptColor, "2")
	}
	if result.MaxCommandSize != 4096 {
		t.Errorf("MaxCommandSize = %d, want 4096", result.MaxCommandSize)
	}
	if result.ShowWelcome() {
		t.Error("project welcome=false must win")
	}
	if !*global.Welcome {
		t.Error("merge must not modify the global settings")
	}
}

func TestMerge_Nil(t *testing.T) {
	t.Parallel()

	if merge(nil, nil) == nil {
		t.Fatal("merge(nil, nil) should return non-nil")
	}
	g := &Settings{Prompt: "x"}
	if got := merge(g, nil); got.Prompt != "x" {
		t.Errorf("merge(g, nil).Prompt = %q", got.Prompt)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if _, err := loadFile(filepath.Join(dir, "absent.yaml")); !os.IsNotExist(err) {
		t.Errorf("expected not exist error, got %v", err)
	}

	valid := filepath.Join(dir, "valid.yaml")
	writeFile(t, valid, "prompt: \"%1> \"\nhistory_limit: 20\nwelcome: false\nlog_file: /tmp/ashe.log\n")
	s, err := loadFile(valid)
	if err != nil {
		t.Fatal(err)
	}
	if s.Prompt != "%1> " || s.HistoryLimit != 20 || s.ShowWelcome() || s.LogFile != "/tmp/ashe.log" {
		t.Errorf("loaded %+v", s)
	}

	broken := filepath.Join(dir, "broken.yaml")
	writeFile(t, broken, "prompt: [unterminated\n")
	if _, err := loadFile(broken); err == nil {
		t.Error("expected a parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		EnvPrompt:   "env> ",
		EnvHistFile: "/tmp/h",
	}
	s := &Settings{Prompt: "file> ", LogLevel: "warn"}
	ApplyEnv(s, func(k string) string { return env[k] })

	if s.Prompt != "env> " {
		t.Errorf("Prompt = %q", s.Prompt)
	}
	if s.HistoryFile != "/tmp/h" {
		t.Errorf("HistoryFile = %q", s.HistoryFile)
	}
	if s.LogLevel != "warn" {
		t.Errorf("unset override changed LogLevel to %q", s.LogLevel)
	}
}

func TestResolve_Defaults(t *testing.T) {
	t.Parallel()

	s := &Settings{HistoryLimit: -1}
	Resolve(s)

	if s.HistoryLimit != DefaultHistoryLimit {
		t.Errorf("HistoryLimit = %d", s.HistoryLimit)
	}
	if s.MaxCommandSize != DefaultMaxCommandSize {
		t.Errorf("MaxCommandSize = %d", s.MaxCommandSize)
	}
	if s.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q", s.LogLevel)
	}
	if s.HistoryFile != DefaultHistoryFile() {
		t.Errorf("HistoryFile = %q", s.HistoryFile)
	}
	if !s.ShowWelcome() {
		t.Error("welcome must default to true")
	}
}

func TestLoad_GlobalProjectEnv(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvPrompt, "")
	t.Setenv(EnvHistFile, "")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv("ASHE_TEST_DIR", "/var/tmp")

	writeFile(t, filepath.Join(home, ".ashe", "config.yaml"),
		"prompt: global\nhistory_file: ~/.ashe/hist\nlog_level: error\nlog_file: ${ASHE_TEST_DIR}/ashe.log\n")
	writeFile(t, filepath.Join(project, ".ashe", "config.yaml"), "prompt: project\n")

	s, err := Load(project)
	if err != nil {
		t.Fatal(err)
	}
	if s.Prompt != "project" {
		t.Errorf("Prompt = %q, want project", s.Prompt)
	}
	if want := filepath.Join(home, ".ashe", "hist"); s.HistoryFile != want {
		t.Errorf("HistoryFile = %q, want %q", s.HistoryFile, want)
	}
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want the env override", s.LogLevel)
	}
	if s.LogFile != "/var/tmp/ashe.log" {
		t.Errorf("LogFile = %q", s.LogFile)
	}
}

func TestLoad_NoFiles(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvPrompt, "")
	t.Setenv(EnvHistFile, "")
	t.Setenv(EnvLogLevel, "")

	s, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if s.Prompt != "" {
		t.Errorf("Prompt = %q, want empty so the caller picks the default", s.Prompt)
	}
	if want := filepath.Join(home, ".ashe", "history"); s.HistoryFile != want {
		t.Errorf("HistoryFile = %q, want %q", s.HistoryFile, want)
	}
}

func TestLoad_BrokenProjectFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ".ashe", "config.yaml"), "history_limit: lots\n")

	if _, err := Load(project); err == nil {
		t.Fatal("expected an error for an invalid project config")
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in, want string
	}{
		{"~", home},
		{"~/x/y", filepath.Join(home, "x", "y")},
		{"/abs", "/abs"},
		{"~user/x", "~user/x"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExpandHome(tt.in); got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
