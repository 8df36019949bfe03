// ABOUTME: Shell settings loaded from global and project YAML files with env overrides
// ABOUTME: Project values override global ones; ASHE_* variables override both

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied by Resolve.
const (
	DefaultHistoryLimit   = 1000
	DefaultMaxCommandSize = 131072
	DefaultLogLevel       = "info"
)

// Environment variables that override file settings.
const (
	EnvPrompt   = "ASHE_PROMPT"
	EnvHistFile = "ASHE_HISTFILE"
	EnvLogLevel = "ASHE_LOG_LEVEL"
)

// Settings holds the merged configuration.
type Settings struct {
	Prompt         string `yaml:"prompt,omitempty"`
	PromptColor    string `yaml:"prompt_color,omitempty"`
	HistoryFile    string `yaml:"history_file,omitempty"`
	HistoryLimit   int    `yaml:"history_limit,omitempty"`
	MaxCommandSize int    `yaml:"max_command_size,omitempty"`
	LogLevel       string `yaml:"log_level,omitempty"`
	LogFile        string `yaml:"log_file,omitempty"`
	Welcome        *bool  `yaml:"welcome,omitempty"`
}

// ShowWelcome reports whether the welcome message is enabled (default true).
func (s *Settings) ShowWelcome() bool {
	return s.Welcome == nil || *s.Welcome
}

// Load reads and merges global and project-local settings, then applies
// environment overrides and defaults.
func Load(projectRoot string) (*Settings, error) {
	global, err := loadFile(GlobalConfigFile())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(ProjectConfigFile(projectRoot))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	merged := merge(global, project)
	ApplyEnv(merged, os.Getenv)
	ResolveEnvVars(merged)
	Resolve(merged)
	return merged, nil
}

// loadFile reads Settings from a YAML file. Returns zero Settings if the file
// does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays project settings onto global settings.
// Non-zero project values override global values.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global

	if project.Prompt != "" {
		result.Prompt = project.Prompt
	}
	if project.PromptColor != "" {
		result.PromptColor = project.PromptColor
	}
	if project.HistoryFile != "" {
		result.HistoryFile = project.HistoryFile
	}
	if project.HistoryLimit != 0 {
		result.HistoryLimit = project.HistoryLimit
	}
	if project.MaxCommandSize != 0 {
		result.MaxCommandSize = project.MaxCommandSize
	}
	if project.LogLevel != "" {
		result.LogLevel = project.LogLevel
	}
	if project.LogFile != "" {
		result.LogFile = project.LogFile
	}
	if project.Welcome != nil {
		w := *project.Welcome
		result.Welcome = &w
	}

	return &result
}

// ApplyEnv copies the ASHE_* overrides found through getenv into s.
func ApplyEnv(s *Settings, getenv func(string) string) {
	if v := getenv(EnvPrompt); v != "" {
		s.Prompt = v
	}
	if v := getenv(EnvHistFile); v != "" {
		s.HistoryFile = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		s.LogLevel = v
	}
}

// Resolve fills unset fields with defaults and expands "~/" in paths.
func Resolve(s *Settings) {
	if s.HistoryFile == "" {
		s.HistoryFile = DefaultHistoryFile()
	}
	s.HistoryFile = ExpandHome(s.HistoryFile)
	s.LogFile = ExpandHome(s.LogFile)
	if s.HistoryLimit <= 0 {
		s.HistoryLimit = DefaultHistoryLimit
	}
	if s.MaxCommandSize <= 0 {
		s.MaxCommandSize = DefaultMaxCommandSize
	}
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}
}
