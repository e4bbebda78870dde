// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/hourlog/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	dataDir       string // Path to the hourlog data directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/hourlog)
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration (local + global).
// The data directory config takes precedence over global config.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	local, err := l.LoadLocal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	base := domain.NewDefaultConfig()

	// Merge: default <- global <- local (later takes precedence)
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if local != nil {
		base = mergeConfigs(base, local)
	}

	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// LoadLocal returns only the data directory configuration.
func (l *Loader) LoadLocal() (*domain.Config, error) {
	return l.loadFile(domain.LocalConfigPath(l.dataDir))
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown key: %s", section))
			continue
		}
		switch section {
		case "store":
			warnings = append(warnings, parseStoreSection(m, &res.Store)...)
		case "projects":
			warnings = append(warnings, parseProjectsSection(m, &res.Projects)...)
		case "report":
			warnings = append(warnings, parseReportSection(m, &res.Report)...)
		case "chart":
			warnings = append(warnings, parseChartSection(m, &res.Chart)...)
		case "server":
			warnings = append(warnings, parseServerSection(m, &res.Server)...)
		case "log":
			warnings = append(warnings, parseLogSection(m, &res.Log)...)
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

func parseStoreSection(m map[string]any, out *domain.StoreConfig) []string {
	var warnings []string
	for k, v := range m {
		switch k {
		case "backend":
			out.Backend = stringValue(v)
		case "path":
			out.Path = stringValue(v)
		default:
			warnings = append(warnings, fmt.Sprintf("unknown key in [store]: %s", k))
		}
	}
	return warnings
}

func parseProjectsSection(m map[string]any, out *domain.ProjectsConfig) []string {
	var warnings []string
	for k, v := range m {
		switch k {
		case "registry":
			out.Registry = stringValue(v)
		case "seed":
			items, ok := v.([]any)
			if !ok {
				warnings = append(warnings, "invalid value in [projects]: seed must be an array of strings")
				continue
			}
			// An explicit empty array clears the default seed.
			seed := make([]string, 0, len(items))
			for _, item := range items {
				if s, ok := item.(string); ok {
					seed = append(seed, s)
				}
			}
			out.Seed = seed
		default:
			warnings = append(warnings, fmt.Sprintf("unknown key in [projects]: %s", k))
		}
	}
	return warnings
}

func parseReportSection(m map[string]any, out *domain.ReportConfig) []string {
	var warnings []string
	for k, v := range m {
		switch k {
		case "spreadsheet_id":
			out.SpreadsheetID = stringValue(v)
		case "sheet_gid":
			out.SheetGID = stringValue(v)
		default:
			warnings = append(warnings, fmt.Sprintf("unknown key in [report]: %s", k))
		}
	}
	return warnings
}

func parseChartSection(m map[string]any, out *domain.ChartConfig) []string {
	var warnings []string
	for k, v := range m {
		switch k {
		case "format":
			out.Format = stringValue(v)
		case "dir":
			out.Dir = stringValue(v)
		default:
			warnings = append(warnings, fmt.Sprintf("unknown key in [chart]: %s", k))
		}
	}
	return warnings
}

func parseServerSection(m map[string]any, out *domain.ServerConfig) []string {
	var warnings []string
	for k, v := range m {
		switch k {
		case "addr":
			out.Addr = stringValue(v)
		default:
			warnings = append(warnings, fmt.Sprintf("unknown key in [server]: %s", k))
		}
	}
	return warnings
}

func parseLogSection(m map[string]any, out *domain.LogConfig) []string {
	var warnings []string
	for k, v := range m {
		switch k {
		case "level":
			out.Level = stringValue(v)
		default:
			warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
		}
	}
	return warnings
}

// stringValue returns v as a string. Numeric ids such as sheet_gid = 0 are accepted too.
func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case int64:
		return fmt.Sprintf("%d", s)
	default:
		return ""
	}
}

// mergeConfigs merges override into base. Non-empty override values win.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Store:    base.Store,
		Projects: base.Projects,
		Report:   base.Report,
		Chart:    base.Chart,
		Server:   base.Server,
		Log:      base.Log,
		Warnings: append([]string{}, base.Warnings...),
	}
	result.Warnings = append(result.Warnings, override.Warnings...)

	if override.Store.Backend != "" {
		result.Store.Backend = override.Store.Backend
	}
	if override.Store.Path != "" {
		result.Store.Path = override.Store.Path
	}
	if override.Projects.Registry != "" {
		result.Projects.Registry = override.Projects.Registry
	}
	if override.Projects.Seed != nil {
		result.Projects.Seed = slices.Clone(override.Projects.Seed)
	}
	if override.Report.SpreadsheetID != "" {
		result.Report.SpreadsheetID = override.Report.SpreadsheetID
	}
	if override.Report.SheetGID != "" {
		result.Report.SheetGID = override.Report.SheetGID
	}
	if override.Chart.Format != "" {
		result.Chart.Format = override.Chart.Format
	}
	if override.Chart.Dir != "" {
		result.Chart.Dir = override.Chart.Dir
	}
	if override.Server.Addr != "" {
		result.Server.Addr = override.Server.Addr
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}

	return result
}
