package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string       `toml:"-"`
	Projects ProjectsConfig `toml:"projects"`
	Store    StoreConfig    `toml:"store"`
	Report   ReportConfig   `toml:"report"`
	Chart    ChartConfig    `toml:"chart"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// StoreConfig holds record store settings from [store] section.
type StoreConfig struct {
	Backend string `toml:"backend,omitempty"` // "json" (default) or "sqlite"
	Path    string `toml:"path,omitempty"`    // Store file path (default: <data dir>/records.<ext>)
}

// ProjectsConfig holds project registry settings from [projects] section.
type ProjectsConfig struct {
	Registry string   `toml:"registry,omitempty"` // "memory" (default) or "json"
	Seed     []string `toml:"seed,omitempty"`     // Projects registered on startup
}

// ReportConfig holds the backing spreadsheet view from [report] section.
type ReportConfig struct {
	SpreadsheetID string `toml:"spreadsheet_id,omitempty"`
	SheetGID      string `toml:"sheet_gid,omitempty"`
}

// ChartConfig holds chart rendering settings from [chart] section.
type ChartConfig struct {
	Format string `toml:"format,omitempty"` // "png" (default) or "text"
	Dir    string `toml:"dir,omitempty"`    // Where PNG files are written (default: OS temp dir)
}

// ServerConfig holds HTTP transport settings from [server] section.
type ServerConfig struct {
	Addr string `toml:"addr,omitempty"`
}

// Persistent returns true if projects added at runtime survive a restart.
func (c ProjectsConfig) Persistent() bool {
	return c.Registry == RegistryJSON
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// Store backends.
const (
	StoreBackendJSON   = "json"
	StoreBackendSQLite = "sqlite"
)

// Registry backends.
const (
	RegistryMemory = "memory"
	RegistryJSON   = "json"
)

// Default configuration values.
const (
	DefaultLogLevel   = "info"
	DefaultServerAddr = "127.0.0.1:8080"
)

// Directory and file names for hourlog.
const (
	AppDirName     = "hourlog"     // Directory name for application data
	ConfigFileName = "config.toml" // Config file name
)

// GlobalConfigDir returns the global config directory path.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: StoreBackendJSON,
		},
		Projects: ProjectsConfig{
			Registry: RegistryMemory,
			Seed:     append([]string(nil), DefaultSeedProjects...),
		},
		Chart: ChartConfig{
			Format: string(ChartFormatPNG),
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// ReportURL returns the link to the spreadsheet view backing the statistics.
func (c *Config) ReportURL() (string, error) {
	if c.Report.SpreadsheetID == "" {
		return "", ErrNoReportLink
	}
	url := fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit", c.Report.SpreadsheetID)
	if c.Report.SheetGID != "" {
		url += "#gid=" + c.Report.SheetGID
	}
	return url, nil
}

// RenderConfigTemplate renders the commented config template with cfg's values.
func RenderConfigTemplate(cfg *Config) string {
	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		// Should never happen with valid data
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}

	return buf.String()
}
