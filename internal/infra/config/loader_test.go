package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/hourlog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0644))
}

func TestLoader_Load_LocalConfigOnly(t *testing.T) {
	dataDir := t.TempDir()
	globalDir := t.TempDir()

	writeConfig(t, dataDir, `
[store]
backend = "sqlite"
path = "/var/lib/hourlog/records.db"

[projects]
registry = "json"
seed = ["Website", "Backend"]

[report]
spreadsheet_id = "abc123"
sheet_gid = 0

[chart]
format = "text"

[server]
addr = ":9090"

[log]
level = "debug"
`)

	loader := NewLoaderWithGlobalDir(dataDir, globalDir)
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, domain.StoreBackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "/var/lib/hourlog/records.db", cfg.Store.Path)
	assert.Equal(t, domain.RegistryJSON, cfg.Projects.Registry)
	assert.Equal(t, []string{"Website", "Backend"}, cfg.Projects.Seed)
	assert.Equal(t, "abc123", cfg.Report.SpreadsheetID)
	assert.Equal(t, "0", cfg.Report.SheetGID)
	assert.Equal(t, "text", cfg.Chart.Format)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_Load_GlobalConfigOnly(t *testing.T) {
	dataDir := t.TempDir()
	globalDir := t.TempDir()

	writeConfig(t, globalDir, `
[report]
spreadsheet_id = "global-sheet"
`)

	loader := NewLoaderWithGlobalDir(dataDir, globalDir)
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "global-sheet", cfg.Report.SpreadsheetID)
	assert.Equal(t, domain.StoreBackendJSON, cfg.Store.Backend)
}

func TestLoader_Load_MergeLocalOverridesGlobal(t *testing.T) {
	dataDir := t.TempDir()
	globalDir := t.TempDir()

	writeConfig(t, globalDir, `
[report]
spreadsheet_id = "global-sheet"
sheet_gid = "7"

[log]
level = "warn"
`)
	writeConfig(t, dataDir, `
[report]
spreadsheet_id = "local-sheet"
`)

	loader := NewLoaderWithGlobalDir(dataDir, globalDir)
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "local-sheet", cfg.Report.SpreadsheetID)
	assert.Equal(t, "7", cfg.Report.SheetGID, "global value kept when local omits it")
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoader_Load_NoConfigFiles(t *testing.T) {
	loader := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir())
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}

func TestLoader_Load_EmptySeedClearsDefaults(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, `
[projects]
seed = []
`)

	loader := NewLoaderWithGlobalDir(dataDir, "")
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.Projects.Seed)
	assert.NotNil(t, cfg.Projects.Seed)
}

func TestLoader_Load_InvalidSeed(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, `
[projects]
seed = "Website"
`)

	loader := NewLoaderWithGlobalDir(dataDir, "")
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultSeedProjects, cfg.Projects.Seed)
	assert.Equal(t, []string{"invalid value in [projects]: seed must be an array of strings"}, cfg.Warnings)
}

func TestLoader_LoadGlobal(t *testing.T) {
	globalDir := t.TempDir()
	writeConfig(t, globalDir, `
[chart]
dir = "/tmp/charts"
`)

	loader := NewLoaderWithGlobalDir(t.TempDir(), globalDir)
	cfg, err := loader.LoadGlobal()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/charts", cfg.Chart.Dir)
}

func TestLoader_LoadGlobal_NotFound(t *testing.T) {
	loader := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir())
	_, err := loader.LoadGlobal()
	assert.ErrorIs(t, err, os.ErrNotExist)

	loader = NewLoaderWithGlobalDir(t.TempDir(), "")
	_, err = loader.LoadGlobal()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_LoadLocal_NotFound(t *testing.T) {
	loader := NewLoaderWithGlobalDir(t.TempDir(), "")
	_, err := loader.LoadLocal()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_Load_InvalidTOML(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, "[store\nbackend = ")

	loader := NewLoaderWithGlobalDir(dataDir, t.TempDir())
	_, err := loader.Load()
	assert.Error(t, err)
}

func TestLoader_Load_UnknownKeys(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, `
stray = 1

[unknown_section]
key = "value"

[store]
backend = "json"
unknown_store_key = "value"

[projects]
unknown_projects_key = "value"

[report]
unknown_report_key = "value"

[chart]
unknown_chart_key = "value"

[server]
unknown_server_key = "value"

[log]
unknown_log_key = "value"
`)

	loader := NewLoaderWithGlobalDir(dataDir, t.TempDir())
	cfg, err := loader.Load()
	require.NoError(t, err)

	expected := []string{
		"unknown key in [chart]: unknown_chart_key",
		"unknown key in [log]: unknown_log_key",
		"unknown key in [projects]: unknown_projects_key",
		"unknown key in [report]: unknown_report_key",
		"unknown key in [server]: unknown_server_key",
		"unknown key in [store]: unknown_store_key",
		"unknown key: stray",
		"unknown section: unknown_section",
	}
	assert.Equal(t, expected, cfg.Warnings)
}

func TestLoader_Load_RenderedTemplateRoundTrips(t *testing.T) {
	dataDir := t.TempDir()
	want := domain.NewDefaultConfig()
	want.Projects.Seed = []string{"Alpha", "Beta"}
	want.Store.Backend = domain.StoreBackendSQLite
	writeConfig(t, dataDir, domain.RenderConfigTemplate(want))

	loader := NewLoaderWithGlobalDir(dataDir, "")
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.Warnings)
	assert.Equal(t, want.Projects.Seed, cfg.Projects.Seed)
	assert.Equal(t, want.Store.Backend, cfg.Store.Backend)
	assert.Equal(t, want.Server.Addr, cfg.Server.Addr)
}
