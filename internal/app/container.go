// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/runoshun/hourlog/internal/domain"
	"github.com/runoshun/hourlog/internal/infra/chart"
	"github.com/runoshun/hourlog/internal/infra/config"
	"github.com/runoshun/hourlog/internal/infra/jsonstore"
	"github.com/runoshun/hourlog/internal/infra/logging"
	"github.com/runoshun/hourlog/internal/infra/memregistry"
	"github.com/runoshun/hourlog/internal/infra/sessionstore"
	"github.com/runoshun/hourlog/internal/infra/sqlitestore"
	"github.com/runoshun/hourlog/internal/usecase"
)

// DataDirEnv overrides the data directory.
const DataDirEnv = "HOURLOG_DATA_DIR"

// Config holds the application paths.
type Config struct {
	DataDir      string // Directory holding records, projects, logs and the local config
	StorePath    string // Record store file
	ProjectsPath string // Project registry file (json registry only)
}

// DefaultDataDir resolves the data directory: $HOURLOG_DATA_DIR, then
// $XDG_DATA_HOME/hourlog, then ~/.local/share/hourlog.
func DefaultDataDir() (string, error) {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return dir, nil
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, domain.AppDirName), nil
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Records       domain.RecordStore
	Projects      domain.ProjectRegistry
	Sessions      domain.SessionStore
	Charts        domain.ChartRenderer
	Clock         domain.Clock
	Logger        domain.Logger
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager

	// Pointer fields
	AppConfig  *domain.Config
	storeInits []domain.StoreInitializer
	closers    []io.Closer

	// Configuration
	Config Config
}

// New creates a new Container for the given data directory.
func New(dataDir string) (*Container, error) {
	configLoader := config.NewLoader(dataDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg := Config{
		DataDir:      dataDir,
		StorePath:    appConfig.Store.Path,
		ProjectsPath: domain.ProjectsStorePath(dataDir),
	}
	if cfg.StorePath == "" {
		cfg.StorePath = domain.RecordsStorePath(dataDir, appConfig.Store.Backend)
	}

	c := &Container{
		Sessions:      sessionstore.New(),
		Clock:         domain.RealClock{},
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(dataDir),
		AppConfig:     appConfig,
		Config:        cfg,
	}

	logger := logging.New(dataDir, logging.ParseLevel(appConfig.Log.Level))
	c.Logger = logger
	c.closers = append(c.closers, logger)

	records, recordsInit, closer, err := OpenRecordStore(appConfig.Store.Backend, cfg.StorePath)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Records = records
	c.storeInits = append(c.storeInits, recordsInit)
	if closer != nil {
		c.closers = append(c.closers, closer)
	}

	switch appConfig.Projects.Registry {
	case "", domain.RegistryMemory:
		c.Projects = memregistry.New(appConfig.Projects.Seed)
	case domain.RegistryJSON:
		registry := jsonstore.NewRegistry(cfg.ProjectsPath, appConfig.Projects.Seed)
		c.Projects = registry
		c.storeInits = append(c.storeInits, registry)
	default:
		_ = c.Close()
		return nil, fmt.Errorf("%w: registry %q", domain.ErrUnknownStore, appConfig.Projects.Registry)
	}

	charts, err := chart.NewRenderer(appConfig.Chart.Format, appConfig.Chart.Dir)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Charts = charts

	return c, nil
}

// OpenRecordStore opens a record store backend at path. The returned closer is nil
// for backends holding no open handles.
func OpenRecordStore(backend, path string) (domain.RecordStore, domain.StoreInitializer, io.Closer, error) {
	switch backend {
	case "", domain.StoreBackendJSON:
		s := jsonstore.New(path)
		return s, s, nil, nil
	case domain.StoreBackendSQLite:
		s, err := sqlitestore.Open(path)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, s, s, nil
	default:
		return nil, nil, nil, fmt.Errorf("%w: %q", domain.ErrUnknownStore, backend)
	}
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, appConfig *domain.Config, records domain.RecordStore, projects domain.ProjectRegistry, charts domain.ChartRenderer, clock domain.Clock, logger domain.Logger) *Container {
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}
	return &Container{
		Records:   records,
		Projects:  projects,
		Sessions:  sessionstore.New(),
		Charts:    charts,
		Clock:     clock,
		Logger:    logger,
		AppConfig: appConfig,
		Config:    cfg,
	}
}

// Close releases open store handles and log files.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// UseCase factory methods

// InitStoreUseCase returns a new InitStore use case covering every persistent store.
func (c *Container) InitStoreUseCase() *usecase.InitStore {
	return usecase.NewInitStore(c.storeInits...)
}

// LogTimeUseCase returns a new LogTime use case.
func (c *Container) LogTimeUseCase() *usecase.LogTime {
	return usecase.NewLogTime(c.Records, c.Projects, c.Clock, c.Logger)
}

// AddProjectUseCase returns a new AddProject use case.
func (c *Container) AddProjectUseCase() *usecase.AddProject {
	return usecase.NewAddProject(c.Projects, c.Logger)
}

// ListProjectsUseCase returns a new ListProjects use case.
func (c *Container) ListProjectsUseCase() *usecase.ListProjects {
	return usecase.NewListProjects(c.Projects)
}

// ShowStatsUseCase returns a new ShowStats use case.
func (c *Container) ShowStatsUseCase() *usecase.ShowStats {
	return usecase.NewShowStats(c.Records, c.Charts, c.Clock, c.Logger)
}

// ShowReportLinkUseCase returns a new ShowReportLink use case.
func (c *Container) ShowReportLinkUseCase() *usecase.ShowReportLink {
	return usecase.NewShowReportLink(c.AppConfig.ReportURL)
}

// ExportRecordsUseCase returns a new ExportRecords use case.
func (c *Container) ExportRecordsUseCase() *usecase.ExportRecords {
	return usecase.NewExportRecords(c.Records)
}

// DialogUseCase returns a new Dialog use case presenting through presenter.
// Dialogs built from the same container share the session store.
func (c *Container) DialogUseCase(presenter domain.Presenter) *usecase.Dialog {
	return usecase.NewDialog(
		c.Sessions,
		c.Projects,
		c.LogTimeUseCase(),
		c.AddProjectUseCase(),
		c.ShowStatsUseCase(),
		c.ShowReportLinkUseCase(),
		presenter,
		c.Logger,
	)
}

// ShowLogsUseCase returns a new ShowLogs use case.
func (c *Container) ShowLogsUseCase() *usecase.ShowLogs {
	return usecase.NewShowLogs(c.Config.DataDir)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// ShowConfigTemplateUseCase returns a new ShowConfigTemplate use case.
func (c *Container) ShowConfigTemplateUseCase() *usecase.ShowConfigTemplate {
	return usecase.NewShowConfigTemplate()
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// MigrateRecordsUseCase opens the destination backend and returns a use case copying
// the current records into it. The caller closes the returned closer when non-nil.
func (c *Container) MigrateRecordsUseCase(backend, path string) (*usecase.MigrateRecords, io.Closer, error) {
	source, ok := c.Records.(domain.RecordExporter)
	if !ok {
		return nil, nil, domain.ErrExportNotSupported
	}
	switch backend {
	case domain.StoreBackendJSON, domain.StoreBackendSQLite:
	default:
		return nil, nil, fmt.Errorf("%w: %q", domain.ErrUnknownStore, backend)
	}
	if path == "" {
		path = domain.RecordsStorePath(c.Config.DataDir, backend)
	}
	if filepath.Clean(path) == filepath.Clean(c.Config.StorePath) {
		return nil, nil, fmt.Errorf("destination is the current store: %s", path)
	}
	dest, destInit, closer, err := OpenRecordStore(backend, path)
	if err != nil {
		return nil, nil, err
	}
	return usecase.NewMigrateRecords(source, dest, destInit, c.Logger), closer, nil
}
