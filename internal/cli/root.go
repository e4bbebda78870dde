// Package cli provides the command-line interface for hourlog.
package cli

import (
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/hourlog/internal/app"
	"github.com/runoshun/hourlog/internal/tui"
	"github.com/runoshun/hourlog/internal/usecase"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupSetup   = "setup"
	groupTime    = "time"
	groupService = "service"
)

// annotationNoStore marks commands that must not touch the record store.
const annotationNoStore = "hourlog/no-store"

// consoleUser identifies who is chatting in the terminal console.
type consoleUser struct {
	ID       string
	Username string
}

// launchConsoleFunc is a function variable for launching the console, allowing it to be mocked in tests.
var launchConsoleFunc = launchConsole

// NewRootCommand creates the root command for hourlog.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var user consoleUser

	root := &cobra.Command{
		Use:   "hourlog",
		Short: "Conversational time tracking",
		Long: `hourlog records hours worked per project through a chat dialog
and summarizes them as statistics and charts.

Run without arguments to open the chat console in the terminal,
or use "hourlog serve" to expose the dialog over HTTP.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}

			if c.AppConfig != nil {
				for _, w := range c.AppConfig.Warnings {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
				}
			}

			if !needsStore(cmd) {
				return nil
			}
			if _, err := c.InitStoreUseCase().Execute(cmd.Context(), usecase.InitStoreInput{
				DataDir: c.Config.DataDir,
			}); err != nil {
				return fmt.Errorf("prepare data directory: %w", err)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			// Default: launch chat console
			return launchConsoleFunc(c, user.withDefaults())
		},
	}

	addUserFlags(root, &user.ID, &user.Username)

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupTime, Title: "Time Tracking:"},
		&cobra.Group{ID: groupService, Title: "Service Commands:"},
	)

	// Setup commands
	initCmd := newInitCommand(c)
	initCmd.GroupID = groupSetup

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	migrateCmd := newMigrateCommand(c)
	migrateCmd.GroupID = groupSetup

	// Time tracking commands
	chatCmd := newChatCommand(c)
	chatCmd.GroupID = groupTime

	logCmd := newLogCommand(c)
	logCmd.GroupID = groupTime

	statsCmd := newStatsCommand(c)
	statsCmd.GroupID = groupTime

	projectsCmd := newProjectsCommand(c)
	projectsCmd.GroupID = groupTime

	reportCmd := newReportCommand(c)
	reportCmd.GroupID = groupTime

	exportCmd := newExportCommand(c)
	exportCmd.GroupID = groupTime

	// Service commands
	serveCmd := newServeCommand(c)
	serveCmd.GroupID = groupService

	logsCmd := newLogsCommand(c)
	logsCmd.GroupID = groupService

	// Add subcommands
	root.AddCommand(
		initCmd,
		configCmd,
		migrateCmd,
		chatCmd,
		logCmd,
		statsCmd,
		projectsCmd,
		reportCmd,
		exportCmd,
		serveCmd,
		logsCmd,
	)

	return root
}

// needsStore reports whether cmd or one of its parents touches the stores.
func needsStore(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion", "__complete":
		return false
	}
	for p := cmd; p != nil; p = p.Parent() {
		if p.Annotations[annotationNoStore] == "true" {
			return false
		}
	}
	return true
}

// noStore returns the annotation map for commands that skip store preparation.
func noStore() map[string]string {
	return map[string]string{annotationNoStore: "true"}
}

// withDefaults fills the console identity from the OS account.
func (u consoleUser) withDefaults() consoleUser {
	if u.ID == "" {
		u.ID = strconv.Itoa(os.Getuid())
	}
	if u.Username == "" {
		u.Username = os.Getenv("USER")
	}
	return u
}

// launchConsole runs the chat console until the user quits.
func launchConsole(c *app.Container, user consoleUser) error {
	presenter := tui.NewPresenter()
	dialog := c.DialogUseCase(presenter)

	m := tui.New(tui.Config{
		Turn:     tui.DialogTurns(dialog, presenter, user.ID, user.Username),
		Username: user.Username,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run console: %w", err)
	}
	return nil
}

// newChatCommand creates the chat command (same as running `hourlog` without arguments).
func newChatCommand(c *app.Container) *cobra.Command {
	var user consoleUser

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open the chat console",
		Long: `Open the interactive chat console in the terminal.

The console starts with /start and shows the dialog's buttons below the
transcript. Type text and press enter, or select a button with tab and
press enter on an empty input.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchConsoleFunc(c, user.withDefaults())
		},
	}
	addUserFlags(cmd, &user.ID, &user.Username)
	return cmd
}
