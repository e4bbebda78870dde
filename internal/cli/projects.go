package cli

import (
	"fmt"
	"strings"

	"github.com/runoshun/hourlog/internal/app"
	"github.com/runoshun/hourlog/internal/domain"
	"github.com/runoshun/hourlog/internal/usecase"
	"github.com/spf13/cobra"
)

// newProjectsCommand creates the projects command.
func newProjectsCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"ls-projects"},
		Short:   "List projects",
		Long:    `List registered projects in the order they were added.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ListProjectsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ListProjectsInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.Projects) == 0 {
				_, _ = fmt.Fprintln(w, "No projects")
				return nil
			}
			for _, p := range out.Projects {
				_, _ = fmt.Fprintf(w, "%3d  %s\n", p.ID, p.Name)
			}
			return nil
		},
	}

	cmd.AddCommand(newProjectsAddCommand(c))

	return cmd
}

// newProjectsAddCommand creates the projects add subcommand.
func newProjectsAddCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Register a project",
		Long: `Register a new project. The name is trimmed and must not be empty.

Requires [projects] registry = "json": with the in-memory registry the
project would be gone as soon as the command exits.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.AppConfig.Projects.Persistent() {
				return fmt.Errorf("%w: set [projects] registry = %q to add projects from the command line",
					domain.ErrRegistryInMemory, domain.RegistryJSON)
			}

			uc := c.AddProjectUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.AddProjectInput{
				Name: strings.Join(args, " "),
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added project #%d: %s\n", out.Project.ID, out.Project.Name)
			return nil
		},
	}
}
