package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/runoshun/hourlog/internal/app"
	"github.com/runoshun/hourlog/internal/domain"
	"github.com/runoshun/hourlog/internal/usecase"
	"github.com/spf13/cobra"
)

// newLogCommand creates the log command.
func newLogCommand(c *app.Container) *cobra.Command {
	var opts struct {
		UserID   string
		Username string
		Project  string
		Hours    string
		Comment  string
	}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record hours without the dialog",
		Long: `Append one time record directly.

The project is given by id or by name. Hours accept a decimal comma
("1,5") and must be greater than zero.

Examples:
  hourlog log --user 42 --project Website --hours 2.5 --comment "Landing page"
  hourlog log --username alice --project 3 --hours 1,5`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectID, err := resolveProject(c, opts.Project)
			if err != nil {
				return err
			}

			hours, err := domain.ParseHoursInput(opts.Hours)
			if err != nil {
				return err
			}

			comment := strings.TrimSpace(opts.Comment)
			if comment == "" {
				comment = domain.NoCommentText
			}

			uc := c.LogTimeUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.LogTimeInput{
				UserID:    opts.UserID,
				Username:  opts.Username,
				ProjectID: projectID,
				Hours:     hours,
				Comment:   comment,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged %s h on %s (%s)\n",
				strconv.FormatFloat(out.Record.Hours, 'f', -1, 64), out.Record.ProjectName, out.Record.ID)
			return nil
		},
	}

	addUserFlags(cmd, &opts.UserID, &opts.Username)
	cmd.Flags().StringVarP(&opts.Project, "project", "p", "", "Project name or id; names take precedence (required)")
	cmd.Flags().StringVarP(&opts.Hours, "hours", "H", "", "Hours worked (required)")
	cmd.Flags().StringVarP(&opts.Comment, "comment", "m", "", "Comment (default: no comment)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("hours")

	return cmd
}

// resolveProject maps a project name or id to its id. Names match case-insensitively
// and take precedence, so a project named "2024" is reachable by name.
func resolveProject(c *app.Container, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	projects, err := c.Projects.List()
	if err != nil {
		return 0, fmt.Errorf("list projects: %w", err)
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, ref) {
			return p.ID, nil
		}
	}

	id, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrProjectNotFound, ref)
	}
	p, err := c.Projects.Get(id)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, fmt.Errorf("%w: %d", domain.ErrProjectNotFound, id)
	}
	return p.ID, nil
}
