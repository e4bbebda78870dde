package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/hourlog/internal/domain"
)

// AddProjectInput contains the parameters for registering a project.
type AddProjectInput struct {
	Name string // Project name (required)
}

// AddProjectOutput contains the registered project.
type AddProjectOutput struct {
	Project domain.Project
}

// AddProject is the use case for registering a new project.
type AddProject struct {
	projects domain.ProjectRegistry
	logger   domain.Logger
}

// NewAddProject creates a new AddProject use case.
func NewAddProject(projects domain.ProjectRegistry, logger domain.Logger) *AddProject {
	return &AddProject{projects: projects, logger: logger}
}

// Execute validates the name and registers it under the next id.
func (uc *AddProject) Execute(_ context.Context, in AddProjectInput) (*AddProjectOutput, error) {
	name, err := domain.NormalizeProjectName(in.Name)
	if err != nil {
		return nil, err
	}
	project, err := uc.projects.Add(name)
	if err != nil {
		return nil, fmt.Errorf("add project: %w", err)
	}
	uc.logger.Info("", "projects", fmt.Sprintf("project %d added: %s", project.ID, project.Name))
	return &AddProjectOutput{Project: project}, nil
}

// ListProjectsInput contains the parameters for listing projects.
type ListProjectsInput struct{}

// ListProjectsOutput contains the registered projects in insertion order.
type ListProjectsOutput struct {
	Projects []domain.Project
}

// ListProjects is the use case for listing projects.
type ListProjects struct {
	projects domain.ProjectRegistry
}

// NewListProjects creates a new ListProjects use case.
func NewListProjects(projects domain.ProjectRegistry) *ListProjects {
	return &ListProjects{projects: projects}
}

// Execute returns all projects.
func (uc *ListProjects) Execute(_ context.Context, _ ListProjectsInput) (*ListProjectsOutput, error) {
	projects, err := uc.projects.List()
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return &ListProjectsOutput{Projects: projects}, nil
}
