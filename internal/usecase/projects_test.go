package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/runoshun/hourlog/internal/domain"
	"github.com/runoshun/hourlog/internal/testutil"
	"github.com/runoshun/hourlog/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddProject_Execute(t *testing.T) {
	t.Run("adds trimmed name with next id", func(t *testing.T) {
		projects := testutil.NewMockProjectRegistry("Website", "Mobile app")

		uc := usecase.NewAddProject(projects, &testutil.MockLogger{})
		out, err := uc.Execute(context.Background(), usecase.AddProjectInput{Name: "  Research "})

		require.NoError(t, err)
		assert.Equal(t, domain.Project{ID: 3, Name: "Research"}, out.Project)
		assert.Len(t, projects.Projects, 3)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		projects := testutil.NewMockProjectRegistry()

		uc := usecase.NewAddProject(projects, &testutil.MockLogger{})
		_, err := uc.Execute(context.Background(), usecase.AddProjectInput{Name: "   "})

		assert.ErrorIs(t, err, domain.ErrEmptyProjectName)
		assert.True(t, domain.IsValidationError(err))
		assert.Empty(t, projects.Projects)
	})

	t.Run("wraps registry error", func(t *testing.T) {
		projects := testutil.NewMockProjectRegistry()
		projects.AddErr = errors.New("locked")

		uc := usecase.NewAddProject(projects, &testutil.MockLogger{})
		_, err := uc.Execute(context.Background(), usecase.AddProjectInput{Name: "X"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "add project: locked")
		assert.False(t, domain.IsValidationError(err))
	})
}

func TestListProjects_Execute(t *testing.T) {
	projects := testutil.NewMockProjectRegistry("Website", "Mobile app")

	uc := usecase.NewListProjects(projects)
	out, err := uc.Execute(context.Background(), usecase.ListProjectsInput{})

	require.NoError(t, err)
	assert.Equal(t, []domain.Project{{ID: 1, Name: "Website"}, {ID: 2, Name: "Mobile app"}}, out.Projects)

	projects.ListErr = errors.New("boom")
	_, err = uc.Execute(context.Background(), usecase.ListProjectsInput{})
	assert.Error(t, err)
}
