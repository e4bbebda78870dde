package cli

import (
	"github.com/runoshun/hourlog/internal/app"
	"github.com/runoshun/hourlog/internal/usecase"
)

func usecaseInitInput(c *app.Container) usecase.InitStoreInput {
	return usecase.InitStoreInput{DataDir: c.Config.DataDir}
}

func logTimeInput(userID string, projectID int, hours float64) usecase.LogTimeInput {
	return usecase.LogTimeInput{
		UserID:    userID,
		ProjectID: projectID,
		Hours:     hours,
		Comment:   "work",
	}
}
