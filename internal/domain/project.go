// Package domain contains core business entities and interfaces.
package domain

import "strings"

// Project is a user-defined bucket that time is logged against.
type Project struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

// DefaultSeedProjects are registered on startup when no seed list is configured.
var DefaultSeedProjects = []string{
	"Business model 80/20",
	"Chat bot development",
	"AI development",
	"Business growth",
}

// NormalizeProjectName trims the name and validates it.
func NormalizeProjectName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyProjectName
	}
	return name, nil
}
