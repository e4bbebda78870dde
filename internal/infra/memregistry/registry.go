// Package memregistry provides an in-memory project registry.
package memregistry

import (
	"slices"
	"sync"

	"github.com/runoshun/hourlog/internal/domain"
)

// Registry implements domain.ProjectRegistry in memory.
// Projects added at runtime are lost on restart.
type Registry struct {
	projects []domain.Project
	nextID   int
	mu       sync.RWMutex
}

// New creates a Registry holding the seed projects with ids 1..len(seed).
// Later additions continue from len(seed)+1.
func New(seed []string) *Registry {
	r := &Registry{nextID: 1}
	for _, name := range seed {
		r.projects = append(r.projects, domain.Project{ID: r.nextID, Name: name})
		r.nextID++
	}
	return r
}

// List returns all projects in insertion order.
func (r *Registry) List() ([]domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.projects), nil
}

// Add registers a project under the next id. The name is trimmed; an empty
// name fails with domain.ErrEmptyProjectName and consumes no id.
func (r *Registry) Add(name string) (domain.Project, error) {
	name, err := domain.NormalizeProjectName(name)
	if err != nil {
		return domain.Project{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	p := domain.Project{ID: r.nextID, Name: name}
	r.nextID++
	r.projects = append(r.projects, p)
	return p, nil
}

// Get retrieves a project by ID. Returns nil if not found.
func (r *Registry) Get(id int) (*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.projects {
		if r.projects[i].ID == id {
			p := r.projects[i]
			return &p, nil
		}
	}
	return nil, nil
}

// Ensure Registry implements domain.ProjectRegistry.
var _ domain.ProjectRegistry = (*Registry)(nil)
