package jsonstore

import (
	"slices"

	"github.com/runoshun/hourlog/internal/domain"
)

// registryData represents the projects file structure.
// Fields are ordered to minimize memory padding.
type registryData struct {
	Projects []domain.Project `json:"projects"`
	Meta     registryMeta     `json:"meta"`
}

// registryMeta contains registry metadata.
type registryMeta struct {
	NextProjectID int `json:"nextProjectID"`
}

// Registry implements domain.ProjectRegistry using a JSON file, so projects
// added at runtime survive restarts.
type Registry struct {
	file *lockedFile[registryData]
	seed []string
}

// NewRegistry creates a Registry for path. seed is written on Initialize when
// the file does not exist yet.
func NewRegistry(path string, seed []string) *Registry {
	return &Registry{
		file: newLockedFile(path, func(d *registryData) {
			// Keep the counter past every stored id, even in hand-edited files.
			next := 1
			for _, p := range d.Projects {
				next = max(next, p.ID+1)
			}
			d.Meta.NextProjectID = max(d.Meta.NextProjectID, next)
		}),
		seed: slices.Clone(seed),
	}
}

// List returns all projects in insertion order.
func (r *Registry) List() ([]domain.Project, error) {
	var projects []domain.Project
	err := r.file.withLock(func(data *registryData) error {
		projects = slices.Clone(data.Projects)
		return nil
	})
	return projects, err
}

// Add registers a project under the next id. The name is trimmed; an empty
// name fails with domain.ErrEmptyProjectName and consumes no id.
func (r *Registry) Add(name string) (domain.Project, error) {
	name, err := domain.NormalizeProjectName(name)
	if err != nil {
		return domain.Project{}, err
	}

	var project domain.Project
	err = r.file.withLockWrite(func(data *registryData) error {
		project = domain.Project{ID: data.Meta.NextProjectID, Name: name}
		data.Meta.NextProjectID++
		data.Projects = append(data.Projects, project)
		return nil
	})
	return project, err
}

// Get retrieves a project by ID. Returns nil if not found.
func (r *Registry) Get(id int) (*domain.Project, error) {
	var project *domain.Project
	err := r.file.withLock(func(data *registryData) error {
		for i := range data.Projects {
			if data.Projects[i].ID == id {
				p := data.Projects[i]
				project = &p
				break
			}
		}
		return nil
	})
	return project, err
}

// Initialize creates the registry file with the seed projects if it doesn't exist.
func (r *Registry) Initialize() error {
	data := &registryData{
		Projects: make([]domain.Project, 0, len(r.seed)),
		Meta:     registryMeta{NextProjectID: 1},
	}
	for _, name := range r.seed {
		data.Projects = append(data.Projects, domain.Project{ID: data.Meta.NextProjectID, Name: name})
		data.Meta.NextProjectID++
	}
	return r.file.create(data)
}

// Ensure Registry implements the registry ports.
var (
	_ domain.ProjectRegistry  = (*Registry)(nil)
	_ domain.StoreInitializer = (*Registry)(nil)
)
