package store

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/archinews-creator/internal/types"
	"github.com/jonathan/archinews-creator/internal/usps"
	"github.com/jonathan/archinews-creator/schemas"
)

// ProjectsFile is the project store file name inside the data directory.
const ProjectsFile = "projects.json"

// ProjectStore holds project cards keyed by project name.
type ProjectStore struct {
	files *FileStore[types.Project]
}

// NewProjectStore opens the project store in dataDir.
func NewProjectStore(dataDir string, logger *slog.Logger) *ProjectStore {
	return &ProjectStore{
		files: NewFileStore[types.Project](filepath.Join(dataDir, ProjectsFile), schemas.Projects, logger),
	}
}

// Path returns the backing file.
func (s *ProjectStore) Path() string {
	return s.files.Path()
}

// Save validates and stores a project card under its trimmed name, replacing
// any card of that name. Saved custom USPs survive when p carries none.
func (s *ProjectStore) Save(p types.Project) (types.Project, error) {
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return types.Project{}, err
	}

	err := s.files.Update(func(records map[string]types.Project) error {
		if existing, ok := records[p.Name]; ok && p.CustomUSPs == nil {
			p.CustomUSPs = existing.CustomUSPs
		}
		records[p.Name] = p
		return nil
	})
	if err != nil {
		return types.Project{}, err
	}
	return p, nil
}

// Get returns the project card stored under name.
func (s *ProjectStore) Get(name string) (types.Project, error) {
	p, ok := s.files.Get(strings.TrimSpace(name))
	if !ok {
		return types.Project{}, fmt.Errorf("project %q: %w", name, ErrNotFound)
	}
	return p, nil
}

// All returns every stored project card.
func (s *ProjectStore) All() map[string]types.Project {
	return s.files.Load()
}

// Names returns the stored project names, sorted.
func (s *ProjectStore) Names() []string {
	return s.files.Keys()
}

// SaveUSPs replaces the custom USPs of an existing project. The list is
// de-duplicated case-insensitively.
func (s *ProjectStore) SaveUSPs(name string, list []string) error {
	name = strings.TrimSpace(name)
	return s.files.Update(func(records map[string]types.Project) error {
		p, ok := records[name]
		if name == "" || !ok {
			return &types.ValidationError{Field: "project", Message: "Please select or save a project card first."}
		}
		p.CustomUSPs = usps.Dedupe(list)
		records[name] = p
		return nil
	})
}

// SavedCustomUSPs returns the union of custom USPs over all projects, sorted.
func (s *ProjectStore) SavedCustomUSPs() []string {
	seen := make(map[string]bool)
	var all []string
	for _, p := range s.files.Load() {
		for _, u := range p.CustomUSPs {
			if u != "" && !seen[u] {
				seen[u] = true
				all = append(all, u)
			}
		}
	}
	sort.Strings(all)
	return all
}
