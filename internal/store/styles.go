package store

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jonathan/archinews-creator/internal/types"
	"github.com/jonathan/archinews-creator/schemas"
)

// Store file names inside the data directory. Text styles and typography
// styles are separate namespaces.
const (
	StylesFile     = "styles.json"
	TypographyFile = "website_styles.json"
)

type validatable interface {
	Validate() error
}

// namedStore stores validated records under a required, trimmed name.
type namedStore[T any, PT interface {
	*T
	validatable
}] struct {
	kind  string
	files *FileStore[T]
}

func (s *namedStore[T, PT]) save(name string, rec T) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &types.ValidationError{Field: "name", Message: s.kind + " name is required"}
	}
	if err := PT(&rec).Validate(); err != nil {
		return err
	}
	return s.files.Put(name, rec)
}

func (s *namedStore[T, PT]) get(name string) (T, error) {
	rec, ok := s.files.Get(strings.TrimSpace(name))
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %q: %w", s.kind, name, ErrNotFound)
	}
	return rec, nil
}

// StyleStore holds text style profiles keyed by name.
type StyleStore struct {
	named namedStore[types.StyleProfile, *types.StyleProfile]
}

// NewStyleStore opens the text style store in dataDir.
func NewStyleStore(dataDir string, logger *slog.Logger) *StyleStore {
	return &StyleStore{named: namedStore[types.StyleProfile, *types.StyleProfile]{
		kind:  "style",
		files: NewFileStore[types.StyleProfile](filepath.Join(dataDir, StylesFile), schemas.Styles, logger),
	}}
}

// Save validates and stores a style profile under name.
func (s *StyleStore) Save(name string, style types.StyleProfile) error {
	return s.named.save(name, style)
}

// Get returns the style profile stored under name.
func (s *StyleStore) Get(name string) (types.StyleProfile, error) {
	return s.named.get(name)
}

// Names returns the stored style names, sorted.
func (s *StyleStore) Names() []string {
	return s.named.files.Keys()
}

// All returns every stored style profile.
func (s *StyleStore) All() map[string]types.StyleProfile {
	return s.named.files.Load()
}

// TypographyStore holds website typography styles keyed by name.
type TypographyStore struct {
	named namedStore[types.TypographyStyle, *types.TypographyStyle]
}

// NewTypographyStore opens the typography store in dataDir.
func NewTypographyStore(dataDir string, logger *slog.Logger) *TypographyStore {
	return &TypographyStore{named: namedStore[types.TypographyStyle, *types.TypographyStyle]{
		kind:  "typography style",
		files: NewFileStore[types.TypographyStyle](filepath.Join(dataDir, TypographyFile), schemas.Typography, logger),
	}}
}

// Save validates and stores a typography style under name.
func (s *TypographyStore) Save(name string, style types.TypographyStyle) error {
	return s.named.save(name, style)
}

// Get returns the typography style stored under name.
func (s *TypographyStore) Get(name string) (types.TypographyStyle, error) {
	return s.named.get(name)
}

// Names returns the stored typography style names, sorted.
func (s *TypographyStore) Names() []string {
	return s.named.files.Keys()
}

// All returns every stored typography style.
func (s *TypographyStore) All() map[string]types.TypographyStyle {
	return s.named.files.Load()
}
