// Package filestore keeps profiles in a single TOML file.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/verte-zerg/sightdrill/internal/config"
	"github.com/verte-zerg/sightdrill/internal/profile"
)

const (
	// PathKey is the viper key holding the profiles file path.
	PathKey = "profiles.path"

	fileMode        = 0o600
	dirMode         = 0o700
	tempFilePattern = ".profiles-*.toml.tmp"
)

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

// Repository is a profile.Store backed by a TOML file.
type Repository struct {
	path string
	mu   *sync.RWMutex
}

var _ profile.Store = (*Repository)(nil)

// NewRepository resolves the profiles path from cfg, falling back to the XDG data dir.
func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(PathKey)
	if path == "" {
		path = config.DefaultProfilesPath()
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve profiles path: %w", err)
	}
	path = filepath.Clean(absPath)

	return &Repository{path: path, mu: lockForPath(path)}, nil
}

// Path returns the resolved profiles file path.
func (r *Repository) Path() string {
	return r.path
}

// Load returns the named profile or profile.ErrNotFound.
func (r *Repository) Load(ctx context.Context, name string) (profile.Record, error) {
	if err := ctx.Err(); err != nil {
		return profile.Record{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return profile.Record{}, err
	}

	i := file.indexOf(name)
	if i < 0 {
		return profile.Record{}, profile.ErrNotFound
	}
	return fromProfileSchema(file.Profiles[i]), nil
}

// Save inserts or replaces the profile.
func (r *Repository) Save(ctx context.Context, rec profile.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rec = profile.Normalize(rec)
	if rec.Name == "" {
		return fmt.Errorf("%w: name is required", profile.ErrInvalidName)
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toProfileSchema(rec)
	if i := file.indexOf(rec.Name); i >= 0 {
		file.Profiles[i] = encoded
	} else {
		file.Profiles = append(file.Profiles, encoded)
	}

	return r.writeSchema(file)
}

// List returns profile names in alphabetical order.
func (r *Repository) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(file.Profiles))
	for _, p := range file.Profiles {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the named profile or returns profile.ErrNotFound.
func (r *Repository) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	i := file.indexOf(name)
	if i < 0 {
		return profile.ErrNotFound
	}
	file.Profiles = append(file.Profiles[:i], file.Profiles[i+1:]...)

	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read profiles file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode profiles file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.path), dirMode); err != nil {
		return fmt.Errorf("create profiles directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode profiles file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp profiles file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp profiles file: %w", err)
	}

	if err := tempFile.Chmod(fileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp profiles file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp profiles file: %w", err)
	}

	if err := os.Rename(tempName, r.path); err != nil {
		return fmt.Errorf("replace profiles file: %w", err)
	}

	cleanup = false
	return nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
