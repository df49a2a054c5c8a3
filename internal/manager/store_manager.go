// Package manager keeps the open project stores behind an LRU cache so the
// server can serve many projects without holding every Badger instance
// open at once.
package manager

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"gopkg.in/yaml.v3"

	"github.com/yoshimomax/sysmlmodeler/pkg/store"
)

// ProjectMetadata represents the project information exposed by the API.
// It mirrors the optional project.yaml file in each project directory.
type ProjectMetadata struct {
	ID          string `json:"id" yaml:"-"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

const (
	MaxOpenStores  = 10
	ProjectListTTL = 1 * time.Minute
)

// StoreManager manages multiple project stores.
type StoreManager struct {
	baseDir       string
	projects      *lru.Cache[string, *store.Store]
	mu            sync.RWMutex
	readOnly      bool
	cachedList    []ProjectMetadata
	lastListBuild time.Time
}

// NewStoreManager creates a manager rooted at baseDir. Evicted stores are
// closed by the cache.
func NewStoreManager(baseDir string, readOnly bool) *StoreManager {
	cache, _ := lru.NewWithEvict[string, *store.Store](MaxOpenStores, func(key string, value *store.Store) {
		_ = value.Close()
	})

	return &StoreManager{
		baseDir:  baseDir,
		projects: cache,
		readOnly: readOnly,
	}
}

// GetStore retrieves a store by project ID, opening it if necessary.
func (sm *StoreManager) GetStore(projectID string) (*store.Store, error) {
	// Fast path: lru.Get also updates recency.
	if s, ok := sm.projects.Get(projectID); ok {
		return s, nil
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	// Double-check under lock
	if s, ok := sm.projects.Get(projectID); ok {
		return s, nil
	}

	projectDir := filepath.Join(sm.baseDir, projectID)
	if _, err := os.Stat(projectDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("project not found: %s", projectID)
	}

	cfg := store.DefaultConfig(projectDir)
	cfg.ReadOnly = sm.readOnly

	s, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open store for project %s: %w", projectID, err)
	}

	sm.projects.Add(projectID, s)
	return s, nil
}

// CreateProject makes the project directory so a store can be opened in
// it, and primes the listing cache invalidation.
func (sm *StoreManager) CreateProject(projectID string) error {
	if sm.readOnly {
		return fmt.Errorf("manager is read-only")
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if err := os.MkdirAll(filepath.Join(sm.baseDir, projectID), 0o755); err != nil {
		return fmt.Errorf("create project %s: %w", projectID, err)
	}
	sm.cachedList = nil
	return nil
}

// ListProjects returns a list of available projects. The listing is cached
// for ProjectListTTL because the server polls it per page load.
func (sm *StoreManager) ListProjects() ([]ProjectMetadata, error) {
	sm.mu.RLock()
	if time.Since(sm.lastListBuild) < ProjectListTTL && sm.cachedList != nil {
		list := make([]ProjectMetadata, len(sm.cachedList))
		copy(list, sm.cachedList)
		sm.mu.RUnlock()
		return list, nil
	}
	sm.mu.RUnlock()

	sm.mu.Lock()
	defer sm.mu.Unlock()

	// Double-check
	if time.Since(sm.lastListBuild) < ProjectListTTL && sm.cachedList != nil {
		list := make([]ProjectMetadata, len(sm.cachedList))
		copy(list, sm.cachedList)
		return list, nil
	}

	entries, err := os.ReadDir(sm.baseDir)
	if err != nil {
		return nil, err
	}

	var projects []ProjectMetadata
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id := entry.Name()
		meta := ProjectMetadata{
			ID:   id,
			Name: id, // Default name is directory name
		}

		// Try to read project.yaml
		metaPath := filepath.Join(sm.baseDir, id, "project.yaml")
		if data, err := os.ReadFile(metaPath); err == nil {
			var yamlMeta ProjectMetadata
			if err := yaml.Unmarshal(data, &yamlMeta); err == nil {
				if yamlMeta.Name != "" {
					meta.Name = yamlMeta.Name
				}
				meta.Description = yamlMeta.Description
			}
		}
		projects = append(projects, meta)
	}

	sm.cachedList = projects
	sm.lastListBuild = time.Now()

	return projects, nil
}

// CloseAll closes all open stores.
func (sm *StoreManager) CloseAll() {
	sm.projects.Purge()
}
