// Package state persists the content hashes of generated pages so unchanged
// pages are not rewritten.
package state

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quantmind-br/sitedocs-go/internal/utils"
)

const StateFileName = ".sitedocs-state.json"

type Manager struct {
	baseDir  string
	state    *RunState
	runID    string
	mu       sync.RWMutex
	dirty    bool
	logger   *utils.Logger
	disabled bool
	now      func() time.Time
}

type ManagerOptions struct {
	// BaseDir holds the state file, normally the docs directory
	BaseDir  string
	Logger   *utils.Logger
	Disabled bool
}

func NewManager(opts ManagerOptions) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &Manager{
		baseDir:  opts.BaseDir,
		logger:   logger.WithComponent("state"),
		disabled: opts.Disabled,
		state:    NewRunState(),
		runID:    uuid.NewString(),
		now:      time.Now,
	}
}

// Load reads the state file. A missing, corrupted or outdated file leaves
// the manager with an empty state and returns the matching sentinel.
func (m *Manager) Load(ctx context.Context) error {
	if m.disabled {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.Path())
	if os.IsNotExist(err) {
		return ErrStateNotFound
	}
	if err != nil {
		return err
	}

	var state RunState
	if err := json.Unmarshal(data, &state); err != nil {
		return ErrStateCorrupted
	}

	if state.Version != StateVersion {
		m.logger.Warn().
			Int("file_version", state.Version).
			Int("expected_version", StateVersion).
			Msg("State version mismatch, will rebuild state")
		return ErrVersionMismatch
	}

	if state.Pages == nil {
		state.Pages = make(map[string]PageState)
	}
	m.state = &state
	return nil
}

// Save writes the state file when pages were updated during this run
func (m *Manager) Save(ctx context.Context) error {
	if m.disabled {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.dirty {
		return nil
	}

	m.state.RunID = m.runID
	m.state.LastRun = m.now().UTC()

	data, err := json.MarshalIndent(m.state, "", "  ")
	if err != nil {
		return err
	}

	path := m.Path()
	if err := utils.EnsureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return err
	}

	m.dirty = false
	m.logger.Debug().
		Int("pages", len(m.state.Pages)).
		Str("path", path).
		Str("run_id", m.runID).
		Msg("State saved")
	return nil
}

// Unchanged reports whether the page was last generated with contentHash
func (m *Manager) Unchanged(path, contentHash string) bool {
	if m.disabled {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	page, exists := m.state.Pages[path]
	return exists && page.ContentHash == contentHash
}

// Update records a generated page. GeneratedAt is filled in when zero.
func (m *Manager) Update(path string, page PageState) {
	if m.disabled {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if page.GeneratedAt.IsZero() {
		page.GeneratedAt = m.now().UTC()
	}
	m.state.Pages[path] = page
	m.dirty = true
}

// Page returns the recorded state of a page
func (m *Manager) Page(path string) (PageState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.GetPage(path)
}

// RunID identifies the current run
func (m *Manager) RunID() string {
	return m.runID
}

func (m *Manager) Stats() (pages int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.PageCount()
}

func (m *Manager) IsDisabled() bool {
	return m.disabled
}

// Path returns the location of the state file
func (m *Manager) Path() string {
	return filepath.Join(m.baseDir, StateFileName)
}
