// Package output writes generated pages into the documentation site.
package output

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/quantmind-br/sitedocs-go/internal/converter"
	"github.com/quantmind-br/sitedocs-go/internal/domain"
	"github.com/quantmind-br/sitedocs-go/internal/state"
	"github.com/quantmind-br/sitedocs-go/internal/utils"
)

// Ensure Writer implements domain.Writer
var _ domain.Writer = (*Writer)(nil)

// Writer handles writing pages to the filesystem
type Writer struct {
	baseDir     string
	frontmatter bool
	force       bool
	dryRun      bool
	check       bool
	state       *state.Manager
	logger      *utils.Logger

	mu    sync.Mutex
	drift []string
	stats Stats
}

// WriterOptions contains options for the writer
type WriterOptions struct {
	// BaseDir resolves relative page paths and keys the state file
	BaseDir string
	// Frontmatter prepends a YAML block to every page
	Frontmatter bool
	// Force rewrites pages even when their content is unchanged
	Force bool
	// DryRun logs what would be written without touching the filesystem
	DryRun bool
	// Check compares pages with the files on disk and records drift
	Check bool
	// State, when set, records the hash of every written page
	State  *state.Manager
	Logger *utils.Logger
}

// Stats counts what the writer did
type Stats struct {
	Written   int
	Unchanged int
	Drifted   int
}

// NewWriter creates a new output writer
func NewWriter(opts WriterOptions) *Writer {
	if opts.BaseDir == "" {
		opts.BaseDir = "."
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}

	return &Writer{
		baseDir:     opts.BaseDir,
		frontmatter: opts.Frontmatter,
		force:       opts.Force,
		dryRun:      opts.DryRun,
		check:       opts.Check,
		state:       opts.State,
		logger:      opts.Logger.WithComponent("writer"),
	}
}

// Write saves a page. In check mode nothing is written and a differing or
// missing file is recorded as drift.
func (w *Writer) Write(ctx context.Context, page *domain.Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content, err := w.render(page)
	if err != nil {
		return err
	}

	path := w.GetPath(page.Path)
	key := w.key(path)
	hash := contentHash(content)
	log := w.logger.WithPath(key)

	existing, readErr := os.ReadFile(path)
	matches := readErr == nil && bytes.Equal(existing, content)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.check {
		if matches {
			w.stats.Unchanged++
			log.Debug().Msg("Up to date")
			return nil
		}
		w.stats.Drifted++
		w.drift = append(w.drift, key)
		log.Warn().Msg("Out of date")
		return nil
	}

	if matches && !w.force {
		w.stats.Unchanged++
		if w.state != nil && !w.state.Unchanged(key, hash) && !w.dryRun {
			w.state.Update(key, w.pageState(page, hash))
		}
		log.Debug().Msg("Unchanged, skipping")
		return nil
	}

	if w.dryRun {
		w.stats.Written++
		log.Info().Int("bytes", len(content)).Msg("Would write")
		return nil
	}

	if err := utils.EnsureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return err
	}

	w.stats.Written++
	if w.state != nil {
		w.state.Update(key, w.pageState(page, hash))
	}
	log.Info().Int("bytes", len(content)).Msg("Written")
	return nil
}

// Drift returns a *domain.DriftError listing the out-of-date pages, or nil
func (w *Writer) Drift() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.drift) == 0 {
		return nil
	}
	paths := append([]string(nil), w.drift...)
	sort.Strings(paths)
	return &domain.DriftError{Paths: paths}
}

// Stats returns what the writer did so far
func (w *Writer) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// GetPath returns the filesystem path of a page path
func (w *Writer) GetPath(pagePath string) string {
	return utils.ResolvePath(w.baseDir, pagePath)
}

func (w *Writer) render(page *domain.Page) ([]byte, error) {
	if !w.frontmatter {
		return []byte(page.Content), nil
	}
	content, err := converter.AddFrontmatter(page)
	if err != nil {
		return nil, err
	}
	return []byte(content), nil
}

// key is the page path relative to the base directory, with forward slashes
func (w *Writer) key(path string) string {
	base, err := filepath.Abs(w.baseDir)
	if err != nil {
		return filepath.ToSlash(path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (w *Writer) pageState(page *domain.Page, hash string) state.PageState {
	fm := page.ToFrontmatter()
	return state.PageState{
		ContentHash: hash,
		Source:      fm.Source,
		Revision:    fm.Revision,
	}
}

// contentHash calculates SHA256 hash of content
func contentHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
