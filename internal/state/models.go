package state

import "time"

// StateVersion is the schema version for state file migration
const StateVersion = 1

// RunState records what the last generation run produced
type RunState struct {
	Version int                  `json:"version"`
	RunID   string               `json:"run_id,omitempty"`
	LastRun time.Time            `json:"last_run"`
	Pages   map[string]PageState `json:"pages"`
}

// PageState represents the state of an individual generated page
type PageState struct {
	ContentHash string    `json:"content_hash"`
	Source      string    `json:"source,omitempty"`
	Revision    string    `json:"revision,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewRunState creates a new empty run state
func NewRunState() *RunState {
	return &RunState{
		Version: StateVersion,
		Pages:   make(map[string]PageState),
	}
}

// PageCount returns the number of pages in the state
func (s *RunState) PageCount() int {
	return len(s.Pages)
}

// GetPage returns a page state by path
func (s *RunState) GetPage(path string) (PageState, bool) {
	page, exists := s.Pages[path]
	return page, exists
}
