package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/quantmind-br/sitedocs-go/internal/config"
)

type screen int

const (
	screenMenu screen = iota
	screenForm
	screenConfirm
	screenSaved
	screenFailed
)

// Model is the bubbletea model of the configuration editor. The menu lists
// one entry per category followed by a save entry; entering a category
// opens its huh form.
type Model struct {
	screen screen
	values *ConfigValues
	cursor int
	form   *huh.Form
	dirty  bool
	err    error

	target     string
	save       func(*config.Config) error
	accessible bool
}

type Options struct {
	Config *config.Config
	// Target is the file the configuration is written to, shown in the menu
	Target string
	// SaveFunc persists the edited configuration, normally config.Save
	SaveFunc   func(*config.Config) error
	Accessible bool
}

func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	return Model{
		screen:     screenMenu,
		values:     FromConfig(cfg),
		target:     opts.Target,
		save:       opts.SaveFunc,
		accessible: opts.Accessible,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// saveEntry is the menu index of the save entry
func (m Model) saveEntry() int {
	return len(Categories)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)
	if !isKey {
		if m.screen == screenForm {
			return m.stepForm(msg)
		}
		return m, nil
	}

	switch m.screen {
	case screenMenu:
		return m.onMenuKey(key)
	case screenForm:
		if key.String() == "esc" {
			m.screen = screenMenu
			m.form = nil
			return m, nil
		}
		return m.stepForm(key)
	case screenConfirm:
		return m.onConfirmKey(key)
	default:
		return m, tea.Quit
	}
}

// stepForm forwards msg to the open form and returns to the menu once the
// form completes.
func (m Model) stepForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.screen = screenMenu
		return m, nil
	}
	next, cmd := m.form.Update(msg)
	if f, ok := next.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		m.dirty = true
		m.screen = screenMenu
		m.form = nil
		return m, nil
	}
	return m, cmd
}

func (m Model) onMenuKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, m.saveEntry())
	case "s":
		return m.commit()
	case "enter":
		if m.cursor == m.saveEntry() {
			return m.commit()
		}
		return m.openForm(Categories[m.cursor].ID)
	case "q", "esc", "ctrl+c":
		if m.dirty {
			m.screen = screenConfirm
			return m, nil
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) openForm(categoryID string) (tea.Model, tea.Cmd) {
	form := GetFormForCategory(categoryID, m.values)
	if form == nil {
		return m, nil
	}
	if m.accessible {
		form = form.WithAccessible(true)
	}
	m.form = form
	m.screen = screenForm
	return m, form.Init()
}

func (m Model) onConfirmKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(key.String()) {
	case "y":
		return m.commit()
	case "n", "esc":
		return m, tea.Quit
	case "c":
		m.screen = screenMenu
	}
	return m, nil
}

// commit validates the edited values and hands them to the save function
func (m Model) commit() (tea.Model, tea.Cmd) {
	cfg, err := m.values.ToConfig()
	if err == nil && m.save != nil {
		err = m.save(cfg)
	}
	if err != nil {
		m.err = err
		m.screen = screenFailed
		return m, nil
	}
	m.dirty = false
	m.screen = screenSaved
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("sitedocs configuration"))
	b.WriteString("\n\n")

	switch m.screen {
	case screenMenu:
		m.writeMenu(&b)
	case screenForm:
		if m.form != nil {
			b.WriteString(m.form.View())
		}
	case screenConfirm:
		b.WriteString(BoxStyle.BorderForeground(warnColor).Render(
			"You have unsaved changes.\n\nSave before quitting?\n\n[y] Yes  [n] No  [c] Cancel"))
	case screenSaved:
		msg := "Configuration saved"
		if m.target != "" {
			msg += " to " + m.target
		}
		b.WriteString(SuccessStyle.Render(msg))
		b.WriteString("\n\nPress any key to exit.")
	case screenFailed:
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\nPress any key to exit.")
	}
	return b.String()
}

func (m Model) writeMenu(b *strings.Builder) {
	for i, cat := range Categories {
		b.WriteString(m.menuLine(i, cat.Name))
		b.WriteString(DescriptionStyle.Render("  " + m.values.Summary(cat.ID)))
		b.WriteString("\n")
	}

	label := "Save"
	if m.target != "" {
		label += " to " + m.target
	}
	if m.dirty {
		label += " *"
	}
	b.WriteString("\n")
	b.WriteString(m.menuLine(m.saveEntry(), label))
	b.WriteString("\n\n")

	if m.cursor < m.saveEntry() {
		b.WriteString(SubtitleStyle.Render(Categories[m.cursor].Description))
		b.WriteString("\n")
	}
	b.WriteString(HelpStyle.Render("↑/↓ move • enter open • s save • q quit"))
}

func (m Model) menuLine(i int, label string) string {
	if i == m.cursor {
		return SelectedStyle.Render("> " + label)
	}
	return UnselectedStyle.Render("  " + label)
}

// Saved reports whether the configuration was written
func (m Model) Saved() bool {
	return m.screen == screenSaved
}

// Err returns the validation or save error that ended the session
func (m Model) Err() error {
	return m.err
}

// Run starts the editor and blocks until the user quits
func Run(opts Options) (saved bool, err error) {
	final, err := tea.NewProgram(NewModel(opts), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	if !ok {
		return false, nil
	}
	return m.Saved(), m.Err()
}
