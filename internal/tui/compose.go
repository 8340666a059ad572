// ABOUTME: Interactive TUI wizard for composing a journal entry.
// ABOUTME: Step-by-step bubbletea model collecting title, content, tags, and mood, then saving.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/daybook/internal/models"
)

// Step represents the current wizard step.
type Step int

const (
	StepTitle Step = iota
	StepContent
	StepTags
	StepMood
	StepSaving
	StepDone
	StepFailed
)

// Draft holds the values collected by the wizard.
type Draft struct {
	Title   string
	Content string
	Tags    []string
	Mood    models.Mood
}

// SaveFn persists a completed draft. pending is the entry returned by an
// earlier attempt, or nil on the first one. A non-nil returned entry is in
// the store even when err reports a failed flush.
type SaveFn func(ctx context.Context, d Draft, pending *models.JournalEntry) (*models.JournalEntry, error)

// saveResultMsg carries the result of an async save attempt.
type saveResultMsg struct {
	entry *models.JournalEntry
	err   error
}

// cancelHolder shares a cancel function across bubbletea model copies.
// It is stored as a pointer so value-receiver methods (required by
// tea.Model) can set the cancel func and have all copies see it.
type cancelHolder struct {
	cancel context.CancelFunc
}

// ComposeModel is the bubbletea model for the compose wizard.
type ComposeModel struct {
	step      Step
	inputs    [4]textinput.Model
	spinner   spinner.Model
	saveFn    SaveFn
	cancelCtx *cancelHolder
	inputErr  error
	saveErr   error
	pending   *models.JournalEntry
	quitting  bool
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewComposeModel creates a compose wizard that hands the finished draft to saveFn.
func NewComposeModel(saveFn SaveFn) ComposeModel {
	titleInput := textinput.New()
	titleInput.Placeholder = "What happened today?"
	titleInput.Focus()
	titleInput.Width = 50

	contentInput := textinput.New()
	contentInput.Placeholder = "Write as much or as little as you like"
	contentInput.Width = 70

	tagsInput := textinput.New()
	tagsInput.Placeholder = "comma,separated,tags"
	tagsInput.Width = 50

	moodInput := textinput.New()
	moodInput.Placeholder = "1-5 or blank"
	moodInput.CharLimit = 10
	moodInput.Width = 20

	s := spinner.New()
	s.Spinner = spinner.Dot

	if saveFn == nil {
		saveFn = func(context.Context, Draft, *models.JournalEntry) (*models.JournalEntry, error) {
			return nil, nil
		}
	}

	return ComposeModel{
		step:      StepTitle,
		inputs:    [4]textinput.Model{titleInput, contentInput, tagsInput, moodInput},
		spinner:   s,
		saveFn:    saveFn,
		cancelCtx: &cancelHolder{},
	}
}

// Init implements tea.Model.
func (m ComposeModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m ComposeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			m.quitting = true
			if m.cancelCtx.cancel != nil {
				m.cancelCtx.cancel()
			}
			// A running save may still land; quit once its result arrives.
			if m.step == StepSaving {
				return m, nil
			}
			return m, tea.Quit
		}

		switch m.step {
		case StepTitle, StepContent, StepTags, StepMood:
			return m.updateInput(msg)
		case StepFailed:
			return m.updateFailed(msg)
		}

	case saveResultMsg:
		m.cancelCtx.cancel = nil
		if msg.entry != nil {
			m.pending = msg.entry
		}
		if msg.err == nil {
			m.step = StepDone
			return m, tea.Quit
		}
		m.saveErr = msg.err
		m.step = StepFailed
		if m.quitting {
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		if m.step == StepSaving {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m ComposeModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		idx := int(m.step)
		m.inputErr = nil

		// Don't advance on an empty title or an unknown mood
		if m.step == StepTitle {
			if err := models.ValidateTitle(m.inputs[0].Value()); err != nil {
				m.inputErr = err
				return m, nil
			}
		}
		if m.step == StepMood {
			if _, err := models.ParseMood(m.inputs[3].Value()); err != nil {
				m.inputErr = err
				return m, nil
			}
		}

		m.inputs[idx].Blur()

		switch m.step {
		case StepTitle, StepContent, StepTags:
			m.step++
			m.inputs[int(m.step)].Focus()
			return m, textinput.Blink
		case StepMood:
			m.step = StepSaving
			return m, tea.Batch(m.startSave(), m.spinner.Tick)
		}
	}

	// Forward to the active input
	idx := int(m.step)
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

func (m ComposeModel) updateFailed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 {
		switch msg.Runes[0] {
		case 'r':
			m.step = StepSaving
			m.saveErr = nil
			return m, tea.Batch(m.startSave(), m.spinner.Tick)
		case 'q':
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ComposeModel) startSave() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelCtx.cancel = cancel
	draft := m.Draft()
	pending := m.pending
	fn := m.saveFn
	return func() tea.Msg {
		entry, err := fn(ctx, draft, pending)
		return saveResultMsg{entry: entry, err: err}
	}
}

// View implements tea.Model.
func (m ComposeModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   DAYBOOK"))
	b.WriteString(titleStyle.Render(" - New Entry"))
	b.WriteString("\n\n")

	draft := m.Draft()
	if m.step > StepTitle {
		b.WriteString(fmt.Sprintf("  Title: %s\n", draft.Title))
	}
	if m.step > StepContent && draft.Content != "" {
		b.WriteString(fmt.Sprintf("  Content: %s\n", truncate(draft.Content, 60)))
	}
	if m.step > StepTags && len(draft.Tags) > 0 {
		b.WriteString(fmt.Sprintf("  Tags: %s\n", strings.Join(draft.Tags, ", ")))
	}
	if m.step > StepMood {
		b.WriteString(fmt.Sprintf("  Mood: %s\n", RenderMood(draft.Mood)))
	}
	if m.step > StepTitle {
		b.WriteString("\n")
	}

	switch m.step {
	case StepTitle:
		b.WriteString(stepStyle.Render("Step 1 of 4: Title"))
		b.WriteString("\n")
		b.WriteString(m.inputs[0].View())
		b.WriteString("\n")

	case StepContent:
		b.WriteString(stepStyle.Render("Step 2 of 4: Content"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("(press Enter to skip)"))
		b.WriteString("\n")
		b.WriteString(m.inputs[1].View())
		b.WriteString("\n")

	case StepTags:
		b.WriteString(stepStyle.Render("Step 3 of 4: Tags"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("(comma separated, Enter to skip)"))
		b.WriteString("\n")
		b.WriteString(m.inputs[2].View())
		b.WriteString("\n")

	case StepMood:
		b.WriteString(stepStyle.Render("Step 4 of 4: Mood"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render(MoodChoices()))
		b.WriteString("\n")
		b.WriteString(m.inputs[3].View())
		b.WriteString("\n")

	case StepSaving:
		b.WriteString(m.spinner.View())
		if m.quitting {
			b.WriteString(" Cancelling...")
		} else {
			b.WriteString(" Saving entry...")
		}
		b.WriteString("\n")

	case StepDone:
		b.WriteString(successStyle.Render("✓ Saved!"))
		b.WriteString("\n")

	case StepFailed:
		errMsg := "unknown error"
		if m.saveErr != nil {
			errMsg = m.saveErr.Error()
		}
		b.WriteString(errorStyle.Render(fmt.Sprintf("✗ Save failed: %s", errMsg)))
		b.WriteString("\n\n")
		b.WriteString(promptStyle.Render("[r]etry  [q]uit"))
		b.WriteString("\n")
	}

	if m.inputErr != nil {
		b.WriteString(errorStyle.Render(m.inputErr.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

// Draft returns the values entered so far.
func (m ComposeModel) Draft() Draft {
	mood, _ := models.ParseMood(m.inputs[3].Value())
	return Draft{
		Title:   strings.TrimSpace(m.inputs[0].Value()),
		Content: m.inputs[1].Value(),
		Tags:    ParseTags(m.inputs[2].Value()),
		Mood:    mood,
	}
}

// Saved returns true if the draft was persisted, even if the user asked to
// quit while the save was running.
func (m ComposeModel) Saved() bool {
	return m.step == StepDone
}

// Entry returns the entry created by the wizard, or nil if none reached the store.
func (m ComposeModel) Entry() *models.JournalEntry {
	return m.pending
}

// ParseTags splits a comma-separated list, trimming blanks and dropping duplicates.
func ParseTags(s string) []string {
	var tags []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(s, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
