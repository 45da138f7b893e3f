package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fosrl/posture/internal/logger"
	"github.com/fosrl/posture/internal/posture"
	"github.com/fosrl/posture/internal/report"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// ProgressConfig configures the live check progress TUI
type ProgressConfig struct {
	Header  string
	Checker *posture.Checker
	Checks  []posture.Check
}

// progressModel is the bubbletea model for the live check progress
type progressModel struct {
	ctx    context.Context
	cancel context.CancelFunc

	config    ProgressConfig
	report    *posture.Report
	current   int
	frame     int
	cancelled bool
}

// RunProgress runs the checks one by one while rendering their state.
// It returns the filled report and false if the user quit early.
func RunProgress(ctx context.Context, config ProgressConfig) (*posture.Report, bool, error) {
	if len(config.Checks) == 0 {
		config.Checks = posture.AllChecks
	}

	model := newProgressModel(ctx, config)
	defer model.cancel()

	program := tea.NewProgram(model, tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return model.report, false, err
	}

	if m, ok := finalModel.(*progressModel); ok {
		return m.report, !m.cancelled, nil
	}
	return model.report, false, nil
}

func newProgressModel(ctx context.Context, config ProgressConfig) *progressModel {
	ctx, cancel := context.WithCancel(ctx)
	return &progressModel{
		ctx:    ctx,
		cancel: cancel,
		config: config,
		report: config.Checker.NewReport(),
	}
}

// Init starts the first check and the spinner
func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.runCurrent(), tickSpinner())
}

func (m *progressModel) done() bool {
	return m.current >= len(m.config.Checks)
}

// Update handles messages
func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			m.cancel()
			return m, tea.Quit
		}
		return m, nil

	case checkDoneMsg:
		m.current++
		if m.done() {
			return m, tea.Quit
		}
		return m, m.runCurrent()

	case spinnerTickMsg:
		if m.done() {
			return m, nil
		}
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, tickSpinner()
	}
	return m, nil
}

// View renders the model
func (m *progressModel) View() string {
	var sb strings.Builder

	pendingStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(logger.ColorLightGray))
	runningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(logger.ColorInfo))

	sb.WriteString(m.config.Header)
	sb.WriteString("\n")

	for i, check := range m.config.Checks {
		switch {
		case i < m.current:
			line, _, _ := report.Line(m.report, check)
			sb.WriteString(line)
		case i == m.current && !m.cancelled:
			sb.WriteString(runningStyle.Render(spinnerFrames[m.frame] + " Checking " + strings.ToLower(check.Description()) + "..."))
		default:
			sb.WriteString(pendingStyle.Render("  " + check.Description()))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// runCurrent evaluates the current check off the UI goroutine
func (m *progressModel) runCurrent() tea.Cmd {
	if m.done() {
		return nil
	}
	check := m.config.Checks[m.current]
	return func() tea.Msg {
		m.config.Checker.Evaluate(m.ctx, check, m.report)
		return checkDoneMsg{check: check}
	}
}

// Messages for bubbletea
type (
	checkDoneMsg struct {
		check posture.Check
	}
	spinnerTickMsg struct{}
)

// tickSpinner advances the spinner
func tickSpinner() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}
