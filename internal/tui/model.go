package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"inboxstamp/internal/domain"
	appErrors "inboxstamp/internal/errors"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Phase represents the current state of the TUI
type Phase int

const (
	PhaseScanning Phase = iota
	PhaseConfirm
	PhaseRenaming
	PhaseDone
	PhaseError
)

// Messages for the TUI
type (
	PlanReadyMsg struct {
		Plan domain.RenamePlan
	}
	ScanProgressMsg struct {
		Current int
		Total   int
	}
	RenameProgressMsg struct {
		Current int
		Total   int
		File    string
	}
	RenameDoneMsg struct {
		Report domain.Report
		Err    error
	}
	ErrorMsg struct {
		Err error
	}
	ConfirmMsg struct {
		Confirmed bool
	}
	tickMsg time.Time
)

// ExecuteRenameFunc starts the renames for plan. The returned command
// should block until the renames finish and yield a RenameDoneMsg.
type ExecuteRenameFunc func(plan domain.RenamePlan) tea.Cmd

type Config struct {
	InboxDir      string
	DryRun        bool
	Verbose       bool
	ExecuteRename ExecuteRenameFunc
	// Cancel stops a running rename after the current file.
	Cancel func()
}

type Model struct {
	config           Config
	Phase            Phase
	Plan             domain.RenamePlan
	Report           domain.Report
	spinner          spinner.Model
	progress         progress.Model
	scanCurrent      int
	scanTotal        int
	renameCurrent    int
	renameTotal      int
	currentFile      string
	confirmSelection bool // true = yes, false = no
	Declined         bool
	Executed         bool
	Stopped          bool
	stopping         bool
	Err              error
	Quitting         bool
	width            int
}

func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return Model{
		config:   cfg,
		Phase:    PhaseScanning,
		spinner:  s,
		progress: p,
		width:    80,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-20, 60)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ScanProgressMsg:
		m.scanCurrent = msg.Current
		m.scanTotal = msg.Total
		return m, nil

	case PlanReadyMsg:
		m.Plan = msg.Plan
		m.Report = msg.Plan.Preview()
		m.Report.DryRun = m.config.DryRun
		if m.config.DryRun || len(m.Plan.Items) == 0 {
			m.Phase = PhaseDone
			return m, nil
		}
		m.Phase = PhaseConfirm
		return m, nil

	case ConfirmMsg:
		if !msg.Confirmed {
			m.Declined = true
			m.Phase = PhaseDone
			return m, nil
		}
		m.Phase = PhaseRenaming
		m.Executed = true
		m.renameTotal = len(m.Plan.Items)
		if m.config.ExecuteRename != nil {
			return m, tea.Batch(tickCmd(), m.config.ExecuteRename(m.Plan))
		}
		return m, nil

	case RenameProgressMsg:
		m.renameCurrent = msg.Current
		m.renameTotal = msg.Total
		m.currentFile = msg.File
		return m, nil

	case RenameDoneMsg:
		m.Report = msg.Report
		if m.stopping {
			m.Stopped = true
			m.Phase = PhaseDone
			if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
				m.Err = msg.Err
				m.Phase = PhaseError
			}
			m.Quitting = true
			return m, tea.Quit
		}
		if msg.Err != nil {
			m.Err = msg.Err
			m.Phase = PhaseError
			return m, nil
		}
		m.Phase = PhaseDone
		return m, nil

	case ErrorMsg:
		m.Phase = PhaseError
		m.Err = msg.Err
		return m, nil

	case spinner.TickMsg:
		if m.Phase == PhaseScanning || m.Phase == PhaseRenaming {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case tickMsg:
		if m.Phase == PhaseRenaming {
			var cmds []tea.Cmd
			if m.renameTotal > 0 {
				cmds = append(cmds, m.progress.SetPercent(float64(m.renameCurrent)/float64(m.renameTotal)))
			}
			cmds = append(cmds, tickCmd(), m.spinner.Tick)
			return m, tea.Batch(cmds...)
		}
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.Phase == PhaseRenaming {
			// Finish the current file and wait for the report before quitting.
			if !m.stopping {
				m.stopping = true
				if m.config.Cancel != nil {
					m.config.Cancel()
				}
			}
			return m, nil
		}
		m.Quitting = true
		return m, tea.Quit
	case "left", "h", "y", "Y":
		if m.Phase == PhaseConfirm {
			m.confirmSelection = true
		}
	case "right", "l", "n", "N":
		if m.Phase == PhaseConfirm {
			m.confirmSelection = false
		}
	case "enter":
		if m.Phase == PhaseConfirm {
			confirmed := m.confirmSelection
			return m, func() tea.Msg {
				return ConfirmMsg{Confirmed: confirmed}
			}
		}
		if m.Phase == PhaseDone || m.Phase == PhaseError {
			return m, tea.Quit
		}
	}
	return m, nil
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) View() string {
	if m.Quitting && m.Phase != PhaseDone && m.Phase != PhaseError {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseScanning:
		b.WriteString(m.renderScanning())
	case PhaseConfirm:
		b.WriteString(m.renderPreview())
		b.WriteString("\n")
		b.WriteString(m.renderConfirmPrompt())
	case PhaseRenaming:
		b.WriteString(m.renderRenaming())
	case PhaseDone:
		b.WriteString(m.renderDone())
	case PhaseError:
		b.WriteString(m.renderError())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render(iconInbox + " Inbox Stamp")
	subtitle := subtitleStyle.Render("Timestamp new arrivals")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		dimStyle.Render(fmt.Sprintf("%s Inbox: %s", iconFolder, shortenPath(m.config.InboxDir))),
	)
}

func (m Model) renderScanning() string {
	if m.scanTotal > 0 {
		percent := float64(m.scanCurrent) / float64(m.scanTotal)
		return fmt.Sprintf("%s Scanning inbox...\n\n  %s\n  %s",
			m.spinner.View(),
			m.progress.ViewAs(percent),
			statValueStyle.Render(fmt.Sprintf("%d/%d entries", m.scanCurrent, m.scanTotal)),
		)
	}
	return fmt.Sprintf("%s Scanning inbox...", m.spinner.View())
}

func (m Model) renderPreview() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Files to Rename"))
	b.WriteString("\n\n")

	if len(m.Plan.Items) == 0 {
		b.WriteString(dimStyle.Render("  No new files to rename"))
		b.WriteString("\n")
	} else {
		for _, line := range formatRenameList(m.Plan.Items, 6) {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString(m.renderSummary(m.Report))
	return b.String()
}

func (m Model) renderSummary(report domain.Report) string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Summary"))
	b.WriteString("\n\n")

	renamedLabel := "Renamed:"
	if report.DryRun || m.Phase == PhaseConfirm || m.Declined {
		renamedLabel = "To rename:"
	}
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render(renamedLabel), statValueStyle.Render(fmt.Sprintf("%d files", report.Renamed))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Already prefixed:"), dimStyle.Render(fmt.Sprintf("%s %d", iconSkipped, report.SkippedPrefixed))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Not a file:"), dimStyle.Render(fmt.Sprintf("%s %d", iconSkipped, report.SkippedNotFile))))
	if report.Failed > 0 {
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Failed:"), warningStyle.Render(fmt.Sprintf("%s %d", iconWarning, report.Failed))))
	}

	if failures := report.Failures(); len(failures) > 0 && (m.config.Verbose || m.Phase == PhaseDone) {
		b.WriteString("\n")
		for _, f := range failures {
			b.WriteString(fmt.Sprintf("  %s %s: %v\n", warningStyle.Render(iconWarning), fileNameStyle.Render(f.Name), appErrors.Cause(f.Err)))
		}
	}

	if report.DryRun {
		b.WriteString("\n")
		b.WriteString(highlightBoxStyle.Render("🔍 Dry Run - No files were renamed"))
	}

	return b.String()
}

func (m Model) renderConfirmPrompt() string {
	prompt := confirmPromptStyle.Render(fmt.Sprintf("Rename %d files?", len(m.Plan.Items)))

	var yesBtn, noBtn string
	if m.confirmSelection {
		yesBtn = highlightBoxStyle.Background(lipgloss.Color("#2D5A27")).Render(" Yes ")
		noBtn = boxStyle.Render(" No ")
	} else {
		yesBtn = boxStyle.Render(" Yes ")
		noBtn = highlightBoxStyle.Background(lipgloss.Color("#5A2727")).Render(" No ")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, yesBtn, "  ", noBtn)
	return lipgloss.JoinVertical(lipgloss.Left, prompt, "", buttons)
}

func (m Model) renderRenaming() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Renaming Files"))
	b.WriteString("\n\n")

	percent := 0.0
	if m.renameTotal > 0 {
		percent = float64(m.renameCurrent) / float64(m.renameTotal)
	}

	b.WriteString(fmt.Sprintf("  %s Renaming...\n\n", m.spinner.View()))
	b.WriteString(fmt.Sprintf("  %s\n", m.progress.ViewAs(percent)))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		statValueStyle.Render(fmt.Sprintf("%d/%d files", m.renameCurrent, m.renameTotal)),
		dimStyle.Render(fmt.Sprintf("(%.0f%%)", percent*100)),
	))

	if m.currentFile != "" {
		b.WriteString(fmt.Sprintf("\n  %s %s\n", iconArrow, fileNameStyle.Render(m.currentFile)))
	}

	return b.String()
}

func (m Model) renderDone() string {
	var b strings.Builder

	switch {
	case m.Stopped:
		b.WriteString(warningStyle.Render(fmt.Sprintf("  %s Stopped early, %d of %d files renamed", iconWarning, m.Report.Renamed, len(m.Plan.Items))))
		b.WriteString("\n")
	case m.Declined:
		b.WriteString(warningStyle.Render("  Rename declined, nothing was changed"))
		b.WriteString("\n")
	case m.Report.DryRun:
	case m.Report.Renamed == 0 && m.Report.Failed == 0:
		b.WriteString(dimStyle.Render("  No new files to rename"))
		b.WriteString("\n")
	case m.Report.Renamed == 0:
		b.WriteString(fmt.Sprintf("  %s %s\n", errorStyle.Render(iconError), warningStyle.Render(fmt.Sprintf("No files renamed, %d failed", m.Report.Failed))))
	default:
		b.WriteString(fmt.Sprintf("  %s %s\n", successStyle.Render(iconSuccess), successStyle.Render("Rename complete")))
		for _, line := range formatOutcomeList(m.Report.Renames(), 6) {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString(m.renderSummary(m.Report))
	return b.String()
}

func (m Model) renderError() string {
	icon := errorStyle.Render(iconError)
	msg := errorStyle.Render(appErrors.UserMessage(m.Err))

	return highlightBoxStyle.
		BorderForeground(errorColor).
		Render(fmt.Sprintf("%s %s", icon, msg))
}

func (m Model) renderHelp() string {
	var help string
	switch m.Phase {
	case PhaseScanning:
		help = "Press q to quit"
	case PhaseConfirm:
		help = "← → or y/n to select • Enter to confirm • q to quit"
	case PhaseRenaming:
		help = "Renaming files... Press q to stop after the current file"
		if m.stopping {
			help = "Stopping after the current file..."
		}
	case PhaseDone:
		help = "Press Enter to exit"
	case PhaseError:
		help = "Press Enter or q to exit"
	}
	return helpStyle.Render(help)
}

// formatRenameList shows the first and last items when there are more
// than maxItems.
func formatRenameList(items []domain.RenameItem, maxItems int) []string {
	lines := make([]string, 0, min(len(items), maxItems+1))
	for _, i := range visibleIndexes(len(items), maxItems) {
		if i < 0 {
			lines = append(lines, dimStyle.Render(fmt.Sprintf("... %d more files ...", len(items)-maxItems)))
			continue
		}
		lines = append(lines, formatRenameLine(items[i].Name, items[i].NewName))
	}
	return lines
}

func formatOutcomeList(outcomes []domain.Outcome, maxItems int) []string {
	lines := make([]string, 0, min(len(outcomes), maxItems+1))
	for _, i := range visibleIndexes(len(outcomes), maxItems) {
		if i < 0 {
			lines = append(lines, dimStyle.Render(fmt.Sprintf("... %d more files ...", len(outcomes)-maxItems)))
			continue
		}
		lines = append(lines, formatRenameLine(outcomes[i].Name, outcomes[i].NewName))
	}
	return lines
}

// visibleIndexes returns the indexes to show, with -1 marking the gap.
func visibleIndexes(n, maxItems int) []int {
	if n <= maxItems {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	half := maxItems / 2
	out := make([]int, 0, maxItems+1)
	for i := 0; i < half; i++ {
		out = append(out, i)
	}
	out = append(out, -1)
	for i := n - half; i < n; i++ {
		out = append(out, i)
	}
	return out
}

func formatRenameLine(oldName, newName string) string {
	return fmt.Sprintf("%s %s %s", fileNameStyle.Render(oldName), iconArrow, newNameStyle.Render(newName))
}

// shortenPath replaces the home directory prefix with ~ for display
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
