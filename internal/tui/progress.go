// Package tui renders the interactive download progress display.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const tickInterval = 150 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// tickMsg drives the spinner animation.
type tickMsg time.Time

// ProgressMsg carries the cumulative downloaded byte count.
type ProgressMsg int64

// WorkDoneMsg signals that provisioning finished, carrying the cache path.
type WorkDoneMsg struct {
	Path string
}

// ErrorMsg signals that provisioning failed.
type ErrorMsg struct {
	Err error
}

// DownloadModel is a bubbletea model rendering a one-line download status:
// spinner, package label, cumulative bytes.
type DownloadModel struct {
	label string
	bytes int64
	path  string
	done  bool
	err   error
	tick  int
}

// NewDownloadModel creates a progress model labelled with the package being
// provisioned.
func NewDownloadModel(label string) DownloadModel {
	return DownloadModel{label: label}
}

// Err returns the terminal error, if any, once the program has quit.
func (m DownloadModel) Err() error {
	return m.err
}

func scheduleTick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init satisfies the tea.Model interface.
func (m DownloadModel) Init() tea.Cmd {
	return scheduleTick()
}

// Update satisfies the tea.Model interface.
func (m DownloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.tick++
		if m.done {
			return m, nil
		}
		return m, scheduleTick()

	case ProgressMsg:
		m.bytes = int64(msg)
		return m, nil

	case WorkDoneMsg:
		m.path = msg.Path
		m.done = true
		return m, tea.Quit

	case ErrorMsg:
		m.err = msg.Err
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View satisfies the tea.Model interface.
func (m DownloadModel) View() string {
	if m.err != nil {
		return StatusStyle("error").Render("✗") + " " + m.label + ": " + m.err.Error() + "\n"
	}
	if m.done {
		line := fmt.Sprintf("✓ %s (%s) → %s", m.label, humanBytes(m.bytes), m.path)
		return StatusStyle("complete").Render(line) + "\n"
	}

	frame := spinnerFrames[m.tick%len(spinnerFrames)]
	status := "resolving"
	detail := ""
	if m.bytes > 0 {
		status = "downloading"
		detail = " " + humanBytes(m.bytes)
	}
	return fmt.Sprintf("%s %s %s%s\n", frame, m.label, StatusStyle(status).Render(status), detail)
}

func humanBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/float64(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
