// Package tui renders download progress as a bubbletea program.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#82AAFF")).
			Bold(true)
	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#546E7A"))
)

type totalMsg int
type tickMsg struct{}
type doneMsg struct{}

type model struct {
	bar   progress.Model
	total int
	done  int
}

func newModel() model {
	return model{bar: progress.New(progress.WithDefaultGradient())}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		width := msg.Width - 6
		if width > 0 {
			m.bar.Width = width
		}
	case totalMsg:
		m.total = int(msg)
		m.done = 0
	case tickMsg:
		m.done++
	case doneMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	if m.total == 0 {
		return titleStyle.Render("antenati") + " resolving gallery...\n"
	}
	percent := float64(m.done) / float64(m.total)
	return fmt.Sprintf("%s %s\n%s\n",
		titleStyle.Render("antenati"),
		countStyle.Render(fmt.Sprintf("%d/%d pages", m.done, m.total)),
		m.bar.ViewAs(percent),
	)
}

// Sink is a ProgressSink backed by a running bubbletea program.
type Sink struct {
	program *tea.Program
	done    chan struct{}
}

func NewSink() *Sink {
	s := &Sink{
		program: tea.NewProgram(newModel()),
		done:    make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		_, _ = s.program.Run()
	}()
	return s
}

func (s *Sink) SetTotal(n int) {
	s.program.Send(totalMsg(n))
}

func (s *Sink) Tick() {
	s.program.Send(tickMsg{})
}

// Wait quits the program and blocks until the terminal is restored.
func (s *Sink) Wait() {
	s.program.Send(doneMsg{})
	<-s.done
}
