// Package progress shows progress during long-running operations.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
)

// messageUpdate is sent to update the spinner message
type messageUpdate string

// Spinner wraps a Bubbletea spinner for simple non-interactive use.
// Messages are dropped rather than block the caller.
type Spinner struct {
	out     io.Writer
	program *tea.Program
	msgChan chan string
	done    chan struct{}
	mu      sync.Mutex
	running bool
	lastMsg string
	// minimum time between two forwarded updates
	interval time.Duration
	lastSent time.Time
}

type spinnerModel struct {
	spinner spinner.Model
	message string
	msgChan chan string
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForMessage())
}

func (m spinnerModel) waitForMessage() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.msgChan
		if !ok {
			return tea.Quit()
		}
		return messageUpdate(msg)
	}
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messageUpdate:
		m.message = string(msg)
		return m, m.waitForMessage()
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m spinnerModel) View() tea.View {
	if m.message == "" {
		return tea.NewView("")
	}
	return tea.NewView(fmt.Sprintf("%s %s", m.spinner.View(), m.message))
}

// NewSpinner creates a spinner that draws to out once started.
func NewSpinner(out io.Writer, message string) *Spinner {
	return &Spinner{
		out:      out,
		msgChan:  make(chan string, 10),
		done:     make(chan struct{}),
		lastMsg:  message,
		interval: 50 * time.Millisecond,
	}
}

// Start begins the spinner animation
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	model := spinnerModel{
		spinner: sp,
		message: s.lastMsg,
		msgChan: s.msgChan,
	}

	s.program = tea.NewProgram(model,
		tea.WithoutSignalHandler(),
		tea.WithInput(nil),
		tea.WithOutput(s.out),
	)
	s.running = true

	go func() {
		_, _ = s.program.Run()
		close(s.done)
	}()
}

// Update changes the spinner message. Calls closer together than the
// refresh interval are coalesced.
func (s *Spinner) Update(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastMsg = fmt.Sprintf(format, args...)
	if !s.running {
		return
	}
	now := time.Now()
	if now.Sub(s.lastSent) < s.interval {
		return
	}
	select {
	case s.msgChan <- s.lastMsg:
		s.lastSent = now
	default:
	}
}

// Message returns the latest message passed to Update.
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastMsg
}

// Stop stops the spinner and clears the line
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	// closed under the mutex so Update never sends on a closed channel
	close(s.msgChan)
	s.mu.Unlock()

	if s.program != nil {
		s.program.Quit()
	}

	select {
	case <-s.done:
	case <-time.After(500 * time.Millisecond):
	}

	fmt.Fprint(s.out, "\r\033[K")
}
