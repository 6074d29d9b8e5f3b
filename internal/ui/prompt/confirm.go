package prompt

import (
	"fmt"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"
)

// ConfirmResult holds the result of a confirmation prompt.
type ConfirmResult struct {
	Confirmed bool
	Cancelled bool
	// Details is set when the user asked to see what the prompt is about.
	// The caller prints them and asks again.
	Details bool
}

type confirmModel struct {
	prompt    string
	confirmed bool
	details   bool
	done      bool
	cancelled bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "y", "Y":
			m.confirmed = true
			m.done = true
			return m, tea.Quit
		case "d", "D":
			m.details = true
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case "n", "N", "enter":
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	return tea.NewView(fmt.Sprintf("%s y(es) / N(o) / d(etails)> ", m.prompt))
}

// Confirm shows a yes/no/details prompt on stderr and returns the choice.
// Enter without input means "no".
func Confirm(prompt string) (ConfirmResult, error) {
	return confirm(prompt, os.Stdin, os.Stderr)
}

func confirm(prompt string, in io.Reader, out io.Writer) (ConfirmResult, error) {
	p := tea.NewProgram(confirmModel{prompt: prompt}, tea.WithInput(in), tea.WithOutput(out))
	finalModel, err := p.Run()
	if err != nil {
		return ConfirmResult{}, err
	}
	m := finalModel.(confirmModel)
	return ConfirmResult{
		Confirmed: m.confirmed,
		Cancelled: m.cancelled,
		Details:   m.details,
	}, nil
}
