package prompt

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	default:
		return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
	}
}

func TestConfirmModel_Update(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		key       string
		confirmed bool
		details   bool
		done      bool
		cancelled bool
		wantCmd   bool
	}{
		{"y confirms", "y", true, false, true, false, true},
		{"Y confirms", "Y", true, false, true, false, true},
		{"n declines", "n", false, false, true, false, true},
		{"enter defaults no", "enter", false, false, true, false, true},
		{"d asks for details", "d", false, true, true, false, true},
		{"ctrl+c cancels", "ctrl+c", false, false, true, true, true},
		{"esc cancels", "esc", false, false, true, true, true},
		{"q cancels", "q", false, false, true, true, true},
		{"unhandled is no-op", "x", false, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := confirmModel{prompt: "Delete them?"}
			updated, cmd := m.Update(keyPress(tt.key))
			um := updated.(confirmModel)

			if um.confirmed != tt.confirmed {
				t.Errorf("confirmed = %v, want %v", um.confirmed, tt.confirmed)
			}
			if um.details != tt.details {
				t.Errorf("details = %v, want %v", um.details, tt.details)
			}
			if um.done != tt.done {
				t.Errorf("done = %v, want %v", um.done, tt.done)
			}
			if um.cancelled != tt.cancelled {
				t.Errorf("cancelled = %v, want %v", um.cancelled, tt.cancelled)
			}
			if (cmd != nil) != tt.wantCmd {
				t.Errorf("cmd nil = %v, want nil = %v", cmd == nil, !tt.wantCmd)
			}
		})
	}
}

func TestConfirmModel_View(t *testing.T) {
	t.Parallel()

	m := confirmModel{prompt: "Found 3 thumbnail(s) to delete. Delete them?"}
	content := fmt.Sprint(m.View().Content)
	if !strings.Contains(content, "Delete them?") || !strings.Contains(content, "d(etails)") {
		t.Errorf("View() = %q", content)
	}

	m.done = true
	if fmt.Sprint(m.View().Content) != "" {
		t.Error("View() should be empty once answered")
	}
}

func TestConfirmModel_Init(t *testing.T) {
	t.Parallel()

	if cmd := (confirmModel{prompt: "test"}).Init(); cmd != nil {
		t.Error("Init() should return nil cmd")
	}
}
