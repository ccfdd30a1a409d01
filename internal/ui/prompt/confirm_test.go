package prompt

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestConfirmModel_Keys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  tea.KeyPressMsg
		want ConfirmResult
	}{
		{"y", tea.KeyPressMsg{Code: 'y'}, ConfirmResult{Confirmed: true}},
		{"Y", tea.KeyPressMsg{Code: 'Y'}, ConfirmResult{Confirmed: true}},
		{"n", tea.KeyPressMsg{Code: 'n'}, ConfirmResult{}},
		{"enter answers no", tea.KeyPressMsg{Code: tea.KeyEnter}, ConfirmResult{}},
		{"esc", tea.KeyPressMsg{Code: tea.KeyEscape}, ConfirmResult{Cancelled: true}},
		{"ctrl+c", tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}, ConfirmResult{Cancelled: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			updated, cmd := confirmModel{prompt: "Force push main to origin?"}.Update(tt.key)
			m := updated.(confirmModel)
			if got := (ConfirmResult{Confirmed: m.confirmed, Cancelled: m.cancelled}); got != tt.want {
				t.Errorf("result = %+v, want %+v", got, tt.want)
			}
			if !m.done || cmd == nil {
				t.Errorf("prompt did not finish (done=%v, cmd nil=%v)", m.done, cmd == nil)
			}
			if m.View().Content != "" {
				t.Errorf("answered prompt still drawn: %q", m.View().Content)
			}
		})
	}
}

func TestConfirmModel_OtherKeysKeepAsking(t *testing.T) {
	t.Parallel()
	updated, cmd := confirmModel{prompt: "Force push main to origin?"}.Update(tea.KeyPressMsg{Code: 'x'})
	m := updated.(confirmModel)
	if m.done || cmd != nil {
		t.Errorf("unrelated key ended the prompt: %+v", m)
	}
	if view := m.View().Content; !strings.Contains(view, "Force push main to origin?") || !strings.Contains(view, "[y/N]") {
		t.Errorf("View() = %q", view)
	}
}

// stubPrompt replaces the terminal check and the prompt for one test.
// Tests using it cannot run in parallel.
func stubPrompt(t *testing.T, isTTY bool, answer ConfirmResult, err error) *int {
	t.Helper()
	asked := 0
	savedInteractive, savedAsk := interactive, ask
	interactive = func() bool { return isTTY }
	ask = func(string) (ConfirmResult, error) {
		asked++
		return answer, err
	}
	t.Cleanup(func() { interactive, ask = savedInteractive, savedAsk })
	return &asked
}

func TestAllow(t *testing.T) {
	tests := []struct {
		name      string
		isTTY     bool
		skip      bool
		answer    ConfirmResult
		want      bool
		wantAsked int
	}{
		{"--yes never asks", true, true, ConfirmResult{}, true, 0},
		{"non-interactive proceeds", false, false, ConfirmResult{}, true, 0},
		{"confirmed", true, false, ConfirmResult{Confirmed: true}, true, 1},
		{"declined", true, false, ConfirmResult{}, false, 1},
		{"cancelled", true, false, ConfirmResult{Cancelled: true}, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asked := stubPrompt(t, tt.isTTY, tt.answer, nil)
			got, err := Allow("Force push main to origin?", tt.skip)
			if err != nil {
				t.Fatalf("Allow() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Allow() = %v, want %v", got, tt.want)
			}
			if *asked != tt.wantAsked {
				t.Errorf("asked %d times, want %d", *asked, tt.wantAsked)
			}
		})
	}
}

func TestAllow_PromptError(t *testing.T) {
	stubPrompt(t, true, ConfirmResult{}, errors.New("could not open a new TTY"))
	if ok, err := Allow("Force push main to origin?", false); err == nil || ok {
		t.Errorf("Allow() = %v, %v, want refusal with error", ok, err)
	}
}
