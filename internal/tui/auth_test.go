package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"parley/pkg/client"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeString(m authModel, s string) authModel {
	for _, r := range s {
		m, _ = m.Update(keyRunes(string(r)))
	}
	return m
}

func TestAuthFieldNavigation(t *testing.T) {
	m := newAuthModel(nil)
	if m.focus != fieldLogin {
		t.Fatalf("initial focus = %v, want fieldLogin", m.focus)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != fieldPassword {
		t.Errorf("focus after tab = %v, want fieldPassword", m.focus)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != fieldLogin {
		t.Errorf("focus after second tab = %v, want fieldLogin (wrap)", m.focus)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != fieldPassword {
		t.Errorf("focus after shift+tab = %v, want fieldPassword (wrap back)", m.focus)
	}
}

func TestAuthEnterOnLoginMovesToPassword(t *testing.T) {
	m := newAuthModel(nil)
	m = typeString(m, "alice")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("enter on login field should not submit")
	}
	if m.focus != fieldPassword {
		t.Errorf("focus = %v, want fieldPassword after enter on login", m.focus)
	}
}

func TestAuthTyping(t *testing.T) {
	m := newAuthModel(nil)
	m = typeString(m, "alice")
	if m.fields[fieldLogin] != "alice" {
		t.Errorf("login field = %q, want %q", m.fields[fieldLogin], "alice")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if m.fields[fieldLogin] != "alic" {
		t.Errorf("login field after backspace = %q, want %q", m.fields[fieldLogin], "alic")
	}
}

func TestAuthPasswordMasked(t *testing.T) {
	m := newAuthModel(nil)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeString(m, "hunter2")

	view := m.View()
	if strings.Contains(view, "hunter2") {
		t.Errorf("password rendered in clear text:\n%s", view)
	}
	if !strings.Contains(view, "•••••••") {
		t.Errorf("expected masked password in view, got:\n%s", view)
	}
}

func TestAuthSubmitRequiresBothFields(t *testing.T) {
	m := newAuthModel(nil)
	m = typeString(m, "alice")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // to password, left empty

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no submit command with empty password")
	}
	if m.submitting {
		t.Error("expected submitting=false with empty password")
	}
	if !strings.Contains(m.errMsg, "required") {
		t.Errorf("errMsg = %q, want it to mention required fields", m.errMsg)
	}
}

func TestAuthSubmitSetsBusyFlag(t *testing.T) {
	m := newAuthModel(nil)
	m = typeString(m, "alice")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = typeString(m, "secret")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected submit command with both fields filled")
	}
	if !m.submitting {
		t.Fatal("expected submitting=true after submit")
	}

	// Keys are ignored while a submit is in flight.
	before := m.fields[fieldPassword]
	m, cmd = m.Update(keyRunes("x"))
	if cmd != nil {
		t.Error("expected no command while submitting")
	}
	if m.fields[fieldPassword] != before {
		t.Error("input changed while submitting")
	}
}

func TestAuthModeToggle(t *testing.T) {
	m := newAuthModel(nil)
	if m.mode != modeLogin {
		t.Fatalf("initial mode = %v, want modeLogin", m.mode)
	}
	if !strings.Contains(m.View(), "sign in") {
		t.Error("expected 'sign in' title in login mode")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.mode != modeRegister {
		t.Errorf("mode after ctrl+t = %v, want modeRegister", m.mode)
	}
	if !strings.Contains(m.View(), "create account") {
		t.Error("expected 'create account' title in register mode")
	}

	// Fields survive the toggle.
	m = typeString(m, "bob")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.fields[fieldLogin] != "bob" {
		t.Errorf("login field lost on toggle: %q", m.fields[fieldLogin])
	}
}

func TestAuthFailureShowsServerMessage(t *testing.T) {
	m := newAuthModel(nil)
	m.submitting = true

	err := &client.APIError{Kind: client.KindAuth, StatusCode: 401, Message: "invalid login or password"}
	m, _ = m.Update(authResultMsg{mode: modeLogin, err: err})

	if m.submitting {
		t.Error("expected submitting=false after failure")
	}
	if m.errMsg != "invalid login or password" {
		t.Errorf("errMsg = %q, want server message", m.errMsg)
	}
	if !strings.Contains(m.View(), "invalid login or password") {
		t.Error("expected server message in view")
	}
}

func TestAuthErrorMessageFallbacks(t *testing.T) {
	netErr := &client.APIError{Kind: client.KindNetwork, Message: "dial tcp: refused"}

	if got := authErrorMessage(netErr, modeLogin); !strings.Contains(got, "sign in") {
		t.Errorf("login fallback = %q, want generic sign-in text", got)
	}
	if got := authErrorMessage(netErr, modeRegister); !strings.Contains(got, "register") {
		t.Errorf("register fallback = %q, want generic register text", got)
	}
}

func TestAuthInfoNotice(t *testing.T) {
	m := newAuthModel(nil)
	m.info = "session expired — sign in again"
	if !strings.Contains(m.View(), "session expired") {
		t.Error("expected info notice in view")
	}
}
