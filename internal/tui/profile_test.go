package tui

import (
	"strings"
	"testing"
	"time"

	"parley/pkg/client"
	"parley/pkg/domain"
)

func TestProfileLoaded(t *testing.T) {
	m := newProfileModel(nil)
	user := &domain.User{
		ID:        7,
		Login:     "alice",
		CreatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	m, _ = m.Update(profileLoadedMsg{user: user})

	if m.loading {
		t.Error("expected loading=false after load")
	}
	view := m.View()
	if !strings.Contains(view, "alice") {
		t.Errorf("expected login in profile view, got:\n%s", view)
	}
	if !strings.Contains(view, "15.01.2024") {
		t.Errorf("expected joined date in profile view, got:\n%s", view)
	}
}

func TestProfileLoadingState(t *testing.T) {
	m := newProfileModel(nil)
	if !strings.Contains(m.View(), "loading") {
		t.Errorf("expected loading text, got:\n%s", m.View())
	}
}

func TestProfileLoadError(t *testing.T) {
	m := newProfileModel(nil)
	err := &client.APIError{Kind: client.KindServer, StatusCode: 500, Message: "boom"}
	m, _ = m.Update(profileLoadedMsg{err: err})

	view := m.View()
	if !strings.Contains(view, "could not load profile") {
		t.Errorf("expected load error text, got:\n%s", view)
	}
	// Logout stays available even when the fetch failed.
	if !strings.Contains(view, "sign out") {
		t.Errorf("expected sign-out hint in error state, got:\n%s", view)
	}
}

func TestProfileUnauthorizedExpiresSession(t *testing.T) {
	m := newProfileModel(nil)
	err := &client.APIError{Kind: client.KindUnauthorized, StatusCode: 401, Message: "invalid token"}
	_, cmd := m.Update(profileLoadedMsg{err: err})
	if cmd == nil {
		t.Fatal("expected command on 401")
	}
	if _, ok := cmd().(sessionExpiredMsg); !ok {
		t.Error("expected sessionExpiredMsg on 401")
	}
}

func TestProfileLogoutKey(t *testing.T) {
	m := newProfileModel(nil)
	_, cmd := m.Update(keyRunes("x"))
	if cmd == nil {
		t.Fatal("expected command on x")
	}
	if _, ok := cmd().(logoutMsg); !ok {
		t.Error("expected logoutMsg on x")
	}
}
