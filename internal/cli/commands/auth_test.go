package commands

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRegisterLoginLogout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch r.URL.Path {
		case "/api/auth/register":
			if body["username"] == "taken" {
				writeJSON(w, http.StatusConflict, map[string]string{"error": "Username already exists"})
				return
			}
			if body["email"] == "" {
				t.Fatalf("email must be sent")
			}
			writeJSON(w, http.StatusCreated, map[string]any{"token": "tok-reg", "user": map[string]any{"id": 5, "username": body["username"]}})
		case "/api/auth/login":
			if body["password"] != "secret1" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid username or password"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"token": "tok-login", "user": map[string]any{"id": 6, "username": body["username"]}})
		default:
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer ts.Close()
	cfg := withTempConfig(t, ts.URL)
	ctx := context.Background()

	if err := (registerCmd{}).Run(ctx, cfg, []string{"bob"}); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
	out := withStdoutCapture(t, func() {
		if err := (registerCmd{}).Run(ctx, cfg, []string{"bob", "bob@example.com", "secret1"}); err != nil {
			t.Fatalf("register should succeed: %v", err)
		}
	})
	if !strings.Contains(out, "logged in as bob") {
		t.Fatalf("unexpected output %q", out)
	}
	st := NewAuthStore(cfg)
	if tok, _ := st.Load(); tok != "tok-reg" {
		t.Fatalf("token not saved, got %q", tok)
	}
	if id, _ := st.LoadUserID(); id != 5 {
		t.Fatalf("user id not saved, got %d", id)
	}

	err := (registerCmd{}).Run(ctx, cfg, []string{"taken", "t@example.com", "secret1"})
	if err == nil || !strings.Contains(err.Error(), "Username already exists") {
		t.Fatalf("expected conflict error, got %v", err)
	}

	err = (loginCmd{}).Run(ctx, cfg, []string{"bob", "bad"})
	if err == nil || err.Error() != "invalid login or password" {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	withStdoutCapture(t, func() {
		if err := (loginCmd{}).Run(ctx, cfg, []string{"bob", "secret1"}); err != nil {
			t.Fatalf("login should succeed: %v", err)
		}
	})
	if tok, _ := st.Load(); tok != "tok-login" {
		t.Fatalf("token not replaced, got %q", tok)
	}

	withStdoutCapture(t, func() {
		if err := (logoutCmd{}).Run(ctx, cfg, nil); err != nil {
			t.Fatalf("logout: %v", err)
		}
	})
	if _, err := st.Load(); err == nil {
		t.Fatalf("token must be removed by logout")
	}
	if err := (whoamiCmd{}).Run(ctx, cfg, nil); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestLogin_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()
	cfg := withTempConfig(t, ts.URL)
	if err := (loginCmd{}).Run(context.Background(), cfg, []string{"a", "b"}); err == nil {
		t.Fatalf("expected error for 500")
	}
}

func TestWhoami(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
			return
		}
		if r.URL.Path != "/api/users/3" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": 3, "username": "carol", "email": "c@example.com", "is_admin": true})
	}))
	defer ts.Close()
	cfg := withTempConfig(t, ts.URL)
	loggedIn(t, cfg, "tok", 3)

	out := withStdoutCapture(t, func() {
		if err := (whoamiCmd{}).Run(context.Background(), cfg, nil); err != nil {
			t.Fatalf("whoami: %v", err)
		}
	})
	if !strings.Contains(out, "carol <c@example.com> id=3 role=admin") {
		t.Fatalf("unexpected output %q", out)
	}

	loggedIn(t, cfg, "stale", 3)
	if err := (whoamiCmd{}).Run(context.Background(), cfg, nil); err == nil || !strings.Contains(err.Error(), "login again") {
		t.Fatalf("expected expired session error, got %v", err)
	}
}
