package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"path/filepath"
	"runtime"
	"testing"

	"Catalog/internal/config"
)

// withTempConfig переопределяет пользовательские каталоги на время теста,
// чтобы токен и id пользователя создавались в temp.
func withTempConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("APPDATA", dir)
	} else {
		t.Setenv("XDG_CONFIG_HOME", dir)
	}
	return &config.Config{ServerURL: serverURL, TokenFile: filepath.Join(dir, "Catalog", "auth_token")}
}

// перехват stdout на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

// loggedIn сохраняет токен как после успешного login.
func loggedIn(t *testing.T, cfg *config.Config, token string, userID int64) {
	t.Helper()
	st := NewAuthStore(cfg)
	if err := st.Save(token); err != nil {
		t.Fatalf("save token: %v", err)
	}
	if err := st.SaveUserID(userID); err != nil {
		t.Fatalf("save user id: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
