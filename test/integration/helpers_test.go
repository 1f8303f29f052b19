//go:build integration

package integration_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir      string // TOOLSMITH_HOME: config, registration history, template overrides
	WorkspaceDir string // the workspace tools are scaffolded into
}

// setupTestEnv creates isolated temp directories and points the
// per-user state at them so nothing leaks between tests or into the
// developer's real home directory.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:      t.TempDir(),
		WorkspaceDir: t.TempDir(),
	}
	t.Setenv("TOOLSMITH_HOME", env.HomeDir)
	return env
}

// fakeRegistry is an in-process registry implementing the login and
// registration endpoints. Status overrides let tests force failures;
// attempt counters expose the retry behavior.
type fakeRegistry struct {
	*httptest.Server

	LoginAttempts    atomic.Int32
	RegisterAttempts atomic.Int32

	// When non-zero, the endpoint answers with this status instead of
	// succeeding. LoginFailures limits how many times the login status
	// fires before the endpoint recovers (0 = always).
	LoginStatus    int
	LoginFailures  int32
	RegisterStatus int
}

const fakeToken = "integration-token"

func newFakeRegistry(t *testing.T) *fakeRegistry {
	t.Helper()

	f := &fakeRegistry{}
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		n := f.LoginAttempts.Add(1)
		if f.LoginStatus != 0 && (f.LoginFailures == 0 || n <= f.LoginFailures) {
			writeStatus(w, f.LoginStatus, `{"error":"login rejected"}`)
			return
		}

		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
			writeStatus(w, http.StatusUnauthorized, `{"error":"missing credentials"}`)
			return
		}
		writeStatus(w, http.StatusOK, `{"data":{"accessToken":"`+fakeToken+`"}}`)
	})

	mux.HandleFunc("/api/v1/tools", func(w http.ResponseWriter, r *http.Request) {
		f.RegisterAttempts.Add(1)
		if r.Header.Get("Authorization") != "Bearer "+fakeToken {
			writeStatus(w, http.StatusUnauthorized, `{"error":"missing bearer token"}`)
			return
		}
		if f.RegisterStatus != 0 {
			writeStatus(w, f.RegisterStatus, `{"error":"registration rejected"}`)
			return
		}

		var req struct {
			ToolID string `json:"toolId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ToolID == "" {
			writeStatus(w, http.StatusBadRequest, `{"error":"validation failed","details":[{"field":"toolId","message":"required"}]}`)
			return
		}
		writeStatus(w, http.StatusCreated, fmt.Sprintf(
			`{"data":{"toolId":%q,"createdAt":"2026-08-25T10:00:00Z"},"message":"Tool registered"}`, req.ToolID))
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func writeStatus(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
