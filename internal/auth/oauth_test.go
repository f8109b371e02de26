package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

const testCredentials = `{"installed":{"client_id":"id.apps.googleusercontent.com","client_secret":"secret","auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token","redirect_uris":["http://localhost"]}}`

func writeCredentials(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte(testCredentials), 0o600); err != nil {
		t.Fatalf("write credentials: %v", err)
	}
	return path
}

func TestClientWithoutTokenIsNotConnected(t *testing.T) {
	creds := writeCredentials(t)
	_, err := Client(context.Background(), creds, filepath.Join(t.TempDir(), "token.json"))
	if !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
}

func TestClientWithToken(t *testing.T) {
	creds := writeCredentials(t)
	tokenPath := filepath.Join(t.TempDir(), "nested", "token.json")
	tok := &oauth2.Token{AccessToken: "a", RefreshToken: "r", Expiry: time.Now().Add(time.Hour)}
	if err := saveToken(tokenPath, tok); err != nil {
		t.Fatalf("save token: %v", err)
	}
	if !HasToken(tokenPath) {
		t.Fatalf("expected token to be found")
	}
	client, err := Client(context.Background(), creds, tokenPath)
	if err != nil || client == nil {
		t.Fatalf("expected client, got %v", err)
	}
}

func TestClientMissingCredentials(t *testing.T) {
	_, err := Client(context.Background(), filepath.Join(t.TempDir(), "none.json"), "token.json")
	if err == nil || errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected credentials error, got %v", err)
	}
}

func TestCallbackHandler(t *testing.T) {
	codeCh := make(chan string, 1)
	h := callbackHandler("abc", codeCh)

	cases := []struct {
		target string
		status int
	}{
		{"/other", http.StatusNotFound},
		{"/callback?state=wrong&code=c", http.StatusBadRequest},
		{"/callback?state=abc&error=access_denied", http.StatusForbidden},
		{"/callback?state=abc", http.StatusBadRequest},
		{"/callback?state=abc&code=the-code", http.StatusOK},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.target, nil))
		if rec.Code != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.target, tc.status, rec.Code)
		}
	}
	select {
	case code := <-codeCh:
		if code != "the-code" {
			t.Fatalf("unexpected code %q", code)
		}
	default:
		t.Fatalf("expected the code to be delivered")
	}
}

func TestTokenFromPasteRejectsEmptyInput(t *testing.T) {
	config, err := oauthConfig(writeCredentials(t))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	var out strings.Builder
	_, err = tokenFromPaste(context.Background(), config, "s", &out, strings.NewReader("\n"))
	if err == nil {
		t.Fatalf("expected error for empty code")
	}
	if !strings.Contains(out.String(), "state=s") {
		t.Fatalf("expected auth URL with state, got %q", out.String())
	}
}

func TestNewStateIsRandom(t *testing.T) {
	a, err := newState()
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	b, _ := newState()
	if len(a) != 32 || a == b {
		t.Fatalf("unexpected states %q %q", a, b)
	}
}
