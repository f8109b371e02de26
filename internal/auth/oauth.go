// Package auth connects the Google account: a one-time browser flow stores a
// token, and later runs build HTTP clients from it without prompting.
package auth

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/tasks/v1"

	"taskdeck/internal/logger"
)

// ErrNotConnected means no token has been stored yet; run Connect first.
var ErrNotConnected = errors.New("google account not connected")

const authTimeout = 5 * time.Minute

var scopes = []string{
	tasks.TasksScope,
	calendar.CalendarReadonlyScope,
	gmail.GmailReadonlyScope,
}

func oauthConfig(credentialsPath string) (*oauth2.Config, error) {
	// #nosec G304 -- credentials path is user-configured
	creds, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	config, err := google.ConfigFromJSON(creds, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return config, nil
}

// Client returns an authorized HTTP client from the stored token. It never
// prompts; a missing token is ErrNotConnected. Refreshed tokens are written
// back to tokenPath.
func Client(ctx context.Context, credentialsPath, tokenPath string) (*http.Client, error) {
	config, err := oauthConfig(credentialsPath)
	if err != nil {
		return nil, err
	}
	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotConnected
		}
		return nil, fmt.Errorf("read token: %w", err)
	}
	src := &savingTokenSource{
		base: config.TokenSource(ctx, tok),
		path: tokenPath,
		last: tok.AccessToken,
	}
	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(tok, src)), nil
}

// savingTokenSource persists every token that differs from the last one seen.
type savingTokenSource struct {
	base oauth2.TokenSource
	path string

	mu   sync.Mutex
	last string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		s.last = tok.AccessToken
		if err := saveToken(s.path, tok); err != nil {
			logger.WithComponent("auth").Warn("token refresh not saved", "error", err)
		}
	}
	return tok, nil
}

// Connect runs the browser authorization flow, printing instructions to out,
// and stores the resulting token.
func Connect(ctx context.Context, credentialsPath, tokenPath string, out io.Writer) error {
	config, err := oauthConfig(credentialsPath)
	if err != nil {
		return err
	}
	tok, err := tokenFromWeb(ctx, config, out, os.Stdin)
	if err != nil {
		return err
	}
	if err := saveToken(tokenPath, tok); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	logger.WithComponent("auth").Info("google account connected", "token", tokenPath)
	return nil
}

// HasToken reports whether a token file is stored at tokenPath.
func HasToken(tokenPath string) bool {
	_, err := tokenFromFile(tokenPath)
	return err == nil
}

func newState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// tokenFromWeb receives the code on a loopback redirect. When no port can be
// opened it falls back to reading a pasted code from in.
func tokenFromWeb(ctx context.Context, config *oauth2.Config, out io.Writer, in io.Reader) (*oauth2.Token, error) {
	state, err := newState()
	if err != nil {
		return nil, err
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return tokenFromPaste(ctx, config, state, out, in)
	}
	cfg := *config
	cfg.RedirectURL = fmt.Sprintf("http://%s/callback", ln.Addr().String())

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)
	srv := &http.Server{
		ReadHeaderTimeout: 5 * time.Second,
		Handler:           callbackHandler(state, codeCh),
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	defer func() { _ = srv.Shutdown(context.Background()) }()

	printAuthURL(out, cfg.AuthCodeURL(state, oauth2.AccessTypeOffline))
	_, _ = fmt.Fprintln(out, "Waiting for authorization...")

	select {
	case code := <-codeCh:
		exchangeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		return cfg.Exchange(exchangeCtx, code)
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(authTimeout):
		return nil, fmt.Errorf("authorization timed out")
	}
}

func callbackHandler(state string, codeCh chan<- string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/callback" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "Invalid state", http.StatusBadRequest)
			return
		}
		if reason := q.Get("error"); reason != "" {
			http.Error(w, "Authorization denied: "+reason, http.StatusForbidden)
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "Missing code", http.StatusBadRequest)
			return
		}
		_, _ = fmt.Fprintln(w, "taskdeck is connected. You can close this tab and return to the terminal.")
		select {
		case codeCh <- code:
		default:
		}
	})
}

func printAuthURL(out io.Writer, authURL string) {
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "Authorize taskdeck in your browser:")
	_, _ = fmt.Fprintf(out, "  %s\n", clickableLink("Open authorization link", authURL))
	if os.Getenv("TASKDECK_SHOW_AUTH_URL") != "" {
		_, _ = fmt.Fprintf(out, "  URL: %s\n", authURL)
	} else {
		_, _ = fmt.Fprintln(out, "  (If it doesn't open, re-run with TASKDECK_SHOW_AUTH_URL=1)")
	}
}

func tokenFromPaste(ctx context.Context, config *oauth2.Config, state string, out io.Writer, in io.Reader) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL(state, oauth2.AccessTypeOffline)
	_, _ = fmt.Fprintf(out, "Open this URL in your browser and paste the authorization code:\n%v\n", authURL)
	line, err := bufio.NewReader(in).ReadString('\n')
	code := strings.TrimSpace(line)
	if code == "" {
		if err == nil {
			err = errors.New("empty code")
		}
		return nil, fmt.Errorf("read authorization code: %w", err)
	}
	return config.Exchange(ctx, code)
}

func clickableLink(text, url string) string {
	return fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", url, text)
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	// #nosec G304 -- token path is user-configured
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

// saveToken writes through a temp file so a crash never leaves half a token.
func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
