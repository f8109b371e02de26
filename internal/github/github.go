// Package github fetches pull requests through the gh CLI, which owns the
// user's GitHub credentials.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"taskdeck/internal/logger"
)

// ErrNotInstalled means the gh binary is not on PATH.
var ErrNotInstalled = errors.New("gh CLI not installed")

const searchFields = "number,title,body,url,author,repository,isDraft,updatedAt"

// Executor runs a command and returns its stdout.
type Executor interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// OSExecutor runs real processes.
type OSExecutor struct{}

func (OSExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	if _, err := exec.LookPath(name); err != nil {
		return nil, ErrNotInstalled
	}
	// #nosec G204 -- arguments come from the user's own config
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
		}
		return nil, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return out, nil
}

type PullRequest struct {
	Number     int        `json:"number"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	URL        string     `json:"url"`
	IsDraft    bool       `json:"isDraft"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	Author     Author     `json:"author"`
	Repository Repository `json:"repository"`
}

type Author struct {
	Login string `json:"login"`
}

type Repository struct {
	Name          string `json:"name"`
	NameWithOwner string `json:"nameWithOwner"`
}

// Key identifies a pull request across repositories.
func (pr PullRequest) Key() string {
	return pr.Repository.NameWithOwner + "#" + strconv.Itoa(pr.Number)
}

type Client struct {
	exec  Executor
	limit int
}

func New(exec Executor, limit int) *Client {
	if limit <= 0 {
		limit = 30
	}
	return &Client{exec: exec, limit: limit}
}

// SearchPullRequests runs `gh search prs` with the qualifiers in query, for
// example "is:open review-requested:@me".
func (c *Client) SearchPullRequests(ctx context.Context, query string) ([]PullRequest, error) {
	args := []string{"search", "prs"}
	args = append(args, strings.Fields(query)...)
	args = append(args, "--json", searchFields, "--limit", strconv.Itoa(c.limit))
	out, err := c.exec.Output(ctx, "gh", args...)
	if err != nil {
		return nil, fmt.Errorf("gh search prs failed: %w", err)
	}
	var prs []PullRequest
	if err := json.Unmarshal(out, &prs); err != nil {
		return nil, fmt.Errorf("failed to parse pull requests: %w", err)
	}
	logger.WithComponent("github").Debug("searched pull requests", "query", query, "count", len(prs))
	return prs, nil
}

// CurrentUser returns the login gh is authenticated as.
func (c *Client) CurrentUser(ctx context.Context) (string, error) {
	out, err := c.exec.Output(ctx, "gh", "api", "user", "--jq", ".login")
	if err != nil {
		return "", err
	}
	login := strings.TrimSpace(string(out))
	if login == "" {
		return "", fmt.Errorf("gh returned no login")
	}
	return login, nil
}
