package source

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"taskdeck/internal/github"
	"taskdeck/internal/overview"
)

type PullRequestSearcher interface {
	SearchPullRequests(ctx context.Context, query string) ([]github.PullRequest, error)
}

// PullRequestQuery is one named search.
type PullRequestQuery struct {
	Name   string
	Search string
}

// PullRequests shows one list per configured search.
type PullRequests struct {
	searcher PullRequestSearcher
	queries  []PullRequestQuery
}

func NewPullRequests(searcher PullRequestSearcher, queries []PullRequestQuery) *PullRequests {
	return &PullRequests{searcher: searcher, queries: queries}
}

func (s *PullRequests) Name() string { return "GitHub" }

func (s *PullRequests) Lists(ctx context.Context) ([]overview.List, error) {
	out := make([]overview.List, 0, len(s.queries))
	for _, q := range s.queries {
		prs, err := s.searcher.SearchPullRequests(ctx, q.Search)
		if err != nil {
			return nil, err
		}
		items := make([]overview.Item, 0, len(prs))
		for _, pr := range prs {
			items = append(items, overview.PullRequestItem(overview.PullRequest{
				ID:         pr.Key(),
				Number:     pr.Number,
				Repository: pr.Repository.NameWithOwner,
				Title:      pr.Title,
				Body:       pr.Body,
				Author:     pr.Author.Login,
				URL:        pr.URL,
				IsDraft:    pr.IsDraft,
				UpdatedAt:  pr.UpdatedAt,
			}))
		}
		out = append(out, overview.List{
			ID:    GitHubListID(q.Name),
			Name:  q.Name,
			Type:  overview.ListTypeGitHub,
			Items: items,
		})
	}
	return out, nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// GitHubListID derives a stable list id from a query name.
func GitHubListID(name string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if slug == "" {
		slug = strconv.Itoa(len(name))
	}
	return "github:" + slug
}
