package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/AlexAkulov/reportfox"

	"github.com/google/go-github/github"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// Sender posts the rendered comment on a pull request. A hidden variant
// marker in the body lets re-runs update the existing comment instead of
// stacking duplicates.
type Sender struct {
	Token       string
	Owner       string
	Repo        string
	PullRequest int
	Log         zerolog.Logger

	client *github.Client
}

func (s *Sender) Start() error {
	if s.Owner == "" || s.Repo == "" {
		return fmt.Errorf("github sender needs owner and repo")
	}
	if s.PullRequest < 1 {
		return fmt.Errorf("github sender needs a pull request number")
	}
	s.client = github.NewClient(s.getTokenClient())
	return nil
}

func (s *Sender) Stop() error {
	return nil
}

func (s *Sender) Send(comment reportfox.Comment) error {
	marker := fmt.Sprintf("<!-- reportfox:%s -->", comment.Variant)
	ctx := context.Background()

	existing, err := s.findMarked(ctx, marker)
	if err != nil {
		return err
	}
	body := &github.IssueComment{Body: &comment.Markdown}
	if existing != nil {
		_, _, err = s.client.Issues.EditComment(ctx, s.Owner, s.Repo, *existing.ID, body)
		if err == nil {
			s.Log.Debug().Int64("comment", *existing.ID).Str("variant", comment.Variant).Msg("comment updated")
		}
		return err
	}
	_, _, err = s.client.Issues.CreateComment(ctx, s.Owner, s.Repo, s.PullRequest, body)
	if err == nil {
		s.Log.Debug().Str("variant", comment.Variant).Msg("comment created")
	}
	return err
}

func (s *Sender) findMarked(ctx context.Context, marker string) (*github.IssueComment, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		comments, resp, err := s.client.Issues.ListComments(ctx, s.Owner, s.Repo, s.PullRequest, opts)
		if err != nil {
			return nil, err
		}
		for _, c := range comments {
			if c.Body != nil && c.ID != nil && strings.Contains(*c.Body, marker) {
				return c, nil
			}
		}
		if resp.NextPage == 0 {
			return nil, nil
		}
		opts.Page = resp.NextPage
	}
}

func (s *Sender) getTokenClient() *http.Client {
	if s.Token == "" {
		return nil
	}
	return oauth2.NewClient(
		context.Background(),
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: s.Token}),
	)
}
