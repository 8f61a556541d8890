/*
Package lookup resolves GitHub usernames into profile lookup payloads through the GitHub REST API.
Requests are unauthenticated and are not retried.
*/
package lookup

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/go-github/v39/github"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"ghprofile/internal/app/profile"
	"ghprofile/internal/pkg/logx"
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com/"

// usernameRegex matches names GitHub accepts for accounts: alphanumerics and single hyphens, at most 39 characters.
var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9]|-[A-Za-z0-9]){0,38}$`)

// Client implements profile.Lookup against the GitHub users endpoint.
type Client struct {
	gh     *github.Client
	logger zerolog.Logger
}

// NewClient creates a Client for the API at baseURL using httpClient.
// An empty baseURL selects DefaultBaseURL; a nil httpClient selects http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "parse GitHub API URL %q", baseURL)
	}

	gh := github.NewClient(httpClient)
	gh.BaseURL = u

	return &Client{
		gh:     gh,
		logger: logx.Component("GitHubLookup").With().Str("base_url", u.String()).Logger(),
	}, nil
}

// Lookup fetches the public profile of username.
//
// Errors: profile.ErrEmptyUsername for a blank name, profile.ErrUserNotFound for a 404 or a name
// GitHub cannot hold, profile.ErrMalformedPayload when the response lacks a login, and
// profile.ErrLookupFailed for every other failure.
func (c *Client) Lookup(ctx context.Context, username string) (profile.Payload, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return profile.Payload{}, profile.ErrEmptyUsername
	}
	if !usernameRegex.MatchString(username) {
		return profile.Payload{}, errors.Wrapf(profile.ErrUserNotFound, "invalid GitHub username %q", username)
	}

	user, resp, err := c.gh.Users.Get(ctx, username)
	if err != nil {
		return profile.Payload{}, c.classify(username, resp, err)
	}

	if user.GetLogin() == "" {
		c.logger.Warn().Str("username", username).Msg("GitHub response has no login.")
		return profile.Payload{}, errors.Wrapf(profile.ErrMalformedPayload, "user %q: response without login", username)
	}

	c.logger.Debug().
		Str("username", username).
		Int("rate_remaining", rateRemaining(resp)).
		Msg("GitHub user resolved.")

	return profile.Payload{
		Name:      user.GetName(),
		AvatarURL: user.GetAvatarURL(),
		HTMLURL:   user.GetHTMLURL(),
		Login:     user.GetLogin(),
	}, nil
}

// classify maps a go-github error onto the profile lookup errors.
func (c *Client) classify(username string, resp *github.Response, err error) error {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return errors.Wrapf(profile.ErrUserNotFound, "user %q", username)
	}

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		c.logger.Warn().Time("reset", rateErr.Rate.Reset.Time).Msg("GitHub rate limit exhausted.")
	} else {
		c.logger.Warn().Err(err).Int("status", status).Str("username", username).Msg("GitHub user request failed.")
	}

	return errors.Wrapf(profile.ErrLookupFailed, "user %q (status %d): %v", username, status, err)
}

func rateRemaining(resp *github.Response) int {
	if resp == nil {
		return -1
	}
	return resp.Rate.Remaining
}
