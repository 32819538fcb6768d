package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/folio/portfolio/internal/domain/entities"
	"github.com/folio/portfolio/internal/infrastructure/config"
	"github.com/folio/portfolio/internal/infrastructure/logger"
)

const (
	acceptHeader = "application/vnd.github+json"
	apiVersion   = "2022-11-28"
	userAgent    = "portfolio-api"
	maxBodyBytes = 5 << 20
)

// showcaseNames are probed in order; the first one that exists wins.
var showcaseNames = []string{
	"showcaseimage.jpg",
	"showcaseimage.png",
	"showcaseimage.jpeg",
	"showcase.jpg",
	"showcase.png",
	"showcase.jpeg",
}

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,38})$`)
	repoPattern     = regexp.MustCompile(`^[A-Za-z0-9._-]{1,100}$`)
)

// ErrInvalidUsername is returned for names GitHub would never accept.
var ErrInvalidUsername = errors.New("invalid GitHub username")

// APIError is a non-2xx answer from GitHub.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("github returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("github returned status %d", e.StatusCode)
}

// Observer receives the outcome of every GitHub call.
type Observer interface {
	ObserveGitHub(op string, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveGitHub(string, error) {}

// Client talks to the GitHub REST API and raw content host.
type Client struct {
	apiURL       string
	rawURL       string
	token        string
	branch       string
	probeTimeout time.Duration

	http     *http.Client
	limiter  *rate.Limiter
	logger   *logger.Logger
	observer Observer
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithObserver reports every call to o.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.observer = o
		}
	}
}

// NewClient creates a client from configuration.
func NewClient(cfg config.GitHubConfig, appLogger *logger.Logger, opts ...Option) *Client {
	limit := rate.Inf
	if cfg.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.RequestsPerSec)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	branch := cfg.DefaultBranch
	if branch == "" {
		branch = "main"
	}

	probeTimeout := cfg.ProbeTimeout
	if probeTimeout <= 0 {
		probeTimeout = 5 * time.Second
	}

	c := &Client{
		apiURL:       strings.TrimRight(cfg.APIURL, "/"),
		rawURL:       strings.TrimRight(cfg.RawURL, "/"),
		token:        cfg.Token,
		branch:       branch,
		probeTimeout: probeTimeout,
		http:         &http.Client{Timeout: cfg.Timeout},
		limiter:      rate.NewLimiter(limit, burst),
		logger:       appLogger.WithComponent("github_client"),
		observer:     nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ValidUsername reports whether name is a syntactically valid GitHub login.
func ValidUsername(name string) bool {
	return usernamePattern.MatchString(name)
}

// ListUserRepos returns the public repositories of username, most recently
// updated first.
func (c *Client) ListUserRepos(ctx context.Context, username string) (repos []entities.GitHubRepo, err error) {
	defer func() { c.observer.ObserveGitHub("list_repos", err) }()

	if !ValidUsername(username) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidUsername, username)
	}

	endpoint := fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=100", c.apiURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, readAPIError(resp)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&repos); err != nil {
		return nil, fmt.Errorf("decoding repositories: %w", err)
	}
	if repos == nil {
		repos = []entities.GitHubRepo{}
	}
	return repos, nil
}

// FindShowcaseImage probes the repository's default branch for a showcase
// image. Finding nothing is not an error.
func (c *Client) FindShowcaseImage(ctx context.Context, owner, repo string) (result entities.ShowcaseImage, err error) {
	defer func() { c.observer.ObserveGitHub("find_showcase_image", err) }()

	if !ValidUsername(owner) || !repoPattern.MatchString(repo) {
		return result, fmt.Errorf("%w: %s/%s", ErrInvalidUsername, owner, repo)
	}

	for _, name := range showcaseNames {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		imageURL := fmt.Sprintf("%s/%s/%s/%s/%s", c.rawURL, owner, repo, c.branch, name)
		found, err := c.probe(ctx, imageURL)
		if err != nil {
			c.logger.Debugw("Showcase probe failed", "url", imageURL, "error", err)
			continue
		}
		if found {
			format := strings.TrimPrefix(path.Ext(name), ".")
			c.logger.Debugw("Found showcase image", "owner", owner, "repo", repo, "image", name)
			return entities.ShowcaseImage{URL: &imageURL, Format: &format}, nil
		}
	}

	return result, nil
}

func (c *Client) probe(ctx context.Context, imageURL string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, imageURL, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.do(ctx, req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode <= 299, nil
}

func (c *Client) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", req.URL.Redacted(), err)
	}
	return resp, nil
}

func readAPIError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(data, &body)

	return &APIError{StatusCode: resp.StatusCode, Message: body.Message}
}

// ParseRepoURL extracts owner and repository name from a github.com URL
// such as https://github.com/owner/repo.
func ParseRepoURL(raw string) (owner, repo string, err error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", fmt.Errorf("parsing repository url: %w", err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository url %q has no owner/name", raw)
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}
