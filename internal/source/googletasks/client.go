// Package googletasks implements source.Source by reading open tasks from
// the Google Tasks API.
package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"taskdump/internal/config"
	"taskdump/internal/source"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// PageSize is the number of items requested per API page.
	PageSize = 100

	// APITimeout bounds each API operation.
	APITimeout = 5 * time.Second

	// Scope is the OAuth scope needed to read tasks.
	Scope = tasks.TasksReadonlyScope
)

// ErrTimeout is returned when an API call exceeds APITimeout.
var ErrTimeout = errors.New("request timed out")

// Client reads task titles from one Google Tasks list.
type Client struct {
	svc      *tasks.Service
	listName string
	timeout  time.Duration
	log      zerolog.Logger
}

// OAuthConfig loads the OAuth client credentials from cfg.
func OAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", config.OAuthClientFile, err)
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.OAuthClientFile, err)
	}
	return oauthConfig, nil
}

// LoadToken reads the stored OAuth token from cfg.
func LoadToken(cfg *config.Config) (*oauth2.Token, error) {
	data, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", config.TokenFile, err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.TokenFile, err)
	}
	return &token, nil
}

// SaveToken writes token to cfg's token file with mode 0600.
func SaveToken(cfg *config.Config, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cfg.TokenPath(), data, 0600)
}

// New creates a client from the credentials stored in cfg.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := LoadToken(cfg)
	if err != nil {
		return nil, err
	}

	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))
	return NewWithHTTPClient(ctx, httpClient)
}

// NewWithHTTPClient creates a client with a custom HTTP client.
// Extra options (such as option.WithEndpoint) are passed to the API service.
// Debug logs go to the logger attached to ctx, if any.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc, timeout: APITimeout, log: *zerolog.Ctx(ctx)}, nil
}

// WithList returns a copy of c that reads the named list.
// An empty name selects the default list.
func (c *Client) WithList(name string) *Client {
	cp := *c
	cp.listName = strings.TrimSpace(name)
	return &cp
}

// List implements source.Provider.
func (c *Client) List(name string) source.Source {
	return c.WithList(name)
}

// Items implements source.Source. Titles of open tasks are returned in API order.
func (c *Client) Items(ctx context.Context) ([]string, error) {
	listID := DefaultListID
	if c.listName != "" {
		id, err := c.resolveList(ctx, c.listName)
		if err != nil {
			return nil, err
		}
		listID = id
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.log.Debug().Str("list_id", listID).Msg("fetching open tasks")

	titles := []string{}
	err := c.svc.Tasks.List(listID).
		MaxResults(PageSize).
		ShowCompleted(false).
		ShowDeleted(false).
		ShowHidden(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, t := range resp.Items {
				titles = append(titles, t.Title)
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}

	c.log.Debug().Str("list_id", listID).Int("count", len(titles)).Msg("fetched open tasks")
	return titles, nil
}

// resolveList finds a list ID by title (case-insensitive, trimmed).
func (c *Client) resolveList(ctx context.Context, name string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	nameLower := strings.ToLower(name)

	var matches []string
	err := c.svc.Tasklists.List().MaxResults(PageSize).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, list := range resp.Items {
			if strings.ToLower(strings.TrimSpace(list.Title)) == nameLower {
				matches = append(matches, list.Id)
			}
		}
		return nil
	})
	if err != nil {
		return "", wrapError(err)
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", source.ErrNotFound, name)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s", source.ErrAmbiguous, name)
	}
}

// wrapError maps API failures onto the source sentinel errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return source.ErrAuth
		case http.StatusNotFound:
			return source.ErrNotFound
		}
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return source.ErrAuth
	}
	return err
}
