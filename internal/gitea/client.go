// Package gitea reads the Translation Academy corpus from a Gitea
// repository through the contents API, or from a local checkout.
package gitea

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when the requested file does not exist in the
// repository. Some articles legitimately lack a sub-title.md; callers
// treat this error as "empty".
var ErrNotFound = errors.New("file not found")

// Client fetches corpus files. Contents are cached in memory for the
// lifetime of the client: a migration run reads the same toc.yaml and
// title files repeatedly.
type Client struct {
	fetch func(ctx context.Context, path string) (string, error)
	cache map[string]string
}

// contentsResponse is the Gitea contents API envelope. File bodies come
// back base64-encoded.
type contentsResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// NewClient returns a client reading owner/repo at ref through the Gitea
// API rooted at baseURL. An empty token disables authentication.
func NewClient(baseURL, token, owner, repo, ref string) *Client {
	rest := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json")
	if token != "" {
		rest.SetHeader("Authorization", "token "+token)
	}

	prefix := fmt.Sprintf("/api/v1/repos/%s/%s/contents", owner, repo)
	return &Client{
		cache: make(map[string]string),
		fetch: func(ctx context.Context, path string) (string, error) {
			var envelope contentsResponse
			resp, err := rest.R().
				SetContext(ctx).
				SetQueryParam("ref", ref).
				SetResult(&envelope).
				Get(prefix + "/" + path)
			if err != nil {
				return "", fmt.Errorf("gitea: get %q: %w", path, err)
			}
			if resp.StatusCode() == http.StatusNotFound {
				return "", fmt.Errorf("gitea: %q: %w", path, ErrNotFound)
			}
			if resp.IsError() {
				return "", fmt.Errorf("gitea: get %q: %s", path, resp.Status())
			}
			if envelope.Encoding != "base64" {
				return envelope.Content, nil
			}
			decoded, err := base64.StdEncoding.DecodeString(envelope.Content)
			if err != nil {
				return "", fmt.Errorf("gitea: decode %q: %w", path, err)
			}
			return string(decoded), nil
		},
	}
}

// NewLocalClient returns a client reading the same corpus layout from a
// checkout on disk, for offline runs.
func NewLocalClient(root string) *Client {
	return &Client{
		cache: make(map[string]string),
		fetch: func(_ context.Context, path string) (string, error) {
			raw, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(path)))
			if errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("gitea: %q: %w", path, ErrNotFound)
			}
			if err != nil {
				return "", fmt.Errorf("gitea: read %q: %w", path, err)
			}
			return string(raw), nil
		},
	}
}

// FileContent returns the decoded content of a repository file.
func (c *Client) FileContent(ctx context.Context, path string) (string, error) {
	if content, ok := c.cache[path]; ok {
		return content, nil
	}
	content, err := c.fetch(ctx, path)
	if err != nil {
		return "", err
	}
	c.cache[path] = content
	return content, nil
}

// ArticleContent returns the markdown body of an article.
func (c *Client) ArticleContent(ctx context.Context, manual, articleID string) (string, error) {
	return c.FileContent(ctx, fmt.Sprintf("%s/%s/01.md", manual, articleID))
}

// ArticleTitle returns the article title, falling back to the article ID
// when title.md is missing.
func (c *Client) ArticleTitle(ctx context.Context, manual, articleID string) (string, error) {
	title, err := c.FileContent(ctx, fmt.Sprintf("%s/%s/title.md", manual, articleID))
	if errors.Is(err, ErrNotFound) {
		return articleID, nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(title), nil
}

// ArticleSubtitle returns the article subtitle question, or an empty
// string when the article has none.
func (c *Client) ArticleSubtitle(ctx context.Context, manual, articleID string) (string, error) {
	subtitle, err := c.FileContent(ctx, fmt.Sprintf("%s/%s/sub-title.md", manual, articleID))
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(subtitle), nil
}

// ManualTOC returns the parsed toc.yaml of a manual.
func (c *Client) ManualTOC(ctx context.Context, manual string) (*TOC, error) {
	raw, err := c.FileContent(ctx, manual+"/toc.yaml")
	if err != nil {
		return nil, err
	}
	var toc TOC
	if err := yaml.Unmarshal([]byte(raw), &toc); err != nil {
		return nil, fmt.Errorf("gitea: parse %s/toc.yaml: %w", manual, err)
	}
	return &toc, nil
}

// ManualArticleConfig returns the parsed config.yaml of a manual.
func (c *Client) ManualArticleConfig(ctx context.Context, manual string) (ManualConfig, error) {
	raw, err := c.FileContent(ctx, manual+"/config.yaml")
	if err != nil {
		return nil, err
	}
	var config ManualConfig
	if err := yaml.Unmarshal([]byte(raw), &config); err != nil {
		return nil, fmt.Errorf("gitea: parse %s/config.yaml: %w", manual, err)
	}
	return config, nil
}
