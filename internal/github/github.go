package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gitmeta/auto-topics/internal/models"
)

const (
	acceptJSON = "application/vnd.github+json"

	// The topics endpoints still require the mercy-preview media type.
	acceptTopics = "application/vnd.github.mercy-preview+json"
)

// Client is a thin wrapper around the GitHub REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListRepos returns the first page of repositories owned by the
// authenticated user, most recently updated first, up to 100 entries.
// Accounts with more repositories are silently truncated at one page.
func (c *Client) ListRepos(ctx context.Context) ([]models.Repo, error) {
	url := c.baseURL + "/user/repos?per_page=100&sort=updated"

	var nodes []struct {
		Name    string `json:"name"`
		Private bool   `json:"private"`
		Owner   struct {
			Login string `json:"login"`
		} `json:"owner"`
	}
	if err := c.getJSON(ctx, url, acceptJSON, &nodes); err != nil {
		return nil, fmt.Errorf("listing repositories: %w", err)
	}

	repos := make([]models.Repo, 0, len(nodes))
	for _, n := range nodes {
		repos = append(repos, models.Repo{
			Owner:    n.Owner.Login,
			Name:     n.Name,
			FullName: n.Owner.Login + "/" + n.Name,
			Private:  n.Private,
		})
	}
	return repos, nil
}

// GetReadme returns the repository's README text, or "" if the repository
// has none. The README endpoint resolves whichever filename variant exists
// and hands back a download URL for the raw content.
func (c *Client) GetReadme(ctx context.Context, owner, repo string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/readme", c.baseURL, owner, repo)

	resp, err := c.do(ctx, http.MethodGet, url, acceptJSON, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", nil
	}

	var meta struct {
		DownloadURL string `json:"download_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return "", fmt.Errorf("parsing readme metadata for %s/%s: %w", owner, repo, err)
	}
	if meta.DownloadURL == "" {
		return "", nil
	}
	return c.download(ctx, meta.DownloadURL)
}

// GetFileContent returns the decoded content of a file at path on the
// default branch, or "" if the file does not exist or is not delivered
// base64-encoded. Invalid UTF-8 sequences are replaced, not rejected.
func (c *Client) GetFileContent(ctx context.Context, owner, repo, path string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, owner, repo, path)

	resp, err := c.do(ctx, http.MethodGet, url, acceptJSON, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", nil
	}

	var file struct {
		Content  string `json:"content"`
		Encoding string `json:"encoding"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		return "", fmt.Errorf("parsing contents of %s in %s/%s: %w", path, owner, repo, err)
	}
	if file.Encoding != "base64" {
		return "", nil
	}

	// The API wraps base64 payloads at 60 columns.
	compact := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, file.Content)

	raw, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return "", fmt.Errorf("decoding %s in %s/%s: %w", path, owner, repo, err)
	}
	return strings.ToValidUTF8(string(raw), "�"), nil
}

// GetTopics returns the repository's current topics. A non-success
// response yields an empty list, not an error.
func (c *Client) GetTopics(ctx context.Context, owner, repo string) ([]string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/topics", c.baseURL, owner, repo)

	resp, err := c.do(ctx, http.MethodGet, url, acceptTopics, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var body struct {
		Names []string `json:"names"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("parsing topics for %s/%s: %w", owner, repo, err)
	}
	return body.Names, nil
}

// ReplaceTopics overwrites the repository's topic set. Topics not in the
// new list are lost.
func (c *Client) ReplaceTopics(ctx context.Context, owner, repo string, names []string) error {
	url := fmt.Sprintf("%s/repos/%s/%s/topics", c.baseURL, owner, repo)
	if names == nil {
		names = []string{}
	}
	return c.write(ctx, http.MethodPut, url, acceptTopics, map[string]any{"names": names})
}

// UpdateDescription overwrites the repository's description.
func (c *Client) UpdateDescription(ctx context.Context, owner, repo, description string) error {
	url := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, repo)
	return c.write(ctx, http.MethodPatch, url, acceptJSON, map[string]any{"description": description})
}

// --- internal ---

func (c *Client) do(ctx context.Context, method, url, accept string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", accept)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	return resp, nil
}

func (c *Client) getJSON(ctx context.Context, url, accept string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, url, accept, nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GitHub API returned %d: %s", resp.StatusCode, string(respBody))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

func (c *Client) write(ctx context.Context, method, url, accept string, payload any) error {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	resp, err := c.do(ctx, method, url, accept, bytes.NewReader(reqBody))
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GitHub API returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// download fetches raw content from a pre-signed URL. The URL embeds its
// own authorization, so no token header is sent.
func (c *Client) download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", nil
	}
	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	return string(text), nil
}
