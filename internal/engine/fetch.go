package engine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// fetch reads the declaration content behind a direct location: a local
// path, a file: reference, an http(s) URL, or a github:/bitbucket: VCS
// shorthand rewritten to the host's raw-content endpoint.
func (e *Engine) fetch(ctx context.Context, location, cwd string) ([]byte, error) {
	switch {
	case strings.HasPrefix(location, "file:"):
		return readLocal(strings.TrimPrefix(location, "file:"), cwd)

	case strings.HasPrefix(location, "http:"), strings.HasPrefix(location, "https:"):
		return e.download(ctx, location)

	case strings.HasPrefix(location, "github:"):
		url, err := rawURL("https://raw.githubusercontent.com", strings.TrimPrefix(location, "github:"))
		if err != nil {
			return nil, err
		}
		return e.download(ctx, url)

	case strings.HasPrefix(location, "bitbucket:"):
		url, err := rawURL("https://bitbucket.org", strings.TrimPrefix(location, "bitbucket:"))
		if err != nil {
			return nil, err
		}
		return e.download(ctx, url)

	case strings.HasPrefix(location, "/"), strings.HasPrefix(location, "./"),
		strings.HasPrefix(location, "../"), strings.HasPrefix(location, "~/"):
		return readLocal(location, cwd)

	default:
		return nil, fmt.Errorf("unsupported location %q", location)
	}
}

func readLocal(path, cwd string) ([]byte, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, path[2:])
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	return os.ReadFile(path)
}

func (e *Engine) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "declget")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// rawURL rewrites "org/repo/path/file.d.ts#ref" to the raw-content URL on
// base, defaulting ref to "master".
func rawURL(base, rest string) (string, error) {
	ref := "master"
	if idx := strings.LastIndex(rest, "#"); idx >= 0 {
		ref = rest[idx+1:]
		rest = rest[:idx]
	}

	parts := strings.SplitN(rest, "/", 3)
	if len(parts) < 3 {
		return "", fmt.Errorf("location %q needs the form org/repo/path", rest)
	}

	if strings.Contains(base, "bitbucket") {
		return fmt.Sprintf("%s/%s/%s/raw/%s/%s", base, parts[0], parts[1], ref, parts[2]), nil
	}
	return fmt.Sprintf("%s/%s/%s/%s/%s", base, parts[0], parts[1], ref, parts[2]), nil
}
