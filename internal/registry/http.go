package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

const defaultTimeout = 30 * time.Second

// HTTPClient implements Client against the registry HTTP API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates a registry client for the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

type searchResponse struct {
	Results []SourceCandidate `json:"results"`
}

type versionsResponse struct {
	Versions []VersionInfo `json:"versions"`
}

// Search queries /search for every source hosting the named dependency.
func (c *HTTPClient) Search(ctx context.Context, query SearchQuery) ([]SourceCandidate, error) {
	q := url.Values{}
	q.Set("name", query.Name)
	if query.Ambient {
		q.Set("ambient", "true")
	}

	var resp searchResponse
	if err := c.getJSON(ctx, "search", query.Name, "/search?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Versions fetches the version index for name under source and reduces it
// to the entries matching constraint, best match first. The registry returns
// the full index; constraint matching and ordering happen here, making this
// client the negotiation-priority authority.
func (c *HTTPClient) Versions(ctx context.Context, source, name, constraint string) ([]VersionInfo, error) {
	path := fmt.Sprintf("/entries/%s/%s/versions", url.PathEscape(source), url.PathEscape(name))

	var resp versionsResponse
	if err := c.getJSON(ctx, "versions", name, path, &resp); err != nil {
		return nil, err
	}

	matched, err := matchVersions(resp.Versions, constraint)
	if err != nil {
		return nil, &RegistryError{Op: "versions", Err: err}
	}
	if len(matched) == 0 {
		return nil, &NotFoundError{Name: name}
	}
	return matched, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, op, name, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &RegistryError{Op: op, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "declget")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RegistryError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &NotFoundError{Name: name}
	}
	if resp.StatusCode != http.StatusOK {
		return &RegistryError{Op: op, Err: fmt.Errorf("registry returned status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RegistryError{Op: op, Err: fmt.Errorf("reading response body: %w", err)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &RegistryError{Op: op, Err: fmt.Errorf("parsing response JSON: %w", err)}
	}
	return nil
}

// matchVersions filters the index against constraint and sorts the result
// newest first. An empty constraint matches everything. Entries whose
// version string does not parse as semver are kept only when unconstrained,
// after all parseable versions.
func matchVersions(index []VersionInfo, constraint string) ([]VersionInfo, error) {
	var cons *semver.Constraints
	if constraint != "" {
		c, err := semver.NewConstraint(constraint)
		if err != nil {
			return nil, fmt.Errorf("parsing version constraint %q: %w", constraint, err)
		}
		cons = c
	}

	type entry struct {
		info   VersionInfo
		parsed *semver.Version
	}

	var matched []entry
	var unparseable []VersionInfo
	for _, info := range index {
		v, err := semver.NewVersion(strings.TrimPrefix(info.Version, "v"))
		if err != nil {
			if cons == nil {
				unparseable = append(unparseable, info)
			}
			continue
		}
		if cons != nil && !cons.Check(v) {
			continue
		}
		matched = append(matched, entry{info: info, parsed: v})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].parsed.GreaterThan(matched[j].parsed)
	})

	result := make([]VersionInfo, 0, len(matched)+len(unparseable))
	for _, e := range matched {
		result = append(result, e.info)
	}
	result = append(result, unparseable...)
	return result, nil
}
