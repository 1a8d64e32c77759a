package gateways

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ochairo/pomscan/internal/domain/entities"
)

// maxResponseSize bounds how much of a search response is read
const maxResponseSize = 10 * 1024 * 1024

// ErrUnexpectedStatus is returned for non-200 search responses
var ErrUnexpectedStatus = errors.New("unexpected search response status")

// searchGateway queries a Nexus-style lucene search endpoint over HTTP
type searchGateway struct {
	apiURL     string
	httpClient *http.Client
}

// NewSearchGateway creates a new search gateway for the given endpoint
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewSearchGateway(apiURL string, timeout time.Duration) *searchGateway {
	if timeout <= 0 {
		timeout = entities.DefaultTimeout
	}
	return &searchGateway{
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SearchByChecksum looks up an artifact by SHA-1
func (g *searchGateway) SearchByChecksum(ctx context.Context, sha1 string) (*entities.Coordinate, error) {
	params := url.Values{}
	params.Set("sha1", sha1)
	return g.search(ctx, params)
}

// SearchByNameVersion looks up an artifact by artifactId and version
func (g *searchGateway) SearchByNameVersion(ctx context.Context, name, version string) (*entities.Coordinate, error) {
	params := url.Values{}
	params.Set("a", name)
	params.Set("v", version)
	return g.search(ctx, params)
}

func (g *searchGateway) search(ctx context.Context, params url.Values) (*entities.Coordinate, error) {
	reqURL, err := g.buildURL(params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}

	return ParseSearchResponse(body)
}

// buildURL appends params to the configured endpoint, keeping any query
// parameters already present on it
func (g *searchGateway) buildURL(params url.Values) (string, error) {
	u, err := url.Parse(g.apiURL)
	if err != nil {
		return "", fmt.Errorf("invalid search URL: %w", err)
	}
	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ParseSearchResponse extracts the first populated artifact from a search
// response. A blank body or an empty <data> element yields (nil, nil).
func ParseSearchResponse(body []byte) (*entities.Coordinate, error) {
	if strings.TrimSpace(string(body)) == "" {
		return nil, nil
	}

	var resp SearchResponse
	if err := xml.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	data := resp.Data
	if resp.XMLName.Local == "data" {
		// bare <data> document
		data = &SearchData{Artifacts: resp.Artifacts}
	}
	if data == nil {
		return nil, fmt.Errorf("failed to parse search response: no <data> element")
	}

	for _, a := range data.Artifacts {
		c := entities.Coordinate{
			GroupID:    strings.TrimSpace(a.GroupID),
			ArtifactID: strings.TrimSpace(a.ArtifactID),
			Version:    strings.TrimSpace(a.Version),
		}
		if !c.IsEmpty() {
			return &c, nil
		}
	}

	return nil, nil
}

// Search API response types

// SearchResponse is the root of a lucene search response. The root element
// name varies between index versions (searchNGResponse, search-results), so
// any root is accepted and only its <data> child is bound.
type SearchResponse struct {
	XMLName xml.Name
	Data    *SearchData `xml:"data"`

	// Artifacts is only set when the document root is <data> itself
	Artifacts []SearchArtifact `xml:"artifact"`
}

// SearchData holds the matched artifacts
type SearchData struct {
	Artifacts []SearchArtifact `xml:"artifact"`
}

// SearchArtifact is a single match in the index
type SearchArtifact struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}
