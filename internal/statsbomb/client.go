// Package statsbomb provides a minimal client for the StatsBomb open-data
// repository.
package statsbomb

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// defaultBaseURL is the raw-content root of the statsbomb/open-data repo.
const defaultBaseURL = "https://raw.githubusercontent.com/statsbomb/open-data/master/data"

// Client fetches match indexes and per-match event documents.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns an open-data client against the public repository.
func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithBaseURL returns a client against an alternate root (tests).
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

// Match holds the fields we need from a season's matches index.
type Match struct {
	MatchID int64 `json:"match_id"`
}

// ListMatches returns the match index for one competition season.
func (c *Client) ListMatches(competitionID, seasonID int) ([]Match, error) {
	data, err := c.get(fmt.Sprintf("/matches/%d/%d.json", competitionID, seasonID))
	if err != nil {
		return nil, err
	}
	var matches []Match
	if err := json.Unmarshal(data, &matches); err != nil {
		return nil, fmt.Errorf("parse matches index: %w", err)
	}
	return matches, nil
}

// GetEvents returns the raw event document for one match, unparsed: the
// bronze layer stores vendor documents byte-for-byte.
func (c *Client) GetEvents(matchID int64) ([]byte, error) {
	return c.get(fmt.Sprintf("/events/%d.json", matchID))
}

func (c *Client) get(path string) ([]byte, error) {
	url := c.baseURL + path
	resp, err := c.http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: HTTP %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
