package crack

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch requests the top-liked characters for one genre code. One bounded
// GET, no retries; an empty character list is a valid result, not an error.
func (c *Client) Fetch(genreCode string, limit int) ([]RawCharacter, error) {
	params := url.Values{}
	params.Set("sort", "likeCount.desc")
	params.Set("genreId", genreCode)
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/character/characters?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("crack request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("crack fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("crack fetch: unexpected status %d", resp.StatusCode)
	}

	var raw crackResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("crack decode: %w", err)
	}

	return raw.Data.Characters, nil
}

type crackResponse struct {
	Data crackData `json:"data"`
}

type crackData struct {
	Characters []RawCharacter `json:"characters"`
}
