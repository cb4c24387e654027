package tours

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tournotify/internal/domain"
)

// The tours API sits behind a bot filter that rejects default Go
// user agents.
const browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Availability is the parsed verdict from one upstream query.
type Availability struct {
	Available bool   `json:"available"`
	Dates     int    `json:"dates"`
	Message   string `json:"message"`
}

// Source is implemented by anything that can answer "are there bookable
// slots right now".
type Source interface {
	Check(ctx context.Context) (Availability, error)
}

type Client struct {
	URL        string
	CategoryID string
	GroupSize  string
	Client     *http.Client
}

func NewClient(url, categoryID, groupSize string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		URL:        url,
		CategoryID: categoryID,
		GroupSize:  groupSize,
		Client:     &http.Client{Timeout: timeout},
	}
}

type searchRequest struct {
	CategoryID           string  `json:"category_id"`
	GroupSize            string  `json:"group_size"`
	PendingReservationID *string `json:"pendingReservationId"`
}

type searchResponse struct {
	PublicTours []json.RawMessage `json:"public_tours"`
}

// Check queries the tours search endpoint. Any transport error, non-2xx
// status, or undecodable body is reported as an upstream error.
func (c *Client) Check(ctx context.Context) (Availability, error) {
	body, _ := json.Marshal(searchRequest{
		CategoryID: c.CategoryID,
		GroupSize:  c.GroupSize,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return Availability{}, fmt.Errorf("%w: build request: %v", domain.ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", browserUA)

	resp, err := c.Client.Do(req)
	if err != nil {
		return Availability{}, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return Availability{}, fmt.Errorf("%w: status %s", domain.ErrUpstream, resp.Status)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return Availability{}, fmt.Errorf("%w: decode: %v", domain.ErrUpstream, err)
	}

	n := len(sr.PublicTours)
	if n == 0 {
		return Availability{Message: "no tours available"}, nil
	}
	return Availability{
		Available: true,
		Dates:     n,
		Message:   fmt.Sprintf("%d tour date(s) available", n),
	}, nil
}
