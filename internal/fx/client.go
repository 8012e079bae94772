package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const DefaultBaseURL = "https://dolarapi.com"

// Quote is the wire shape returned by the rate source for one source
// key ("oficial", "blue", ...).
type Quote struct {
	Source       string  `json:"casa"`
	Buy          float64 `json:"compra"`
	Sell         float64 `json:"venta"`
	UpdatedLabel string  `json:"fechaActualizacion"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchQuote performs one GET against the rate source for the given
// source key. Non-2xx responses, malformed bodies and non-positive or
// non-finite rates are all reported as errors.
func (c *Client) FetchQuote(ctx context.Context, source string) (Quote, error) {
	endpoint := fmt.Sprintf("%s/v1/dolares/%s", c.baseURL, url.PathEscape(source))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to build rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to reach rate source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Quote{}, fmt.Errorf("rate source returned status %d for source '%s'", resp.StatusCode, source)
	}

	var quote Quote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return Quote{}, fmt.Errorf("failed to decode rate response: %w", err)
	}

	if !validRate(quote.Buy) || !validRate(quote.Sell) {
		return Quote{}, fmt.Errorf("rate source returned unusable rates for source '%s': buy=%v sell=%v", source, quote.Buy, quote.Sell)
	}

	if quote.Source == "" {
		quote.Source = source
	}
	return quote, nil
}
