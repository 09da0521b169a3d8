package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"contacts/internal/domain"
)

// HGBrasilClient reads current buy rates from the HG Brasil finance API.
// Rates are quoted against BRL.
type HGBrasilClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

type apiResponse struct {
	Results struct {
		Currencies map[string]json.RawMessage `json:"currencies"`
	} `json:"results"`
}

type currencyQuote struct {
	Buy *float64 `json:"buy"`
}

func (c *HGBrasilClient) GetBuyRates(ctx context.Context) (map[string]float64, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse base URL: %w", domain.ErrRateProvider, err)
	}
	q := u.Query()
	q.Set("format", "json-cors")
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", domain.ErrRateProvider, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %w", domain.ErrRateProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", domain.ErrRateProvider, resp.StatusCode, resp.Status)
	}

	var body apiResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", domain.ErrRateProvider, err)
	}

	// "currencies" mixes quote objects with plain fields like "source": "BRL"
	rates := make(map[string]float64, len(body.Results.Currencies))
	for code, raw := range body.Results.Currencies {
		if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
			continue
		}
		var cq currencyQuote
		if err = json.Unmarshal(raw, &cq); err != nil {
			return nil, fmt.Errorf("%w: failed to decode quote for currency %q: %w", domain.ErrRateProvider, code, err)
		}
		if cq.Buy == nil {
			continue
		}
		rates[code] = *cq.Buy
	}

	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: response contains no buy rates", domain.ErrRateProvider)
	}
	return rates, nil
}

func NewHGBrasilClient(httpClient *http.Client, baseURL string, apiKey string) *HGBrasilClient {
	return &HGBrasilClient{http: httpClient, baseURL: baseURL, apiKey: apiKey}
}
