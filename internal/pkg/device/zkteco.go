package device

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ZKTeco terminals report a punch state code with every log. The push/pull
// gateway forwards them unchanged.
const (
	StateCheckIn  = 0
	StateCheckOut = 1
	StateBreakOut = 2
	StateBreakIn  = 3
	StateOTIn     = 4
	StateOTOut    = 5
)

// ZKTecoGateway pulls logs from an ADMS-style HTTP gateway in front of a
// ZKTeco terminal. The gateway owns the vendor wire protocol; this client
// only consumes its normalized JSON.
type ZKTecoGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewZKTecoGateway(baseURL, apiKey string) *ZKTecoGateway {
	return &ZKTecoGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// ID implements Connector.
func (g *ZKTecoGateway) ID() string {
	return g.baseURL
}

// FetchLogs implements Connector.
func (g *ZKTecoGateway) FetchLogs(ctx context.Context, since time.Time) ([]RawLog, error) {
	endpoint := fmt.Sprintf("%s/iclock/logs?since=%s", g.baseURL, url.QueryEscape(since.UTC().Format(time.RFC3339)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build gateway request: %w", err)
	}
	if g.apiKey != "" {
		req.Header.Set("X-API-Key", g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach device gateway %s: %w", g.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("device gateway %s returned status %d", g.baseURL, resp.StatusCode)
	}

	var payload struct {
		Logs []RawLog `json:"logs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}

	return payload.Logs, nil
}
