package sheets

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Client reads the portal's source range from a Google Sheets spreadsheet.
// It holds no row state of its own; callers own caching.
type Client struct {
	service       *sheetsapi.Service
	spreadsheetID string
	readRange     string
	limiter       *rate.Limiter
}

// Config identifies the spreadsheet and the values range to mirror.
type Config struct {
	APIKey        string
	SpreadsheetID string
	ReadRange     string
	// RequestsPerSecond and BurstSize bound calls against the Sheets API.
	// Zero values fall back to conservative defaults well under quota.
	RequestsPerSecond float64
	BurstSize         int
}

// New builds a Sheets client authenticated by API key.
func New(ctx context.Context, cfg Config) (*Client, error) {
	service, err := sheetsapi.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1.0
	}
	burst := cfg.BurstSize
	if burst <= 0 {
		burst = 2
	}
	return &Client{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		readRange:     cfg.ReadRange,
		limiter:       rate.NewLimiter(rate.Limit(rps), burst),
	}, nil
}

// Fetch reads the configured range and returns the header row plus data
// rows as strings. A sheet with no rows at all yields empty results, not an
// error; the caller decides what an empty fetch means.
func (c *Client) Fetch(ctx context.Context) (headers []string, rows [][]string, err error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, nil, err
	}

	values, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, c.readRange).Context(ctx).Do()
	if err != nil {
		return nil, nil, mapAPIError(err)
	}
	if len(values.Values) == 0 {
		return nil, nil, nil
	}

	headers = cellsToStrings(values.Values[0])
	rows = make([][]string, 0, len(values.Values)-1)
	for _, raw := range values.Values[1:] {
		rows = append(rows, cellsToStrings(raw))
	}
	return headers, rows, nil
}

// cellsToStrings coerces a row of sheet cells to strings. The values API
// returns numbers and booleans for unformatted cells; everything becomes the
// string the portal stores.
func cellsToStrings(cells []interface{}) []string {
	out := make([]string, len(cells))
	for i, cell := range cells {
		switch v := cell.(type) {
		case string:
			out[i] = v
		case float64:
			out[i] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			out[i] = strconv.FormatBool(v)
		case nil:
			out[i] = ""
		default:
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}
