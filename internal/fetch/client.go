// Package fetch implements the EIA petroleum price client. It issues a
// single GET against the petroleum price endpoint, parses the response
// envelope, and returns the raw rows as received.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	pipeerrors "fuelflow/internal/errors"
)

// ColumnOrder is the canonical order of the columns the EIA petroleum
// price endpoint returns per row. Raw artifacts preserve this order.
var ColumnOrder = []string{
	"period",
	"duoarea",
	"area-name",
	"product",
	"product-name",
	"process",
	"process-name",
	"series",
	"series-description",
	"value",
	"units",
}

// Record is one raw observation row exactly as received from the API.
// Values are either strings or numbers depending on the field.
type Record map[string]any

// Params holds the query parameters for one fetch.
type Params struct {
	APIKey    string
	Products  []string
	Regions   []string
	Process   string
	StartYear int
	EndYear   int
	PageSize  int
}

// envelope mirrors the EIA v2 response wrapper.
type envelope struct {
	Response struct {
		Data  []Record    `json:"data"`
		Total json.Number `json:"total"`
	} `json:"response"`
}

// Client fetches petroleum price data from the EIA API.
type Client struct {
	http    *resty.Client
	baseURL string
	logger  *slog.Logger
}

// NewClient creates a Client for the given endpoint. A nil logger falls
// back to slog.Default.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		http:    resty.New().SetTimeout(60 * time.Second),
		baseURL: baseURL,
		logger:  logger,
	}
}

// Fetch issues one GET with annual frequency, the configured product,
// region and process facets, ascending sort by period, offset 0 and a
// page size large enough to cover the full range in one call.
//
// A non-success status yields a RequestError; the caller must not retry.
// A missing or empty data array yields an empty slice, not an error.
func (c *Client) Fetch(ctx context.Context, p Params) ([]Record, error) {
	query := buildQuery(p)

	c.logger.Info("fetching petroleum price data",
		slog.String("url", c.baseURL),
		slog.Int("start_year", p.StartYear),
		slog.Int("end_year", p.EndYear),
		slog.Int("products", len(p.Products)),
		slog.Int("regions", len(p.Regions)))

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		Get(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, pipeerrors.NewRequestError(resp.StatusCode(), c.baseURL)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	records := env.Response.Data
	c.logger.Info("fetch complete", slog.Int("rows", len(records)))

	if len(records) == 0 {
		return []Record{}, nil
	}
	return records, nil
}

// buildQuery assembles the EIA v2 query parameter set.
func buildQuery(p Params) url.Values {
	q := url.Values{}
	q.Set("api_key", p.APIKey)
	q.Set("frequency", "annual")
	q.Set("data[0]", "value")
	for _, product := range p.Products {
		q.Add("facets[product][]", product)
	}
	for _, region := range p.Regions {
		q.Add("facets[duoarea][]", region)
	}
	q.Add("facets[process][]", p.Process)
	q.Set("start", strconv.Itoa(p.StartYear))
	q.Set("end", strconv.Itoa(p.EndYear))
	q.Set("sort[0][column]", "period")
	q.Set("sort[0][direction]", "asc")
	q.Set("offset", "0")
	q.Set("length", strconv.Itoa(p.PageSize))
	return q
}

// FieldString renders one raw field the way it arrived: strings verbatim,
// numbers in their shortest decimal form, anything missing as empty.
func (r Record) FieldString(column string) string {
	v, ok := r[column]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case json.Number:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Columns returns the column set present across the given records, in
// canonical order, with any unknown extras appended.
func Columns(records []Record) []string {
	present := make(map[string]bool)
	for _, r := range records {
		for k := range r {
			present[k] = true
		}
	}

	var cols []string
	for _, c := range ColumnOrder {
		if present[c] {
			cols = append(cols, c)
			delete(present, c)
		}
	}
	// Extras the canonical list does not know about, in stable order
	var extras []string
	for k := range present {
		extras = append(extras, k)
	}
	sort.Strings(extras)
	return append(cols, extras...)
}
