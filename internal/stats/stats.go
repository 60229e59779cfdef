// Package stats fetches the chart tables behind the dashboard's domain
// reading and expiration pages.
package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Feed is a stats endpoint together with the sub-tables it returns. Feeds
// without sub-tables return a single chart titled Title.
type Feed struct {
	Name   string
	Path   string
	Title  string
	Tables []TableSpec
}

// TableSpec names one sub-table of a feed and the title its chart carries on
// the dashboard.
type TableSpec struct {
	Key   string
	Title string
}

var (
	Reading = Feed{
		Name:  "reading",
		Path:  "/api/v1/dominios/stats/reading?p=2",
		Title: "Lectura de dominios",
	}
	General = Feed{
		Name:  "general",
		Path:  "/api/v1/dominios/stats/general?p=3",
		Title: "Lectura de dominios",
		Tables: []TableSpec{
			{Key: "hora", Title: "Lectura de dominios por hora"},
			{Key: "dia", Title: "Lectura de dominios por día"},
			{Key: "semana", Title: "Lectura de dominios por semana"},
		},
	}
	Expirations = Feed{
		Name:  "vencimientos",
		Path:  "/api/v1/dominios/stats/vencimientos-por-fecha",
		Title: "Dominios que vencen",
		Tables: []TableSpec{
			{Key: "year", Title: "Dominios que vencen por año"},
			{Key: "day", Title: "Dominios que vencen cada día"},
			{Key: "week", Title: "Dominios que vencen cada semana"},
		},
	}
)

// Feeds lists the known feeds by name.
var Feeds = map[string]Feed{
	Reading.Name:     Reading,
	General.Name:     General,
	Expirations.Name: Expirations,
}

// ErrUnknownFeed is returned by Lookup for an unregistered feed name.
var ErrUnknownFeed = errors.New("unknown stats feed")

// Lookup returns the feed registered under name.
func Lookup(name string) (Feed, error) {
	f, ok := Feeds[name]
	if !ok {
		return Feed{}, fmt.Errorf("%w: %s", ErrUnknownFeed, name)
	}
	return f, nil
}

// Table is a chart table: the first row holds column labels, each following
// row holds a category label and one or more values.
type Table [][]any

// Chart is one named table of a feed.
type Chart struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Table Table  `json:"table"`
}

type envelope struct {
	Data struct {
		ChartData json.RawMessage `json:"google_chart_data"`
	} `json:"data"`
}

// Client fetches feeds from the stats API.
type Client struct {
	baseURL string
	client  *http.Client
	header  http.Header
}

// ClientOptions configures Client.
type ClientOptions struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
	Client   *http.Client
}

// NewClient builds a Client.
func NewClient(opts ClientOptions) *Client {
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = 15 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	header := http.Header{}
	header.Set("Accept", "application/json")
	if opts.APIToken != "" {
		header.Set("Authorization", "Token "+opts.APIToken)
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		client:  client,
		header:  header,
	}
}

// Fetch downloads a feed and returns its charts in the feed's table order.
func (c *Client) Fetch(ctx context.Context, feed Feed) ([]Chart, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+feed.Path, nil)
	if err != nil {
		return nil, err
	}
	req.Header = c.header.Clone()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("stats %s returned status %d", feed.Name, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode stats %s: %w", feed.Name, err)
	}
	return decodeCharts(feed, env.Data.ChartData)
}

func decodeCharts(feed Feed, raw json.RawMessage) ([]Chart, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, fmt.Errorf("stats %s: missing google_chart_data", feed.Name)
	}

	if len(feed.Tables) == 0 {
		var table Table
		if err := json.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("stats %s: %w", feed.Name, err)
		}
		return []Chart{{Name: feed.Name, Title: feed.Title, Table: table}}, nil
	}

	var named map[string]Table
	if err := json.Unmarshal(raw, &named); err != nil {
		return nil, fmt.Errorf("stats %s: %w", feed.Name, err)
	}

	charts := make([]Chart, 0, len(feed.Tables))
	for _, spec := range feed.Tables {
		table, ok := named[spec.Key]
		if !ok {
			continue
		}
		charts = append(charts, Chart{
			Name:  spec.Key,
			Title: spec.Title,
			Table: table,
		})
	}
	return charts, nil
}
