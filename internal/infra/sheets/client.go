package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/xavierca1/lead-intake/internal/entity"
)

const valueInputRaw = "RAW"

// Credentials selects how the service authenticates. A service-account key
// takes precedence over an OAuth refresh token.
type Credentials struct {
	ServiceAccountJSON string
	ClientID           string
	ClientSecret       string
	RefreshToken       string
}

// Client adapts the Sheets v4 values API to RangeAPI.
type Client struct {
	values *gsheets.SpreadsheetsValuesService
}

func NewClient(svc *gsheets.Service) *Client {
	return &Client{values: svc.Spreadsheets.Values}
}

// NewService builds an authenticated Sheets service. Extra options are
// appended last so callers can point it at another endpoint.
func NewService(ctx context.Context, creds Credentials, extra ...option.ClientOption) (*gsheets.Service, error) {
	opt, err := authOption(ctx, creds)
	if err != nil {
		return nil, err
	}

	svc, err := gsheets.NewService(ctx, append([]option.ClientOption{opt}, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}

func authOption(ctx context.Context, creds Credentials) (option.ClientOption, error) {
	if creds.ServiceAccountJSON != "" {
		raw, err := fixPrivateKey([]byte(creds.ServiceAccountJSON))
		if err != nil {
			return nil, &entity.ConfigError{Setting: "GOOGLE_CREDENTIALS", Reason: "is not valid JSON: " + err.Error()}
		}
		gc, err := google.CredentialsFromJSON(ctx, raw, gsheets.SpreadsheetsScope)
		if err != nil {
			return nil, &entity.ConfigError{Setting: "GOOGLE_CREDENTIALS", Reason: "is not a usable key: " + err.Error()}
		}
		return option.WithCredentials(gc), nil
	}

	if creds.RefreshToken != "" {
		if creds.ClientID == "" || creds.ClientSecret == "" {
			return nil, &entity.ConfigError{Setting: "GOOGLE_CLIENT_ID", Reason: "and GOOGLE_CLIENT_SECRET are required with GOOGLE_REFRESH_TOKEN"}
		}
		conf := &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{gsheets.SpreadsheetsScope},
		}
		ts := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken})
		return option.WithTokenSource(ts), nil
	}

	return nil, &entity.ConfigError{Setting: "GOOGLE_CREDENTIALS"}
}

// fixPrivateKey undoes the "\\n" escaping hosting dashboards apply to
// multi-line env values.
func fixPrivateKey(raw []byte) ([]byte, error) {
	var key map[string]any
	if err := json.Unmarshal(raw, &key); err != nil {
		return nil, err
	}
	pk, ok := key["private_key"].(string)
	if !ok || !strings.Contains(pk, `\n`) {
		return raw, nil
	}
	key["private_key"] = strings.ReplaceAll(pk, `\n`, "\n")
	return json.Marshal(key)
}

func (c *Client) Read(ctx context.Context, spreadsheetID, rng string) ([][]string, error) {
	resp, err := c.values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	rows := make([][]string, len(resp.Values))
	for i, r := range resp.Values {
		row := make([]string, len(r))
		for j, v := range r {
			if s, ok := v.(string); ok {
				row[j] = s
			} else if v != nil {
				row[j] = fmt.Sprint(v)
			}
		}
		rows[i] = row
	}
	return rows, nil
}

func (c *Client) Update(ctx context.Context, spreadsheetID, rng string, row []string) error {
	_, err := c.values.Update(spreadsheetID, rng, valueRange(rng, row)).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	return err
}

func (c *Client) Append(ctx context.Context, spreadsheetID, rng string, row []string) (string, error) {
	resp, err := c.values.Append(spreadsheetID, rng, valueRange(rng, row)).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	if resp.Updates == nil {
		return "", nil
	}
	return resp.Updates.UpdatedRange, nil
}

func valueRange(rng string, row []string) *gsheets.ValueRange {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return &gsheets.ValueRange{
		Range:          rng,
		MajorDimension: "ROWS",
		Values:         [][]interface{}{cells},
	}
}
