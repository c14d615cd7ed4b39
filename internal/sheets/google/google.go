// Package google persists families and point events in a Google
// spreadsheet: one Families tab plus one event tab per family.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	oauthgoogle "golang.org/x/oauth2/google"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"kidpoints/internal/core"
	"kidpoints/internal/sheets"
)

// Options configures the Sheets client. Exactly one credential source must
// be set: service-account JSON (production, resolved from the secret
// store), or an OAuth client/token pair (local development).
type Options struct {
	SpreadsheetID string
	FamiliesTab   string

	CredentialsJSON []byte
	OAuthClientJSON []byte
	OAuthTokenJSON  []byte
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	familiesTab   string

	// knownTabs remembers which tabs have been seen or created so repeated
	// EnsureEventTab calls skip the metadata fetch.
	mu        sync.Mutex
	knownTabs map[string]bool
}

var (
	_ sheets.FamilyStore = (*Client)(nil)
	_ sheets.EventStore  = (*Client)(nil)
)

// New builds a Sheets client and verifies the required options.
func New(ctx context.Context, o Options) (*Client, error) {
	if strings.TrimSpace(o.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if strings.TrimSpace(o.FamiliesTab) == "" {
		o.FamiliesTab = "Families"
	}

	opts, err := clientOptions(ctx, o)
	if err != nil {
		return nil, err
	}
	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: o.SpreadsheetID,
		familiesTab:   o.FamiliesTab,
		knownTabs:     make(map[string]bool),
	}, nil
}

// clientOptions resolves the credential source.
func clientOptions(ctx context.Context, o Options) ([]goption.ClientOption, error) {
	switch {
	case len(o.CredentialsJSON) > 0:
		return []goption.ClientOption{
			goption.WithCredentialsJSON(o.CredentialsJSON),
			goption.WithScopes(gsheet.SpreadsheetsScope),
		}, nil
	case len(o.OAuthClientJSON) > 0 && len(o.OAuthTokenJSON) > 0:
		cfg, err := oauthgoogle.ConfigFromJSON(o.OAuthClientJSON, gsheet.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("oauth config: %w", err)
		}
		var tok oauth2.Token
		if err := json.Unmarshal(o.OAuthTokenJSON, &tok); err != nil {
			return nil, fmt.Errorf("oauth token: %w", err)
		}
		return []goption.ClientOption{goption.WithHTTPClient(cfg.Client(ctx, &tok))}, nil
	default:
		return nil, errors.New("missing sheets credentials (service account JSON or OAuth client+token)")
	}
}

// Family scans the Families tab for the user's row.
func (c *Client) Family(ctx context.Context, userID string) (core.Family, bool, error) {
	if err := c.ensureTab(ctx, c.familiesTab, familiesHeader); err != nil {
		return core.Family{}, false, err
	}
	rows, err := c.readRows(ctx, c.familiesTab, "A2:E")
	if err != nil {
		return core.Family{}, false, err
	}
	for _, row := range rows {
		fam, ok := parseFamilyRow(row)
		if ok && fam.UserID == userID {
			return fam, true, nil
		}
	}
	return core.Family{}, false, nil
}

// SaveFamily updates the family's existing row in place, or appends a new
// one. Families are never deleted.
func (c *Client) SaveFamily(ctx context.Context, fam core.Family) error {
	if err := c.ensureTab(ctx, c.familiesTab, familiesHeader); err != nil {
		return err
	}
	rows, err := c.readRows(ctx, c.familiesTab, "A2:E")
	if err != nil {
		return err
	}
	values := &gsheet.ValueRange{Values: [][]any{familyToRow(fam)}}
	for i, row := range rows {
		existing, ok := parseFamilyRow(row)
		if !ok || existing.UserID != fam.UserID {
			continue
		}
		rng := fmt.Sprintf("%s!A%d:E%d", c.familiesTab, i+2, i+2)
		_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, values).
			ValueInputOption("RAW").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("update family row %s: %w", rng, err)
		}
		return nil
	}
	rng := fmt.Sprintf("%s!A:E", c.familiesTab)
	_, err = c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, values).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append family row: %w", err)
	}
	return nil
}

// EnsureEventTab creates the family's event tab with its header row if it
// does not exist yet. Re-deriving the same tab name for a user must always
// land here on the same tab, so creation is idempotent.
func (c *Client) EnsureEventTab(ctx context.Context, tab string) error {
	return c.ensureTab(ctx, tab, eventsHeader)
}

func (c *Client) AppendEvent(ctx context.Context, tab string, e core.Event) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("validate event: %w", err)
	}
	rng := fmt.Sprintf("%s!A:F", tab)
	values := &gsheet.ValueRange{Values: [][]any{eventToRow(e)}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, values).
		ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append event to %s: %w", tab, err)
	}
	slog.InfoContext(ctx, "Event appended",
		"tab", tab, "person", e.Person, "delta", e.Delta, "date", e.Date)
	return nil
}

// ListEvents reads the whole event tab. Rows that cannot be coerced into an
// event (blank person or date, non-numeric delta) are skipped, never fatal.
func (c *Client) ListEvents(ctx context.Context, tab string) ([]core.Event, error) {
	rows, err := c.readRows(ctx, tab, "A2:F")
	if err != nil {
		return nil, err
	}
	var out []core.Event
	for _, row := range rows {
		if e, ok := parseEventRow(row); ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (c *Client) readRows(ctx context.Context, tab, cols string) ([][]any, error) {
	rng := fmt.Sprintf("%s!%s", tab, cols)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return resp.Values, nil
}

// ensureTab creates a tab with the given header if the spreadsheet does not
// already have it.
func (c *Client) ensureTab(ctx context.Context, tab string, header []string) error {
	c.mu.Lock()
	known := c.knownTabs[tab]
	c.mu.Unlock()
	if known {
		return nil
	}

	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet metadata: %w", err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == tab {
			c.markKnown(tab)
			return nil
		}
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: tab},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("create tab %s: %w", tab, err)
	}

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	endCol := string(rune('A' + len(header) - 1))
	rng := fmt.Sprintf("%s!A1:%s1", tab, endCol)
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng,
		&gsheet.ValueRange{Values: [][]any{headerRow}}).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write header for %s: %w", tab, err)
	}

	slog.InfoContext(ctx, "Created sheet tab", "tab", tab)
	c.markKnown(tab)
	return nil
}

func (c *Client) markKnown(tab string) {
	c.mu.Lock()
	c.knownTabs[tab] = true
	c.mu.Unlock()
}
