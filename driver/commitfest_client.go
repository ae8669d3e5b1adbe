package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	apperrors "github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/errors"
)

const commitfestTagModel = "commitfest.tag"

type fixtureEntry struct {
	Model  string          `json:"model"`
	Fields json.RawMessage `json:"fields"`
	PK     int             `json:"pk"`
}

type fixtureTagFields struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// CommitfestClient downloads the pgcommitfest data fixture.
// Fixture files are served from a raw content host, so robots.txt is not consulted.
type CommitfestClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	fixtureURL string
	userAgent  string
}

func NewCommitfestClient(httpClient *http.Client, fixtureURL, userAgent string, logger *slog.Logger) *CommitfestClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommitfestClient{
		httpClient: httpClient,
		logger:     logger,
		fixtureURL: fixtureURL,
		userAgent:  userAgent,
	}
}

// FetchFixtureTags returns every commitfest.tag entry of the fixture, in file
// order. Entries without a name are returned too; callers decide to skip them.
func (c *CommitfestClient) FetchFixtureTags(ctx context.Context) ([]domain.CommitfestTag, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.fixtureURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.Wrap(domain.ErrFetch, "commitfest-tags", "fixture", c.fixtureURL, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.ErrorContext(ctx, "failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.Wrap(domain.ErrFetch, "commitfest-tags", "fixture", "",
			&apperrors.HTTPStatusError{URL: c.fixtureURL, StatusCode: resp.StatusCode})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}

	var entries []fixtureEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}

	var tags []domain.CommitfestTag
	for _, entry := range entries {
		if entry.Model != commitfestTagModel {
			continue
		}
		var fields fixtureTagFields
		if err := json.Unmarshal(entry.Fields, &fields); err != nil {
			c.logger.WarnContext(ctx, "malformed tag entry", "pk", entry.PK, "error", err)
			tags = append(tags, domain.CommitfestTag{ID: entry.PK})
			continue
		}
		tags = append(tags, domain.CommitfestTag{
			ID:          entry.PK,
			Name:        fields.Name,
			Color:       optionalString(fields.Color),
			Description: optionalString(fields.Description),
		})
	}

	c.logger.InfoContext(ctx, "commitfest fixture fetched",
		"entries", len(entries),
		"tags", len(tags))

	return tags, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
