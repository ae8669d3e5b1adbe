package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/html_parser"
)

// TagFixtureSource is the subset of driver.CommitfestClient used here.
type TagFixtureSource interface {
	FetchFixtureTags(ctx context.Context) ([]domain.CommitfestTag, error)
}

type commitfestSourceRepository struct {
	fixture TagFixtureSource
	pages   PageFetcher
	logger  *slog.Logger
	baseURL string
}

// NewCommitfestSourceRepository reads tags from the fixture and patches from the commitfest app.
func NewCommitfestSourceRepository(fixture TagFixtureSource, pages PageFetcher, baseURL string, logger *slog.Logger) CommitfestSourceRepository {
	return &commitfestSourceRepository{
		fixture: fixture,
		pages:   pages,
		logger:  logger,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (r *commitfestSourceRepository) FetchTags(ctx context.Context) ([]domain.CommitfestTag, error) {
	return r.fixture.FetchFixtureTags(ctx)
}

func (r *commitfestSourceRepository) FetchOpenPatchLinks(ctx context.Context) ([]html_parser.PatchLink, error) {
	page, err := r.pages.Fetch(ctx, r.baseURL+"/open/")
	if err != nil {
		return nil, err
	}

	links, err := html_parser.ParsePatchLinks(page, r.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse open patches page: %w", err)
	}

	r.logger.InfoContext(ctx, "open commitfest patches found", "count", len(links))
	return links, nil
}

func (r *commitfestSourceRepository) FetchPatch(ctx context.Context, link html_parser.PatchLink) (*domain.CommitfestPatch, error) {
	page, err := r.pages.Fetch(ctx, link.URL)
	if err != nil {
		return nil, err
	}

	patch, err := html_parser.ParsePatchPage(page, link)
	if err != nil {
		return nil, fmt.Errorf("failed to parse patch %d: %w", link.ID, err)
	}
	return patch, nil
}
