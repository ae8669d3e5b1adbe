package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/driver"
)

// PageFetcher is the subset of driver.ArchiveClient used by repositories.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

type archiveRepository struct {
	fetcher  PageFetcher
	logger   *slog.Logger
	baseURL  string
	listName string
}

// NewArchiveRepository reads the monthly indexes of listName from the mirror at baseURL.
func NewArchiveRepository(fetcher PageFetcher, baseURL, listName string, logger *slog.Logger) ArchiveRepository {
	return &archiveRepository{
		fetcher:  fetcher,
		logger:   logger,
		baseURL:  strings.TrimRight(baseURL, "/"),
		listName: listName,
	}
}

// MonthIndexURL returns the archive index address of one month.
func MonthIndexURL(baseURL, listName string, month domain.YearMonth) string {
	return fmt.Sprintf("%s/list/%s/%s", strings.TrimRight(baseURL, "/"), listName, month)
}

func (r *archiveRepository) FetchMonthIndex(ctx context.Context, month domain.YearMonth) (string, error) {
	indexURL := MonthIndexURL(r.baseURL, r.listName, month)
	r.logger.InfoContext(ctx, "fetching archive index", "month", month.String(), "url", indexURL)

	page, err := r.fetcher.Fetch(ctx, indexURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch index for %s: %w", month, err)
	}
	return page, nil
}

func (r *archiveRepository) FetchMessagePage(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("%w: empty message URL", domain.ErrValidation)
	}
	return r.fetcher.Fetch(ctx, url)
}

func (r *archiveRepository) IndexBaseURL() string {
	return r.baseURL
}

var _ PageFetcher = (*driver.ArchiveClient)(nil)
