package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/labstack/echo/v4"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/repository"
	apperrors "github.com/haritabh1992/postgres-mailing-list-summary-sender/utils/errors"
)

const defaultRedirectCacheSize = 4096

// RedirectHandler resolves digest reference slugs to archive thread URLs.
type RedirectHandler struct {
	threads repository.MailThreadRepository
	cache   *lru.Cache[string, string]
	logger  *slog.Logger
}

// NewRedirectHandler creates a redirect handler backed by an LRU of resolved slugs.
func NewRedirectHandler(threads repository.MailThreadRepository, cacheSize int, logger *slog.Logger) (*RedirectHandler, error) {
	if cacheSize <= 0 {
		cacheSize = defaultRedirectCacheSize
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create redirect cache: %w", err)
	}
	return &RedirectHandler{
		threads: threads,
		cache:   cache,
		logger:  logger,
	}, nil
}

// HandleRedirect handles GET /thread-redirect/:slug.
func (h *RedirectHandler) HandleRedirect(c echo.Context) error {
	slug := c.Param("slug")
	if !domain.ValidSlug(slug) {
		return apperrors.FromDomainError(fmt.Errorf("%w: %q", domain.ErrInvalidSlug, slug),
			"handler", "RedirectHandler", "HandleRedirect")
	}

	if target, ok := h.cache.Get(slug); ok {
		return c.Redirect(http.StatusFound, target)
	}

	target, err := h.threads.FindURLBySlug(c.Request().Context(), slug)
	if err != nil {
		return apperrors.FromDomainError(err, "handler", "RedirectHandler", "HandleRedirect")
	}

	h.cache.Add(slug, target)
	h.logger.DebugContext(c.Request().Context(), "redirect slug resolved", "slug", slug)
	return c.Redirect(http.StatusFound, target)
}
