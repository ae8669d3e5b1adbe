package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/haritabh1992/postgres-mailing-list-summary-sender/domain"
	"github.com/haritabh1992/postgres-mailing-list-summary-sender/repository"
)

const (
	// TopTierSize is the number of headline discussions.
	TopTierSize = 5
	// SecondTierSize is the number of runner-up discussions taken after the top tier.
	SecondTierSize = 5
)

// DiscussionAggregatorService implementation.
type discussionAggregatorService struct {
	threads    repository.MailThreadRepository
	commitfest repository.CommitfestRepository
	tagCache   *lru.Cache[string, []domain.Tag]
	logger     *slog.Logger
}

// NewDiscussionAggregatorService creates an aggregator with an LRU of subject tag lookups.
func NewDiscussionAggregatorService(
	threads repository.MailThreadRepository,
	commitfest repository.CommitfestRepository,
	tagCacheSize int,
	logger *slog.Logger,
) (DiscussionAggregatorService, error) {
	if tagCacheSize <= 0 {
		tagCacheSize = 1024
	}
	cache, err := lru.New[string, []domain.Tag](tagCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag cache: %w", err)
	}
	return &discussionAggregatorService{
		threads:    threads,
		commitfest: commitfest,
		tagCache:   cache,
		logger:     logger,
	}, nil
}

func (s *discussionAggregatorService) Aggregate(ctx context.Context, window domain.DateWindow) (*domain.AggregationResult, error) {
	threads, err := s.threads.ListInWindow(ctx, window)
	if err != nil {
		return nil, err
	}

	groups := GroupBySubject(threads)
	selected := SelectTopDiscussions(groups)

	for _, d := range selected {
		d.CommitfestTags = s.lookupTags(ctx, d.Subject)
	}

	result := &domain.AggregationResult{
		Window:            window,
		Discussions:       selected,
		TotalPosts:        len(threads),
		TotalParticipants: countParticipants(threads),
	}

	s.logger.InfoContext(ctx, "discussions aggregated",
		"threads", len(threads),
		"groups", len(groups),
		"selected", len(selected),
		"total_participants", result.TotalParticipants)

	return result, nil
}

// lookupTags never fails the aggregation; errors yield no tags and are not cached.
func (s *discussionAggregatorService) lookupTags(ctx context.Context, subject string) []domain.Tag {
	key := domain.NormalizeSubject(subject)
	if tags, ok := s.tagCache.Get(key); ok {
		return tags
	}

	tags, err := s.commitfest.FindTagsBySubject(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "commitfest tag lookup failed", "subject", key, "error", err)
		return nil
	}
	s.tagCache.Add(key, tags)
	return tags
}

// GroupBySubject clusters threads by exact subject in first-appearance order.
func GroupBySubject(threads []*domain.MailThread) []*domain.Discussion {
	index := make(map[string]*domain.Discussion)
	var groups []*domain.Discussion

	for _, t := range threads {
		d, ok := index[t.Subject]
		if !ok {
			d = &domain.Discussion{Subject: t.Subject}
			index[t.Subject] = d
			groups = append(groups, d)
		}
		d.Threads = append(d.Threads, t)
	}

	for _, d := range groups {
		sort.SliceStable(d.Threads, func(i, j int) bool {
			return d.Threads[i].PostDate.Before(d.Threads[j].PostDate)
		})
		d.PostCount = len(d.Threads)
		d.ParticipantCount = countParticipants(d.Threads)
		d.FirstPostAt = d.Threads[0].PostDate
		d.LastPostAt = d.Threads[len(d.Threads)-1].PostDate
		d.ThreadID = d.Threads[0].ThreadID
		d.ThreadIDs = make([]string, 0, len(d.Threads))
		for _, t := range d.Threads {
			d.ThreadIDs = append(d.ThreadIDs, t.ID)
		}
	}

	return groups
}

// SelectTopDiscussions ranks by post count, ties in input order, and returns
// the top tier followed by the second tier.
func SelectTopDiscussions(groups []*domain.Discussion) []*domain.Discussion {
	ranked := make([]*domain.Discussion, len(groups))
	copy(ranked, groups)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PostCount > ranked[j].PostCount
	})

	top := ranked[:min(TopTierSize, len(ranked))]
	rest := ranked[len(top):]
	second := rest[:min(SecondTierSize, len(rest))]

	selected := make([]*domain.Discussion, 0, len(top)+len(second))
	selected = append(selected, top...)
	return append(selected, second...)
}

func countParticipants(threads []*domain.MailThread) int {
	seen := make(map[string]struct{})
	for _, t := range threads {
		seen[t.Participant()] = struct{}{}
	}
	return len(seen)
}
